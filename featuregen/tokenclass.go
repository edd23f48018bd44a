package featuregen

import (
	"unicode"
	"unicode/utf8"
)

// Token class names returned by TokenClass.
const (
	ClassLowercase    = "lc"
	ClassTwoDigits    = "2d"
	ClassFourDigits   = "4d"
	ClassNumber       = "num"
	ClassAlphaNumeric = "an"
	ClassDigitDash    = "dd"
	ClassDigitSlash   = "ds"
	ClassDigitComma   = "dc"
	ClassDigitPeriod  = "dp"
	ClassSingleCap    = "sc"
	ClassAllCaps      = "ac"
	ClassCapPeriod    = "cp"
	ClassInitialCap   = "ic"
	ClassOther        = "other"
)

type tokenShape struct {
	letters, upper, lower, digits int
	hyphen, slash, comma, period  bool
	others                        int
	firstUpper                    bool
}

func shapeOf(token string) tokenShape {
	var s tokenShape
	first := true
	for _, r := range token {
		switch {
		case unicode.IsLetter(r):
			s.letters++
			if unicode.IsUpper(r) {
				s.upper++
				if first {
					s.firstUpper = true
				}
			} else if unicode.IsLower(r) {
				s.lower++
			}
		case unicode.IsDigit(r):
			s.digits++
		case r == '-':
			s.hyphen = true
		case r == '/':
			s.slash = true
		case r == ',':
			s.comma = true
		case r == '.':
			s.period = true
		default:
			s.others++
		}
		first = false
	}
	return s
}

// TokenClass maps a token to a coarse orthographic class such as "lc"
// (all lowercase letters), "4d" (four digits) or "ic" (initial capital).
func TokenClass(token string) string {
	n := utf8.RuneCountInString(token)
	if n == 0 {
		return ClassOther
	}
	s := shapeOf(token)

	switch {
	case s.letters == n && s.lower == n:
		return ClassLowercase
	case s.digits == n && n == 2:
		return ClassTwoDigits
	case s.digits == n && n == 4:
		return ClassFourDigits
	case s.digits > 0:
		switch {
		case s.letters > 0:
			return ClassAlphaNumeric
		case s.hyphen:
			return ClassDigitDash
		case s.slash:
			return ClassDigitSlash
		case s.comma:
			return ClassDigitComma
		case s.period:
			return ClassDigitPeriod
		}
		return ClassNumber
	case s.letters == n && s.upper == n && n == 1:
		return ClassSingleCap
	case s.letters == n && s.upper == n:
		return ClassAllCaps
	case n == 2 && s.upper == 1 && s.firstUpper && s.period:
		return ClassCapPeriod
	case s.firstUpper:
		return ClassInitialCap
	}
	return ClassOther
}
