package training

import "fmt"

// Parser training stages, one model each.
const (
	StageBuild   = "build"
	StageCheck   = "check"
	StageAttach  = "attach"
	StageTagger  = "tagger"
	StageChunker = "chunker"
)

// ParserType selects the parser model layout.
type ParserType string

// Supported parser types.
const (
	ParserChunking   ParserType = "CHUNKING"
	ParserTreeInsert ParserType = "TREEINSERT"
)

// ParseParserType parses a parser type name. Empty defaults to CHUNKING.
func ParseParserType(s string) (ParserType, error) {
	switch ParserType(s) {
	case "", ParserChunking:
		return ParserChunking, nil
	case ParserTreeInsert:
		return ParserTreeInsert, nil
	default:
		return "", fmt.Errorf("unknown parser type %q (want %q or %q)", s, ParserChunking, ParserTreeInsert)
	}
}

// ParserStages returns the stages trained for a parser type. Only the
// tree-insert parser has an attach model.
func ParserStages(t ParserType) []string {
	if t == ParserTreeInsert {
		return []string{StageBuild, StageCheck, StageAttach, StageTagger, StageChunker}
	}
	return []string{StageBuild, StageCheck, StageTagger, StageChunker}
}

// ParserGroups are the parameter groups every parser configuration must
// carry valid settings for, whatever the parser type.
var ParserGroups = []string{StageBuild, StageCheck, StageAttach, StageTagger, StageChunker}

// ValidateParser checks the defaults and all parser groups. The attach
// group is checked for CHUNKING too, although only TREEINSERT trains it.
func (p *Parameters) ValidateParser(t ParserType) error {
	if _, err := ParseParserType(string(t)); err != nil {
		return err
	}
	if err := p.Defaults.Validate(""); err != nil {
		return err
	}
	return p.ValidateStages(ParserGroups...)
}
