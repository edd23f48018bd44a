package types

// Version is the canonical project version, shared by the library and the
// tagstream tool.
const Version = "0.3.0"

// FrameVersion is the version of the msgpack sample/event frame format.
// Bumped only when the wire layout of Sample or Event changes.
const FrameVersion = "1"
