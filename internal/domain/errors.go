package domain

import "errors"

// Rejections reported by the graph and the topology engine. Callers wrap
// them with context and match with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateID         = errors.New("duplicate element id")
	ErrDuplicateDevice     = errors.New("device already exists")
	ErrDuplicateConnection = errors.New("connection already exists")
	ErrSelfLink            = errors.New("cannot link a node to itself")
	ErrNotAnchor           = errors.New("node is not an anchor")
	ErrNotDevice           = errors.New("node is not a device")
	ErrAnchorDegree        = errors.New("anchor must have exactly two connections")
	ErrInvalidElement      = errors.New("invalid element")
	ErrInvalidBackup       = errors.New("invalid backup file")
	ErrLinkState           = errors.New("invalid link mode state")
)
