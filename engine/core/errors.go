package core

import (
	"errors"
)

var (
	ErrNilIndexBuffer     = errors.New("sub-mesh index buffer is nil")
	ErrNilSourceMesh      = errors.New("source mesh is nil")
	ErrInvalidMesh        = errors.New("invalid mesh")
	ErrUnknownChannel     = errors.New("unknown mesh channel")
	ErrUnknownBridge      = errors.New("unknown bridge kind")
	ErrWatcherClosed      = errors.New("watcher instance already closed")
	ErrIdentifierNotFound = errors.New("identifier not found")
	ErrUnknown            = errors.New("unknown")
)
