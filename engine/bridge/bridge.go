// Package bridge is the boundary between polymesh and the host application
// that owns the renderable meshes. The engine only talks to the host through
// the Bridge interface.
package bridge

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/polymesh/engine/core"
	"github.com/spaghettifunk/polymesh/engine/mesh"
)

type Kind string

const (
	KindNone     Kind = "none"
	KindRegistry Kind = "registry"
)

type Bridge interface {
	// MeshesExist reports whether the host has any mesh component at all.
	MeshesExist() bool
	// MeshComponent returns the host mesh registered under id.
	MeshComponent(id uuid.UUID) (*mesh.PolyMesh, bool)
	// Refresh tells the host that m changed and any derived data it keeps is stale.
	Refresh(m *mesh.PolyMesh)
	// SetAttributes pushes the selected channels of m to the host.
	SetAttributes(m *mesh.PolyMesh, channels mesh.MeshChannel) error
}

// Registrar is implemented by bridges that track which meshes the engine
// owns.
type Registrar interface {
	Register(m *mesh.PolyMesh, target *mesh.Asset)
	Unregister(m *mesh.PolyMesh) error
}

// New returns the bridge implementation for kind.
func New(kind Kind) (Bridge, error) {
	switch kind {
	case KindNone, "":
		return Noop{}, nil
	case KindRegistry:
		return NewRegistry(), nil
	default:
		return nil, fmt.Errorf("bridge %q: %w", kind, core.ErrUnknownBridge)
	}
}

// Noop is used when polymesh runs without a host.
type Noop struct{}

func (Noop) MeshesExist() bool                                    { return false }
func (Noop) MeshComponent(uuid.UUID) (*mesh.PolyMesh, bool)       { return nil, false }
func (Noop) Refresh(*mesh.PolyMesh)                               {}
func (Noop) SetAttributes(*mesh.PolyMesh, mesh.MeshChannel) error { return nil }
