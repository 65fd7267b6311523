package bridge

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/polymesh/engine/core"
	"github.com/spaghettifunk/polymesh/engine/mesh"
)

// Registry is an in-process host. Meshes are registered in the core
// identifier registry under their ID, and SetAttributes writes into the
// snapshot attached to each mesh.
type Registry struct {
	ids       map[uuid.UUID]struct{}
	targets   map[uuid.UUID]*mesh.Asset
	refreshes map[uuid.UUID]int
}

func NewRegistry() *Registry {
	return &Registry{
		ids:       make(map[uuid.UUID]struct{}),
		targets:   make(map[uuid.UUID]*mesh.Asset),
		refreshes: make(map[uuid.UUID]int),
	}
}

// Register makes m visible to MeshComponent. target receives the channels
// written by SetAttributes; it may be nil.
func (r *Registry) Register(m *mesh.PolyMesh, target *mesh.Asset) {
	core.IdentifierAquire(m.ID, m)
	r.ids[m.ID] = struct{}{}
	if target != nil {
		r.targets[m.ID] = target
	}
}

func (r *Registry) Unregister(m *mesh.PolyMesh) error {
	if _, ok := r.ids[m.ID]; !ok {
		return fmt.Errorf("mesh %q: %w", m.Name, core.ErrIdentifierNotFound)
	}
	delete(r.ids, m.ID)
	delete(r.targets, m.ID)
	delete(r.refreshes, m.ID)
	return core.IdentifierReleaseID(m.ID)
}

func (r *Registry) MeshesExist() bool {
	return len(r.ids) > 0
}

func (r *Registry) MeshComponent(id uuid.UUID) (*mesh.PolyMesh, bool) {
	if _, ok := r.ids[id]; !ok {
		return nil, false
	}
	owner, ok := core.IdentifierLookup(id)
	if !ok {
		return nil, false
	}
	m, ok := owner.(*mesh.PolyMesh)
	return m, ok
}

// Refresh drops the derived caches of m so the next query rebuilds them.
func (r *Registry) Refresh(m *mesh.PolyMesh) {
	if _, ok := r.ids[m.ID]; !ok {
		return
	}
	m.Cache().Clear()
	r.refreshes[m.ID]++
	core.LogDebug("bridge: refreshed %s", m)
}

// Refreshes returns how many times the mesh registered under id was refreshed.
func (r *Registry) Refreshes(id uuid.UUID) int {
	return r.refreshes[id]
}

func (r *Registry) SetAttributes(m *mesh.PolyMesh, channels mesh.MeshChannel) error {
	if _, ok := r.ids[m.ID]; !ok {
		return fmt.Errorf("mesh %q: %w", m.Name, core.ErrIdentifierNotFound)
	}
	target, ok := r.targets[m.ID]
	if !ok {
		return nil
	}
	m.ApplyTo(target, channels)
	return nil
}

// Target returns the snapshot attached to the mesh registered under id.
func (r *Registry) Target(id uuid.UUID) (*mesh.Asset, bool) {
	a, ok := r.targets[id]
	return a, ok
}
