package core

import (
	"fmt"

	"github.com/google/uuid"
)

// Owners maps live identifiers to the object that acquired them.
var Owners map[uuid.UUID]interface{}

// IdentifierAquireNewID registers owner under a fresh identifier.
func IdentifierAquireNewID(owner interface{}) uuid.UUID {
	return IdentifierAquire(uuid.New(), owner)
}

// IdentifierAquire registers owner under id, replacing any previous owner.
func IdentifierAquire(id uuid.UUID, owner interface{}) uuid.UUID {
	if Owners == nil {
		Owners = make(map[uuid.UUID]interface{})
	}
	Owners[id] = owner
	return id
}

// IdentifierLookup returns the owner registered under id.
func IdentifierLookup(id uuid.UUID) (interface{}, bool) {
	owner, ok := Owners[id]
	return owner, ok
}

// IdentifierCount returns the number of live identifiers.
func IdentifierCount() int {
	return len(Owners)
}

func IdentifierReleaseID(id uuid.UUID) error {
	if len(Owners) == 0 {
		return fmt.Errorf("identifier_release_id called before any identifier was acquired: %w", ErrIdentifierNotFound)
	}
	if _, ok := Owners[id]; !ok {
		return fmt.Errorf("identifier_release_id: id '%s': %w", id, ErrIdentifierNotFound)
	}
	delete(Owners, id)
	return nil
}
