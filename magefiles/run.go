//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Prints the topology report of the built-in fixture meshes.
func (Run) Demo() error {
	fmt.Println("Run demo...")
	if _, err := executeCmd("go", withArgs("run", ".", "-demo"), withStream()); err != nil {
		return err
	}
	return nil
}

// Watches the directory configured in polymesh.toml.
func (Run) Watch() error {
	fmt.Println("Run watcher...")
	if _, err := executeCmd("go", withArgs("run", ".", "-config", "polymesh.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
