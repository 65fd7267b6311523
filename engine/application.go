package engine

import (
	"github.com/spaghettifunk/polymesh/engine/config"
	"github.com/spaghettifunk/polymesh/engine/mesh"
)

type ApplicationConfig struct {
	// The application name used as the log prefix when the config has none.
	Name   string
	Config *config.Config
}

// Application is the program driving the engine. Every hook is optional.
type Application struct {
	ApplicationConfig *ApplicationConfig
	FnOnImport        OnImport
	FnOnRemove        OnRemove
}

// OnImport is called after a mesh file was imported and analysed.
type OnImport func(path string, m *mesh.PolyMesh, report *Report) error

// OnRemove is called after a watched mesh file disappeared.
type OnRemove func(path string) error
