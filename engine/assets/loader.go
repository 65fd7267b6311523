package assets

import "github.com/spaghettifunk/polymesh/engine/mesh"

type Loader interface {
	Load(path string) (*mesh.Asset, error)
}

// Saver is implemented by loaders whose format can also be written.
type Saver interface {
	Save(path string, asset *mesh.Asset) error
}
