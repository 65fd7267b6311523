package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/polymesh/engine/assets/loaders"
	"github.com/spaghettifunk/polymesh/engine/core"
	"github.com/spaghettifunk/polymesh/engine/mesh"
	"golang.org/x/exp/slices"
)

type AssetType int

const (
	AssetTypeNone AssetType = iota
	AssetTypeSnapshot
	AssetTypeObj
)

func (t AssetType) String() string {
	switch t {
	case AssetTypeSnapshot:
		return "snapshot"
	case AssetTypeObj:
		return "obj"
	default:
		return "none"
	}
}

type AssetInfo struct {
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

type EventOp int

const (
	EventChanged EventOp = iota
	EventRemoved
)

// Event reports a mesh file that appeared, changed or disappeared in a
// watched directory.
type Event struct {
	Path string
	Type AssetType
	Op   EventOp
}

// AssetManager indexes the mesh files under a directory tree and reports
// changes to them on Events. The index is safe for concurrent use; the
// watcher runs on its own goroutine.
type AssetManager struct {
	assets  map[string]AssetInfo
	loaders map[AssetType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	events   chan Event
	errors   chan error
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[AssetType]Loader),
		fsnotify: fsWatch,
		events:   make(chan Event, 64),
		errors:   make(chan error, 8),
		done:     make(chan struct{}),
	}

	// Register loaders
	am.registerLoader(AssetTypeSnapshot, &loaders.SnapshotLoader{})
	am.registerLoader(AssetTypeObj, &loaders.ObjLoader{})
	return am, nil
}

// Initialize indexes assetsDir and starts watching it. An empty assetsDir
// only enables explicit loads.
func (am *AssetManager) Initialize(assetsDir string) error {
	go am.start()

	if assetsDir == "" {
		return nil
	}
	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		return err
	}
	return am.addRecursive(assetsDir)
}

func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return core.ErrWatcherClosed
	}
	am.isClosed = true
	close(am.done)
	return nil
}

func (am *AssetManager) Events() <-chan Event {
	return am.events
}

func (am *AssetManager) Errors() <-chan error {
	return am.errors
}

// Assets returns the indexed mesh files ordered by path.
func (am *AssetManager) Assets() []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	out := make([]AssetInfo, 0, len(am.assets))
	for _, a := range am.assets {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b AssetInfo) int { return strings.Compare(a.Path, b.Path) })
	return out
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return core.ErrWatcherClosed
	}
	return am.watchRecursive(name, false)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType AssetType, loader Loader) {
	am.loaders[assetType] = loader
}

// LoadAsset reads the mesh file at path with the loader for its extension.
func (am *AssetManager) LoadAsset(path string) (*mesh.Asset, error) {
	assetType := determineAssetType(path)
	loader, ok := am.loaders[assetType]
	if !ok {
		return nil, fmt.Errorf("no loader registered for %s", path)
	}
	asset, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
	am.mutex.Unlock()
	return asset, nil
}

// SaveAsset writes asset to path as a snapshot file.
func (am *AssetManager) SaveAsset(path string, asset *mesh.Asset) error {
	saver, ok := am.loaders[AssetTypeSnapshot].(Saver)
	if !ok {
		return fmt.Errorf("no saver registered for %s", AssetTypeSnapshot)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return saver.Save(path, asset)
}

func (am *AssetManager) start() {
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					am.watchRecursive(e.Name, true)
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name, EventChanged)
			}
			//Can't stat a deleted directory, so just pretend that it's always a directory and
			//try to remove from the watch list...  we really have no clue if it's a directory or not...
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
				am.fsnotify.Remove(e.Name)
			}

		case e, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(e.Error())
			select {
			case am.errors <- e:
			default:
			}

		case <-am.done:
			am.fsnotify.Close()
			close(am.events)
			close(am.errors)
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the mesh files already present. With notify set, those files
// are also reported on Events.
func (am *AssetManager) watchRecursive(path string, notify bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		if am.indexFile(walkPath) && notify {
			am.emit(Event{Path: walkPath, Type: determineAssetType(walkPath), Op: EventChanged})
		}
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string, op EventOp) {
	if am.indexFile(path) {
		am.emit(Event{Path: path, Type: determineAssetType(path), Op: op})
	}
}

// indexFile records path when it is a mesh file and reports whether it was.
func (am *AssetManager) indexFile(path string) bool {
	assetType := determineAssetType(path)
	if assetType == AssetTypeNone {
		return false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	info := am.assets[path]
	info.Path = path
	info.Type = assetType
	am.assets[path] = info
	return true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	info, ok := am.assets[path]
	delete(am.assets, path)
	am.mutex.Unlock()

	if ok {
		am.emit(Event{Path: path, Type: info.Type, Op: EventRemoved})
	}
}

// emit never blocks the watcher: when the consumer falls behind the event is
// dropped and the file is picked up on its next write.
func (am *AssetManager) emit(e Event) {
	select {
	case am.events <- e:
	default:
		core.LogWarn("asset event queue full, dropping %s", e.Path)
	}
}

func determineAssetType(path string) AssetType {
	switch filepath.Ext(path) {
	case ".pmesh":
		return AssetTypeSnapshot
	case ".obj":
		return AssetTypeObj
	default:
		return AssetTypeNone
	}
}
