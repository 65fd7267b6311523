package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spaghettifunk/polymesh/engine/assets"
	"github.com/spaghettifunk/polymesh/engine/bridge"
	"github.com/spaghettifunk/polymesh/engine/config"
	"github.com/spaghettifunk/polymesh/engine/core"
	"github.com/spaghettifunk/polymesh/engine/mesh"
	"github.com/spaghettifunk/polymesh/engine/systems"
	"github.com/spaghettifunk/polymesh/engine/topology"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Engine imports mesh files, keeps one PolyMesh per file in sync with it and
// analyses its topology. All mesh work happens on the goroutine calling Run.
type Engine struct {
	currentStage Stage
	application  *Application
	config       *config.Config
	isRunning    bool
	assetManager *assets.AssetManager
	jobSystem    *systems.JobSystem
	bridge       bridge.Bridge
	clock        *core.Clock

	meshes map[string]*mesh.PolyMesh

	quit     chan struct{}
	quitOnce sync.Once
}

func New(app *Application) (*Engine, error) {
	e := &Engine{
		currentStage: EngineStageBooting,
		application:  app,
		config:       config.Default(),
		clock:        core.NewClock(),
		meshes:       make(map[string]*mesh.PolyMesh),
		quit:         make(chan struct{}),
	}
	if app.ApplicationConfig != nil && app.ApplicationConfig.Config != nil {
		e.config = app.ApplicationConfig.Config
	}
	if err := e.config.Validate(); err != nil {
		return nil, err
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	e.assetManager = am

	js, err := systems.NewJobSystem(e.config.Jobs.Workers, e.config.Jobs.Workers*2)
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	e.jobSystem = js

	b, err := bridge.New(bridge.Kind(e.config.Bridge.Kind))
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	e.bridge = b

	e.currentStage = EngineStageBootComplete
	return e, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	level, err := core.ParseLogLevel(e.config.Log.Level)
	if err != nil {
		return err
	}
	prefix := e.config.Log.Prefix
	if prefix == "" && e.application.ApplicationConfig != nil {
		prefix = e.application.ApplicationConfig.Name
	}
	core.LogConfigure(os.Stderr, prefix, e.config.Log.ReportCaller, level)

	// initialize events
	core.EventInitialize()
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	// register some events
	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)

	if err := e.assetManager.Initialize(e.config.Watch.Dir); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run imports every mesh file under the watch directory. When watching is
// enabled it then keeps re-importing files as they change until Stop is
// called or an EVENT_CODE_APPLICATION_QUIT is fired.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine: Run called in stage %d", e.currentStage)
	}
	e.currentStage = EngineStageRunning
	e.isRunning = true
	e.clock.Start()

	indexed := e.assetManager.Assets()
	paths := make([]string, len(indexed))
	for i, a := range indexed {
		paths[i] = a.Path
	}
	loaded := e.loadAll(paths)
	for i, path := range paths {
		if loaded[i] == nil {
			continue
		}
		if _, _, err := e.importAsset(path, loaded[i]); err != nil {
			core.LogWarn("rejected %s: %s", path, err.Error())
		}
	}
	if !e.config.Watch.Enabled {
		e.isRunning = false
		return nil
	}

	core.LogInfo("watching %s", e.config.Watch.Dir)
	for e.isRunning {
		select {
		case ev, ok := <-e.assetManager.Events():
			if !ok {
				e.isRunning = false
				break
			}
			e.handleAssetEvent(ev)
		case err, ok := <-e.assetManager.Errors():
			if ok {
				core.LogError("watcher: %s", err.Error())
			}
		case <-e.quit:
			e.isRunning = false
		}
	}

	e.clock.Update()
	core.LogInfo("stopped after %s with %d meshes", e.clock.Elapsed(), len(e.meshes))
	return nil
}

// Stop makes Run return. It is safe to call from any goroutine.
func (e *Engine) Stop() {
	e.quitOnce.Do(func() { close(e.quit) })
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	e.Stop()

	if r, ok := e.bridge.(bridge.Registrar); ok {
		for _, m := range e.meshes {
			if err := r.Unregister(m); err != nil {
				core.LogWarn(err.Error())
			}
		}
	}
	core.EventUnregister(core.EVENT_CODE_APPLICATION_QUIT, e)
	if err := e.jobSystem.Shutdown(); err != nil {
		return err
	}
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	return core.EventShutdown()
}

// Mesh returns the mesh imported from path.
func (e *Engine) Mesh(path string) (*mesh.PolyMesh, bool) {
	m, ok := e.meshes[path]
	return m, ok
}

func (e *Engine) Bridge() bridge.Bridge {
	return e.bridge
}

// ImportFile loads path and applies it wholesale to the mesh kept for that
// file, creating the mesh on first import. The mesh is validated, its normals
// optionally recalculated, analysed and, when an output directory is
// configured, exported as a snapshot.
func (e *Engine) ImportFile(path string) (*mesh.PolyMesh, *Report, error) {
	asset, err := e.assetManager.LoadAsset(path)
	if err != nil {
		return nil, nil, err
	}
	return e.importAsset(path, asset)
}

// loadAll parses paths on the job system. The result is parallel to paths;
// files that failed to load are nil.
func (e *Engine) loadAll(paths []string) []*mesh.Asset {
	loaded := make([]*mesh.Asset, len(paths))
	tasks := make([]systems.JobTask, len(paths))
	for i, path := range paths {
		i, path := i, path
		tasks[i] = systems.JobTask{
			Name: "load " + path,
			OnStart: func() (interface{}, error) {
				return e.assetManager.LoadAsset(path)
			},
			OnComplete: func(result interface{}) {
				loaded[i] = result.(*mesh.Asset)
			},
		}
	}
	e.jobSystem.RunAll(tasks)
	return loaded
}

func (e *Engine) importAsset(path string, asset *mesh.Asset) (*mesh.PolyMesh, *Report, error) {
	m, known := e.meshes[path]
	if !known {
		m = mesh.NewPolyMesh(asset.Name)
	}
	// A rejected asset must leave the stored mesh untouched.
	staged := m.Copy()
	staged.ApplyFrom(asset, mesh.ChannelAll)
	if err := staged.Validate(); err != nil {
		return nil, nil, err
	}
	m.ApplyFrom(asset, mesh.ChannelAll)

	if known {
		// Positions may move without changing the fingerprint.
		m.Cache().Clear()
		e.bridge.Refresh(m)
	} else {
		e.meshes[path] = m
		if r, ok := e.bridge.(bridge.Registrar); ok {
			r.Register(m, asset)
		}
	}

	if e.config.Normals.Recalculate {
		topology.RecalculateNormals(m)
		if err := e.bridge.SetAttributes(m, mesh.ChannelNormal); err != nil {
			core.LogWarn("bridge: %s", err.Error())
		}
	}

	report := Analyze(m)
	core.LogDebug("imported %s\n%s", path, report)

	if dir := e.config.Output.Dir; dir != "" {
		if err := e.export(dir, path, m); err != nil {
			return m, report, err
		}
	}

	ctx := core.EventContext{}
	ctx.Data.C[0] = m.Name
	ctx.Data.C[1] = path
	ctx.Data.U64[0] = uint64(m.VertexCount())
	core.EventFire(core.EVENT_CODE_MESH_IMPORTED, e, ctx)

	if e.application.FnOnImport != nil {
		if err := e.application.FnOnImport(path, m, report); err != nil {
			return m, report, err
		}
	}
	return m, report, nil
}

// ExportPath returns where the snapshot of the mesh imported from path is
// written inside dir.
func ExportPath(dir, path string) string {
	base := filepath.Base(path)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".pmesh")
}

func (e *Engine) export(dir, path string, m *mesh.PolyMesh) error {
	out := &mesh.Asset{}
	m.ApplyTo(out, mesh.ChannelAll)
	target := ExportPath(dir, path)
	if err := e.assetManager.SaveAsset(target, out); err != nil {
		return fmt.Errorf("export %s: %w", target, err)
	}
	core.LogDebug("exported %s", target)
	return nil
}

func (e *Engine) handleAssetEvent(ev assets.Event) {
	switch ev.Op {
	case assets.EventChanged:
		if _, _, err := e.ImportFile(ev.Path); err != nil {
			core.LogWarn("rejected %s: %s", ev.Path, err.Error())
		}
	case assets.EventRemoved:
		m, ok := e.meshes[ev.Path]
		if !ok {
			return
		}
		delete(e.meshes, ev.Path)
		if r, ok := e.bridge.(bridge.Registrar); ok {
			if err := r.Unregister(m); err != nil {
				core.LogWarn(err.Error())
			}
		}
		core.LogInfo("removed %s", ev.Path)
		if e.application.FnOnRemove != nil {
			if err := e.application.FnOnRemove(ev.Path); err != nil {
				core.LogError(err.Error())
			}
		}
	}
}

func (e *Engine) onEvent(code core.SystemEventCode, sender, listener interface{}, context core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down.")
		e.Stop()
		return true
	}
	return false
}
