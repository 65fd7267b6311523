/*
polymesh imports mesh files, keeps them in sync while they change on disk and
reports their topology: shared positions, edges, boundaries and UV seams.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/polymesh/engine"
	"github.com/spaghettifunk/polymesh/engine/config"
	"github.com/spaghettifunk/polymesh/engine/core"
	"github.com/spaghettifunk/polymesh/engine/mesh"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the TOML configuration file")
	demo := flag.Bool("demo", false, "report on the built-in fixture meshes and exit")
	once := flag.Bool("once", false, "import the watch directory once and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		core.LogFatal(err.Error())
	}
	if *once {
		cfg.Watch.Enabled = false
	}

	app := &engine.Application{
		ApplicationConfig: &engine.ApplicationConfig{
			Name:   "polymesh",
			Config: cfg,
		},
		FnOnImport: func(path string, m *mesh.PolyMesh, report *engine.Report) error {
			core.LogInfo("%s\n%s", path, report)
			return nil
		},
	}

	engine, err := engine.New(app)
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := engine.Initialize(); err != nil {
		core.LogFatal(err.Error())
	}

	if *demo {
		if _, err := engine.Demo(); err != nil {
			core.LogError(err.Error())
		}
		_ = engine.Shutdown()
		return
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// stop the engine loop on sigterm and other system calls
	go func() {
		<-sigCh
		engine.Stop()
	}()

	// run engine
	if err := engine.Run(); err != nil {
		core.LogError(err.Error())
	}
	if err := engine.Shutdown(); err != nil {
		core.LogFatal(err.Error())
	}
}
