// Command zengarden runs the garden scene in a terminal top-down viewer
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/zengarden/audio"
	"github.com/lixenwraith/zengarden/config"
	"github.com/lixenwraith/zengarden/core"
	"github.com/lixenwraith/zengarden/host"
	"github.com/lixenwraith/zengarden/parameter"
	"github.com/lixenwraith/zengarden/render"
	"github.com/lixenwraith/zengarden/scene"
	"github.com/lixenwraith/zengarden/settings"
	"github.com/lixenwraith/zengarden/vmath"
)

const settingsApp = "zengarden"

var (
	spawnPoint = vmath.V3(0, 0, 9)
	viewCenter = vmath.V3(5, 0, 4)
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	configPath := flag.String("config", "", "scene YAML file, built-in layout when empty")
	role := flag.String("role", "", "sync role: local, host, peer, ws")
	addr := flag.String("addr", "", "host bind or peer dial address; relay URL for ws")
	logPath := flag.String("log", "", "log file, logging is discarded when empty")
	flag.Parse()

	if err := run(*configPath, *role, *addr, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "zengarden: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, role, addr, logPath string) error {
	logFile, err := setupLogging(logPath)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := config.Default()
	if configPath != "" {
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	applyFlags(&cfg.Network, role, addr)
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := subsystem("zengarden")

	store, err := settings.Open(settingsApp, subsystem("settings"))
	if err != nil {
		logger.Printf("settings kept in memory: %v", err)
	}

	cues := audio.NewCuePlayer(audio.DefaultGain)
	if err := cues.Initialize(); err != nil {
		logger.Printf("audio unavailable, continuing silent: %v", err)
	}
	defer cues.Cleanup()

	bus, err := openBus(cfg.Network, subsystem("sync"))
	if err != nil {
		return err
	}
	if bus != nil {
		defer bus.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	core.OnCrash(screen.Fini)

	player := host.NewSimPlayer(spawnPoint)
	input := host.NewInputState()
	sc, err := scene.Build(scene.Options{
		Config: cfg,
		Host: scene.Host{
			Player:    player,
			Relocator: player,
			Input:     input,
			Cues:      cues,
		},
		Bus:    bus,
		Logger: subsystem("scene"),
		// Viewers on one channel agree on platform phase through the wall clock
		Epoch: time.Duration(time.Now().UnixNano()),
	})
	if err != nil {
		return err
	}

	a := &app{
		scene:    sc,
		player:   player,
		input:    input,
		settings: store,
		cues:     cues,
		role:     cfg.Network.Role,
		logger:   logger,
	}
	a.applyToggles(store.Toggles())

	sc.Start()
	defer sc.Stop()

	viewer := render.NewViewer(screen, viewCenter, cfg.Platforms.Radius*2+1)
	loop(screen, viewer, a)
	return nil
}

// loop polls terminal input and redraws until quit
func loop(screen tcell.Screen, viewer *render.Viewer, a *app) {
	events := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	})

	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !a.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				viewer.Resize()
			}
		case <-ticker.C:
			viewer.Draw(a.frame())
		}
	}
}
