// Command game hosts the platformer behaviors in an ebiten window.
package main

import (
	"flag"
	"io/fs"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/younwookim/behave/internal/application/game"
	"github.com/younwookim/behave/internal/application/replay"
	"github.com/younwookim/behave/internal/application/scene/playing"
	"github.com/younwookim/behave/internal/infrastructure/config"
	"github.com/younwookim/behave/internal/infrastructure/logger"
)

func main() {
	logger.Init()

	levelFlag := flag.String("level", "demo", "Stage to play (a file under configs/stages)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded replay file")
	watchFlag := flag.Bool("watch", false, "Reload the stage when its file changes (needs -configs)")
	configsFlag := flag.String("configs", "", "Load configs from this directory instead of the embedded ones")
	flag.Parse()

	loader, err := newLoader(*configsFlag)
	if err != nil {
		logger.Log.Fatalf("Failed to open configs: %v", err)
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		logger.Log.Fatalf("Failed to load config: %v", err)
	}

	opts := playing.Options{
		RecordPath: *recordFlag,
		Stages:     loader,
	}

	stageName := *levelFlag
	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			logger.Log.Fatalf("Failed to load replay: %v", err)
		}
		opts.Replayer = replay.NewReplayer(*data)
		opts.Seed = opts.Replayer.Seed()
		if s := opts.Replayer.Stage(); s != "" {
			stageName = s
		}
		logger.Log.WithFields(logrus.Fields{
			"path":   *replayFlag,
			"frames": len(data.Frames),
			"seed":   data.Seed,
		}).Info("replay loaded")
	}

	if *watchFlag {
		if *configsFlag == "" {
			logger.Log.Fatal("-watch needs -configs pointing at a config directory")
		}
		watcher, err := config.NewWatcher(*configsFlag, filepath.Join(*configsFlag, "stages"))
		if err != nil {
			logger.Log.Fatalf("Failed to watch configs: %v", err)
		}
		defer func() { _ = watcher.Close() }()
		go logWatchErrors(watcher.Errors)
		opts.Reloads = watcher.Events
	}

	stageCfg, err := loader.LoadStage(stageName)
	if err != nil {
		logger.Log.Fatalf("Failed to load stage: %v", err)
	}

	scn, err := playing.New(cfg, stageCfg, opts)
	if err != nil {
		logger.Log.Fatalf("Failed to build stage: %v", err)
	}

	display := cfg.Physics.Display
	g := game.New(scn, display.ScreenWidth, display.ScreenHeight, display.Framerate)

	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle("Platformer Behaviors")
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		logger.Log.Fatal(err)
	}
}

// newLoader reads configs from dir, or from the embedded copy when dir is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func logWatchErrors(errs <-chan error) {
	for err := range errs {
		logger.Log.WithError(err).Warn("config watcher error")
	}
}
