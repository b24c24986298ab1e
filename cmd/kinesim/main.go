package main

import (
	"flag"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gekko3d/kinematic"
	"github.com/gekko3d/kinematic/scenario"
)

func main() {
	configPath := flag.String("config", "", "YAML controller config (defaults when empty)")
	scenarioPath := flag.String("scenario", "", "YAML scenario to simulate")
	every := flag.Int("every", 10, "Log a summary every N ticks (0 disables)")
	debug := flag.Bool("debug", false, "Enable debug logging of ground transitions")
	watch := flag.Bool("watch", false, "Re-run when the scenario or config file changes")
	flag.Parse()

	logger := kinematic.NewDefaultLogger("kinesim", *debug)
	if *scenarioPath == "" {
		logger.Errorf("-scenario is required")
		os.Exit(2)
	}

	run := func() {
		cfg, err := kinematic.LoadConfig(*configPath)
		if err != nil {
			logger.Errorf("%v", err)
			return
		}
		sc, err := scenario.Load(*scenarioPath)
		if err != nil {
			logger.Errorf("%v", err)
			return
		}
		res, err := scenario.Run(sc, cfg, logger.Named(sc.Name), *every)
		if err != nil {
			logger.Errorf("%v", err)
			return
		}
		last := res.Last()
		logger.Infof("finished at (%.3f %.3f %.3f) grounded=%t reason=%s",
			last.Position.X(), last.Position.Y(), last.Position.Z(), last.Ground.Grounded, last.Ground.Reason)
	}

	run()
	if !*watch {
		return
	}

	dirs := []string{filepath.Dir(*scenarioPath)}
	if *configPath != "" && filepath.Dir(*configPath) != dirs[0] {
		dirs = append(dirs, filepath.Dir(*configPath))
	}
	w, err := scenario.NewWatcher(dirs...)
	if err != nil {
		logger.Errorf("watch: %v", err)
		os.Exit(1)
	}
	defer w.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	watched := map[string]bool{filepath.Clean(*scenarioPath): true}
	if *configPath != "" {
		watched[filepath.Clean(*configPath)] = true
	}

	logger.Infof("watching %v", dirs)
	for {
		select {
		case name := <-w.Events:
			if !watched[filepath.Clean(name)] {
				continue
			}
			logger.Infof("%s changed, re-running", name)
			run()
		case err := <-w.Errors:
			logger.Warnf("watch: %v", err)
		case <-interrupt:
			return
		}
	}
}
