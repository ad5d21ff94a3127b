/*
dset builds descriptor sets on a host-side device from a TOML scenario and
prints the resulting slot tables.

	dset -config device.toml -scenario scene.toml [-watch]
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/dset/engine/assets"
	"github.com/spaghettifunk/dset/engine/core"
	"github.com/spaghettifunk/dset/engine/renderer/icd"
	"github.com/spaghettifunk/dset/testbed"
)

func main() {
	configPath := flag.String("config", "", "device config file (TOML)")
	scenarioPath := flag.String("scenario", "", "scenario file (TOML)")
	watch := flag.Bool("watch", false, "run again every time the scenario file changes")
	flag.Parse()

	if *scenarioPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := core.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = core.LoadConfig(*configPath); err != nil {
			core.LogFatal("%s", err)
		}
	}
	if err := cfg.Apply(); err != nil {
		core.LogFatal("%s", err)
	}

	if !*watch {
		if err := runOnce(cfg, *scenarioPath); err != nil {
			core.LogFatal("%s", err)
		}
		return
	}

	w, err := assets.NewWatcher(*scenarioPath)
	if err != nil {
		core.LogFatal("%s", err)
	}
	defer w.Close()

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	if err := runOnce(cfg, *scenarioPath); err != nil {
		core.LogError("%s", err)
	}
	for {
		select {
		case path, ok := <-w.Events():
			if !ok {
				return
			}
			core.LogInfo("%s changed, running again", path)
			if err := runOnce(cfg, path); err != nil {
				core.LogError("%s", err)
			}
		case <-sigCh:
			core.LogInfo("shutting down")
			return
		}
	}
}

// runOnce gives every run a fresh device so runs do not share handles or
// allocator state.
func runOnce(cfg *core.Config, path string) error {
	sc, err := testbed.LoadScenario(path)
	if err != nil {
		return err
	}

	dev, err := icd.NewDevice(cfg.Device)
	if err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}
	defer dev.Destroy()

	res, err := testbed.Run(dev, sc)
	if err != nil {
		return err
	}
	defer res.Destroy()

	return res.Dump(os.Stdout)
}
