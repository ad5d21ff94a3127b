//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the scenario named by $DSET_SCENARIO (default testdata/example.toml).
func (Run) Scenario() error {
	mg.Deps(Build.Binary)

	scenario := os.Getenv("DSET_SCENARIO")
	if scenario == "" {
		scenario = "testdata/example.toml"
	}
	args := []string{"-scenario", scenario}
	if cfg := os.Getenv("DSET_CONFIG"); cfg != "" {
		args = append(args, "-config", cfg)
	}
	fmt.Println("Run scenario...")
	if _, err := executeCmd("bin/dset", withArgs(args...), withStream()); err != nil {
		return err
	}
	return nil
}
