//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs the unit tests with the race detector. goki/vulkan needs cgo.
func (Test) Unit() error {
	if _, err := executeCmd("go", withArgs("test", "-race", "./..."), withEnv("CGO_ENABLED", "1"), withStream()); err != nil {
		return err
	}
	return nil
}
