//go:build mage

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type cmdOptions struct {
	args   []string
	env    map[string]string
	stream bool
}

type cmdOption func(*cmdOptions)

func withArgs(args ...string) cmdOption {
	return func(o *cmdOptions) {
		o.args = args
	}
}

// withEnv adds variables on top of the current environment.
func withEnv(key, value string) cmdOption {
	return func(o *cmdOptions) {
		if o.env == nil {
			o.env = map[string]string{}
		}
		o.env[key] = value
	}
}

func withStream() cmdOption {
	return func(o *cmdOptions) {
		o.stream = true
	}
}

// executeCmd runs command and returns its stdout. Streamed commands print as
// they go and return no output.
func executeCmd(command string, options ...cmdOption) (string, error) {
	opts := &cmdOptions{}
	for _, o := range options {
		o(opts)
	}
	fmt.Printf("Executing: %s %s\n", command, strings.Join(opts.args, " "))

	if opts.stream || mg.Verbose() {
		if err := sh.RunWithV(opts.env, command, opts.args...); err != nil {
			return "", fmt.Errorf("error executing %s: %w", command, err)
		}
		return "", nil
	}

	out, err := sh.OutputWith(opts.env, command, opts.args...)
	if err != nil {
		return "", fmt.Errorf("error executing %s: %w\n%s", command, err, out)
	}
	return out, nil
}
