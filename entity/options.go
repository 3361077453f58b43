package entity

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultDir is where the bot, its virtualenv and its credentials live.
	DefaultDir = "/opt/mjjbox-checkin"
	// DefaultBase is the forum the check-in script targets.
	DefaultBase = "https://mjjbox.com"
	// DefaultURL points at the published check-in script.
	DefaultURL = "https://raw.githubusercontent.com/mjjbox/checkin-bot/main/checkin.py"
)

// InstallOptions holds every operator decision for an install. Unset fields
// are resolved in order: command line flag, answers file, interactive prompt
// with a default. Pointer booleans distinguish "unset, ask" from "answered
// no". Collection is fully decoupled from provisioning so the workflow runs
// without a terminal.
type InstallOptions struct {
	Dir        string `yaml:"dir,omitempty"`
	URL        string `yaml:"url,omitempty"`
	Embed      bool   `yaml:"embed,omitempty"`
	Direct     bool   `yaml:"direct,omitempty"`
	AutoDeps   *bool  `yaml:"auto_deps,omitempty"`
	Username   string `yaml:"username,omitempty"`
	Password   string `yaml:"password,omitempty"`
	Notify     *bool  `yaml:"notify,omitempty"`
	ServerChan string `yaml:"serverchan,omitempty"`
	Base       string `yaml:"base,omitempty"`
	Timer      *bool  `yaml:"timer,omitempty"`
	Boot       *bool  `yaml:"boot,omitempty"`
}

type UninstallOptions struct {
	Dir     string `yaml:"dir,omitempty"`
	Confirm *bool  `yaml:"-"`
}

// ReadOptions parses an answers file pre-seeding prompt responses.
func ReadOptions(filename string) (InstallOptions, error) {
	var options InstallOptions

	content, err := os.ReadFile(filename)
	if err != nil {
		return options, fmt.Errorf("error reading answers file %s: %v", filename, err)
	}

	err = yaml.Unmarshal(content, &options)
	if err != nil {
		return options, fmt.Errorf("error deserializing answers file %s: %v", filename, err)
	}

	return options, nil
}

// Bool is a convenience for building pointer boolean options.
func Bool(b bool) *bool {
	return &b
}
