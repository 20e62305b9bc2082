// Package branding provides compile-time identity values for the CLI.
//
// Forks edit branding.yaml in this package; Go's //go:embed bakes it into
// the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName            string `yaml:"cli_name"`
	DisplayName        string `yaml:"display_name"`
	Description        string `yaml:"description"`
	HomeDir            string `yaml:"home_dir"`
	EnvPrefix          string `yaml:"env_prefix"`
	DefaultProjectName string `yaml:"default_project_name"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:            "create-ts-router-vite",
			DisplayName:        "create-ts-router-vite",
			Description:        "A CLI for creating web applications with Tanstack Router and Vite",
			HomeDir:            ".create-ts-router-vite",
			EnvPrefix:          "CTRV",
			DefaultProjectName: "my-super-app",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "create-ts-router-vite").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the name shown in the intro banner.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME.
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CTRV").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// DefaultProjectName returns the project name offered when the user just presses enter.
func DefaultProjectName() string { load(); return defaults.DefaultProjectName }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("home") → "CTRV_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
