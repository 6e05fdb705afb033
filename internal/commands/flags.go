package commands

import (
	"os"
	"path/filepath"

	"github.com/colonyops/squadview/internal/core/config"
	"github.com/colonyops/squadview/internal/squad"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Workspace  string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Provider is the aggregation provider shared by all commands
	Provider *squad.Provider
}

// DefaultWorkspace returns the current directory, the workspace all
// squad paths resolve against unless --workspace overrides it.
func DefaultWorkspace() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// DefaultConfigPath returns the workspace-local config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultWorkspace(), "squadview.yml")
}
