package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"aether/cmd/aether/codegen"
	"aether/cmd/aether/project"
	"aether/cmd/aether/toolchain"
)

// appName is the single source of truth for the application name.
const appName = "aether"

var envConfigDir = strings.ToUpper(appName) + "_CONFIG_DIR"

const (
	configFileName     = "config.yml"
	defaultProjectFile = appName + ".json"
	minEguiVersion     = ">= 0.20"
)

var rustEditions = []string{"2015", "2018", "2021", "2024"}

// Config is the content of config.yml. Missing keys keep their defaults.
type Config struct {
	Project   string          `yaml:"project"`
	Codegen   CodegenConfig   `yaml:"codegen"`
	Toolchain ToolchainConfig `yaml:"toolchain"`
	Editor    EditorConfig    `yaml:"editor"`
}

type CodegenConfig struct {
	EguiVersion  string  `yaml:"egui_version"`
	Edition      string  `yaml:"edition"`
	WindowTitle  string  `yaml:"window_title"`
	WindowWidth  float64 `yaml:"window_width"`
	WindowHeight float64 `yaml:"window_height"`
}

type ToolchainConfig struct {
	Command string        `yaml:"command"`
	Args    []string      `yaml:"args"`
	Timeout time.Duration `yaml:"timeout"`
}

type EditorConfig struct {
	HistoryLimit    int    `yaml:"history_limit"`
	DefaultTemplate string `yaml:"default_template"`
}

func defaultConfig() Config {
	return Config{
		Project: defaultProjectFile,
		Codegen: CodegenConfig{
			EguiVersion:  codegen.DefaultEguiVersion,
			Edition:      codegen.DefaultEdition,
			WindowTitle:  codegen.DefaultWindowTitle,
			WindowWidth:  codegen.DefaultWindowSize[0],
			WindowHeight: codegen.DefaultWindowSize[1],
		},
		Toolchain: ToolchainConfig{
			Command: toolchain.DefaultCommand,
			Args:    toolchain.DefaultArgs,
			Timeout: toolchain.DefaultTimeout,
		},
		Editor: EditorConfig{
			HistoryLimit:    project.DefaultHistoryLimit,
			DefaultTemplate: "empty",
		},
	}
}

// resolveConfigDir returns the base config directory for the application.
// Priority: $<APPNAME>_CONFIG_DIR > $XDG_CONFIG_HOME/<appName> > ~/.config/<appName>
func resolveConfigDir() (string, error) {
	if v := os.Getenv(envConfigDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig reads <dir>/config.yml over the defaults. A missing file is
// not an error.
func loadConfig(dir string) (Config, error) {
	cfg := defaultConfig()
	path := filepath.Join(dir, configFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	v, err := semver.NewVersion(c.Codegen.EguiVersion)
	if err != nil {
		return fmt.Errorf("codegen.egui_version %q: %w", c.Codegen.EguiVersion, err)
	}
	constraint, err := semver.NewConstraint(minEguiVersion)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("codegen.egui_version %s does not satisfy %s", v, minEguiVersion)
	}
	if !slices.Contains(rustEditions, c.Codegen.Edition) {
		return fmt.Errorf("codegen.edition %q: want one of %s", c.Codegen.Edition, strings.Join(rustEditions, ", "))
	}
	if c.Codegen.WindowWidth <= 0 || c.Codegen.WindowHeight <= 0 {
		return fmt.Errorf("codegen.window_width and window_height must be positive")
	}
	if c.Editor.HistoryLimit < 1 {
		return fmt.Errorf("editor.history_limit must be at least 1, got %d", c.Editor.HistoryLimit)
	}
	if !slices.Contains(project.Templates(), c.Editor.DefaultTemplate) {
		return fmt.Errorf("editor.default_template %q: want one of %s",
			c.Editor.DefaultTemplate, strings.Join(project.Templates(), ", "))
	}
	return nil
}

func (c Config) codegenOptions() codegen.Options {
	return codegen.Options{
		EguiVersion: c.Codegen.EguiVersion,
		Edition:     c.Codegen.Edition,
		WindowTitle: c.Codegen.WindowTitle,
		WindowSize:  [2]float64{c.Codegen.WindowWidth, c.Codegen.WindowHeight},
	}
}

func (c Config) checker() toolchain.Checker {
	return toolchain.Checker{
		Command: c.Toolchain.Command,
		Args:    c.Toolchain.Args,
		Timeout: c.Toolchain.Timeout,
	}
}
