package configloader

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to the current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags. These take
	// highest precedence.
	CLIConfig *Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded, in order.
	LoadedFrom []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (MDLINES_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.mdlines.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/mdlines/config.yaml)
//  6. System config (/etc/mdlines/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{
		Config: NewConfig(),
		Paths:  paths,
	}

	files := []string{paths.System, paths.User}
	if paths.Explicit != "" {
		files = append(files, paths.Explicit)
	} else {
		files = append(files, paths.Project)
	}
	for _, path := range files {
		if path == "" {
			continue
		}
		fileCfg, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		result.Config.merge(fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(result.Config); err != nil {
			return nil, err
		}
	}

	result.Config.merge(opts.CLIConfig)

	if err := Validate(result.Config); err != nil {
		return nil, err
	}
	return result, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}
