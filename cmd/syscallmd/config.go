package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	syscallmd "github.com/shdnx/linux-syscallmd"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

const (
	envHome    = "SYSCALLMD_HOME"
	envFormat  = "SYSCALLMD_FORMAT"
	envArch    = "SYSCALLMD_ARCH"
	envKernel  = "SYSCALLMD_KERNEL"
	envVerbose = "SYSCALLMD_VERBOSE"
)

const (
	header = "header"
	json   = "json"
	table  = "table"
)

const (
	defaultVersion = "v6.0"
	defaultArch    = syscallmd.X64Arch
	defaultFormat  = header
)

const configFileName = "config.yaml"

type config struct {
	Version      string `yaml:"version"`
	Architecture string `yaml:"architecture"`
	Format       string `yaml:"format"`
}

func configDir() (string, error) {
	if env.Has(envHome) {
		return env.Str(envHome), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get users home directory: %w", err)
	}
	return filepath.Join(home, ".syscallmd"), nil
}

func cacheDir(cfgDir string) string {
	return filepath.Join(cfgDir, "cache")
}

func createDirs(cfgDir string) error {
	if err := os.MkdirAll(cacheDir(cfgDir), 0o744); err != nil {
		return fmt.Errorf("failed to create config and cache directories: %w", err)
	}
	return nil
}

func getOrCreateConfigFile(cfgDir string) (config, error) {
	cfgPath := filepath.Join(cfgDir, configFileName)
	data, err := os.ReadFile(cfgPath)
	if err == nil {
		var cfg config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %q: %w", cfgPath, err)
		}
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return config{}, err
	}

	cfg := config{
		Version:      defaultVersion,
		Architecture: string(defaultArch),
		Format:       defaultFormat,
	}
	data, err = yaml.Marshal(&cfg)
	if err != nil {
		return config{}, err
	}

	if err := os.WriteFile(cfgPath, data, 0o644); err != nil {
		return config{}, err
	}
	return cfg, nil
}

// applyDefaults fills in whatever the flags left unset, from the environment
// first and the config file second.
func (o *options) applyDefaults(cfg config) {
	if o.arch == "" {
		o.arch = env.Str(envArch, cfg.Architecture)
	}
	if o.format == "" {
		o.format = env.Str(envFormat, cfg.Format)
	}
	if o.kernel == "" {
		o.kernel = env.Str(envKernel)
	}
	if !o.verbose {
		o.verbose = env.Bool(envVerbose)
	}
}
