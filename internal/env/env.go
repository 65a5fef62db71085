package env

import (
	"fmt"
	"os"
	"path/filepath"
)

type Env struct {
	HOME   string
	Config *Config
}

// Load resolves the docwriter home and reads its config file. An empty
// configPath means <home>/config.toml.
func Load(configPath string) (*Env, error) {
	home := DocwriterHome()
	if configPath == "" {
		configPath = ConfigPath(home)
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return &Env{
		HOME:   home,
		Config: cfg,
	}, nil
}

func DocwriterHome() string {
	dir := os.Getenv("DOCWRITER_HOME")
	if dir != "" {
		return dir
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		panic(fmt.Errorf("couldn't get user config dir: %w", err))
	}
	return filepath.Join(dir, "docwriter")
}

func ConfigPath(home string) string {
	return filepath.Join(home, "config.toml")
}
