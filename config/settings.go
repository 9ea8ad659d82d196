package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerSettings contains the configuration of a game server process.
type ServerSettings struct {
	Name      string `yaml:"name"`
	Port      uint   `yaml:"port"`
	Version   string `yaml:"version"` // required client version, empty accepts any
	LevelsDir string `yaml:"levels_dir"`
	Level     string `yaml:"level"`      // stem of a .tmx file in LevelsDir/levels
	TuneZones string `yaml:"tune_zones"` // optional, relative to LevelsDir
	DemoDir   string `yaml:"demo_dir"`   // empty disables recording
	Seed      uint64 `yaml:"seed"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // text or json
}

// DefaultServerSettings returns the settings used when no file is given.
func DefaultServerSettings() ServerSettings {
	return ServerSettings{
		Name:      "hookcore server",
		Port:      7373,
		LevelsDir: "assets",
		Level:     "default",
		TuneZones: "tune_zones.yaml",
		Seed:      1,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// LoadServerSettings reads a YAML settings file on top of the defaults.
func LoadServerSettings(path string) (ServerSettings, error) {
	s := DefaultServerSettings()
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
