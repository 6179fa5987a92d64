package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by every CLI command.
type Config struct {
	// DataDir overrides the embedded reference tables when set.
	DataDir  string `yaml:"data_dir"`
	LogLevel string `yaml:"log_level"`
	Indent   string `yaml:"indent"`

	// Workers bounds the number of files decoded at once by batch.
	Workers int  `yaml:"workers"`
	Force   bool `yaml:"force"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Indent:   "  ",
		Workers:  4,
	}
}

// Load reads a YAML config on top of the defaults. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "config.Load error reading %s", path)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config.Load error parsing %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config.Load error validating %s", path)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Workers < 1 {
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c Config) Level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel, errors.Wrap(err, "config.Config.Level error")
	}
	return level, nil
}
