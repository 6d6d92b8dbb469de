package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// configPathEnv names an optional YAML file read before the environment.
const configPathEnv = "CONFIG_PATH"

type ServerConfig struct {
	Server    `yaml:"server"`
	Pow       `yaml:"pow"`
	Signature `yaml:"signature"`
	Log       `yaml:"log"`
}

type ClientConfig struct {
	Client    `yaml:"client"`
	Pow       `yaml:"pow"`
	Signature `yaml:"signature"`
	Log       `yaml:"log"`
}

type DemoConfig struct {
	Demo      `yaml:"demo"`
	Pow       `yaml:"pow"`
	Signature `yaml:"signature"`
	Log       `yaml:"log"`
}

func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadDemoConfig() (*DemoConfig, error) {
	cfg := &DemoConfig{}
	if err := load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load(cfg interface{}) error {
	var err error
	if path := os.Getenv(configPathEnv); path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	return nil
}
