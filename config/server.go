package config

import "time"

type Server struct {
	Addr      string        `yaml:"addr" env:"ADDR" env-required:"true"`
	Name      string        `yaml:"name" env:"NAME" env-default:"powsign-server"`
	Deadline  time.Duration `yaml:"deadline" env:"DEADLINE" env-default:"30s"`
	KeepAlive time.Duration `yaml:"keep_alive" env:"SERVER_KEEP_ALIVE" env-default:"15s"`
}
