package config

import "time"

type Client struct {
	ServerAddr     string        `yaml:"server_addr" env:"SERVER_ADDR" env-required:"true"`
	Name           string        `yaml:"name" env:"NAME" env-default:"powsign-client"`
	Sessions       int           `yaml:"sessions" env:"SESSIONS" env-default:"1"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"CONNECT_TIMEOUT" env-default:"5s"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" env-default:"30s"`
	RetryAttempts  int           `yaml:"retry_attempts" env:"RETRY_ATTEMPTS" env-default:"3"`
	RetryDelay     time.Duration `yaml:"retry_delay" env:"RETRY_DELAY" env-default:"1s"`
}
