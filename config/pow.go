package config

type Pow struct {
	Difficulty  int    `yaml:"difficulty" env:"DIFFICULTY" env-default:"4"`
	Workers     int    `yaml:"workers" env:"POW_WORKERS" env-default:"1"`
	MaxAttempts uint64 `yaml:"max_attempts" env:"POW_MAX_ATTEMPTS" env-default:"0"`
}

type Signature struct {
	KeyBits int `yaml:"key_bits" env:"RSA_KEY_BITS" env-default:"2048"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}
