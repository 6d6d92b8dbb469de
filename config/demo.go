package config

type Demo struct {
	Nickname     string `yaml:"nickname" env:"NICKNAME"`
	Difficulties []int  `yaml:"difficulties" env:"DEMO_DIFFICULTIES" env-separator:","`
}
