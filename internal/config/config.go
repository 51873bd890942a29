package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Bot      Bot      `yaml:"bot"`
	Player   Player   `yaml:"player"`
	SelfPlay SelfPlay `yaml:"selfplay"`
}

type Bot struct {
	Opening string `yaml:"opening" env:"BOT_OPENING" env-default:"random"`
	Seed    int64  `yaml:"seed" env:"BOT_SEED" env-default:"2294"`
}

// Player holds the human's answers; empty values are asked for at the terminal.
type Player struct {
	Mark  string `yaml:"mark" env:"PLAYER_MARK" env-default:""`
	First string `yaml:"first" env:"PLAYER_FIRST" env-default:""`
}

type SelfPlay struct {
	Games   int `yaml:"games" env:"SELFPLAY_GAMES" env-default:"10"`
	Threads int `yaml:"threads" env:"SELFPLAY_THREADS" env-default:"4"`
}

// MustLoad - load all configurations in config.yml file, or from the environment when there is no file.
func MustLoad(path string) *Config {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		err = cleanenv.ReadConfig(path, config)
	case errors.Is(err, os.ErrNotExist):
		err = cleanenv.ReadEnv(config)
	}

	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}
