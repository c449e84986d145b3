package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

const defaultEnvPath = "./configs/.env"

var (
	once     sync.Once
	instance *Config
)

type Config struct {
}

func New() *Config {
	once.Do(func() {
		path := os.Getenv("CONFIG_PATH")
		if path == "" {
			path = defaultEnvPath
		}
		err := godotenv.Load(path)
		if err != nil {
			log.Fatal("loading envs error: ", err)
		}
		instance = &Config{}
	})
	return instance
}

func (c *Config) GetString(key string) string {
	return os.Getenv(key)
}

func (c *Config) GetStringOrDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
