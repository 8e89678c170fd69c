package config

import (
	"log"
	"sync"
	"time"

	"github.com/bookery/library-service/pkg/kafka"
	"github.com/bookery/library-service/pkg/logger"
	"github.com/bookery/library-service/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"LIBRARY_HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"LIBRARY_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ"`
	WriteTimeout time.Duration
}

type Config struct {
	Server    HTTPServer   `yaml:"server"`
	Kafka     kafka.Config `yaml:"kafka"`
	Database  postgres.DB  `yaml:"db"`
	Log       logger.Log   `yaml:"log"`
	AdminCode string       `envconfig:"ADMIN_CODE"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}
