package config

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/caarlos0/env"
	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/adiazny/fablab-reserves/internal/pkg/api"
)

const (
	LocalAPIBaseURL    = "http://localhost:8000"
	DeployedAPIBaseURL = "https://fablab-backend-zk8n.onrender.com"

	component = "fablab-reserves"
)

type Config struct {
	APIBaseURL       string        `env:"API_BASE_URL" envDefault:"http://localhost:8000"`
	HTTPTimeout      time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	ShowEventDetails bool          `env:"SHOW_EVENT_DETAILS" envDefault:"true"`
	TopicARN         string        `env:"TOPIC_ARN"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Setup sizes GOMAXPROCS to the container quota and reads the environment.
func Setup() (*Config, error) {
	_, err := maxprocs.Set()
	if err != nil {
		return nil, fmt.Errorf("error setting GOMAXPROCS %w", err)
	}

	return Load()
}

func Load() (*Config, error) {
	cfg := &Config{}

	err := env.Parse(cfg)
	if err != nil {
		return nil, fmt.Errorf("error parsing environment variables %w", err)
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("error API_BASE_URL is empty")
	}

	return cfg, nil
}

// NewLogger returns a JSON logger tagged with the component name. Unknown
// levels fall back to info.
func NewLogger(level string, out io.Writer) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logrus.NewEntry(logger).WithField("component", component)
}

// NewAPIClient builds the reservation client for the configured origin.
func (cfg *Config) NewAPIClient(log *logrus.Entry) *api.Client {
	return &api.Client{
		Log: log,
		Config: api.Config{
			BaseAPIHost: cfg.APIBaseURL,
		},
		HTTP: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
	}
}
