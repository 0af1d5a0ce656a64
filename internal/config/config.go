package config

import "time"

type Config struct {
	Environment Environment
	Log         Log

	API     API     `envPrefix:"STOREFRONT_API_"`
	Session Session `envPrefix:"SESSION_DB_"`
}

type API struct {
	BaseURL string        `env:"BASE_URL" envDefault:"http://localhost:5000/api"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Session selects where the durable token/user entries live.
type Session struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // sqlite, mysql
	DSN    string `env:"DSN" envDefault:"storefront-session.db"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}
