package config

import "time"

type Config struct {
	Environment  Environment
	Log          Log
	HTTP         HTTPServer
	DatabasePath string `env:"DATABASE_PATH" envDefault:"checkout.db"`

	Upstream Upstream `envPrefix:"UPSTREAM_"`
	Payment  Payment  `envPrefix:"PAYMENT_"`
	Session  Session  `envPrefix:"SESSION_"`
}

type Upstream struct {
	BaseAPIURL string `env:"BASE_API_URL"`
}

type Payment struct {
	ReturnURL     string `env:"RETURN_URL"`
	CancelURL     string `env:"CANCEL_URL"`
	CountryPrefix string `env:"COUNTRY_PREFIX" envDefault:"237"`
	Currency      string `env:"CURRENCY" envDefault:"XAF"`
}

type Session struct {
	Secret string        `env:"SECRET"`
	TTL    time.Duration `env:"TTL" envDefault:"30m"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
