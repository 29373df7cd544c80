// Package config loads application configuration from environment variables
// into annotated structs.
//
// It combines github.com/joho/godotenv (optional .env file support) with
// github.com/caarlos0/env/v11 (struct tag parsing) and caches each parsed
// configuration type so it is only loaded once per process:
//
//	type ServerConfig struct {
//	    Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	    Env  string `env:"APP_ENV" envDefault:"development"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Use ResetCache in tests that change the environment between loads.
package config
