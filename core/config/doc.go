// Package config loads typed configuration from environment variables.
//
// A .env file in the working directory is loaded once on first use, then
// caarlos0/env parses struct tags:
//
//	type ServerConfig struct {
//		Host string `env:"HOST" envDefault:"0.0.0.0"`
//		Port int    `env:"PORT" envDefault:"80"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Each struct type is parsed once and cached. Use Parse to bypass the cache.
package config
