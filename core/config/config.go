package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	ErrNilConfig     = errors.New("config: target must be a non-nil pointer to a struct")
	ErrParsingConfig = errors.New("config: failed to parse environment")
)

var (
	loadDotenv sync.Once
	cache      sync.Map // reflect.Type -> cached value
	mu         sync.Mutex
)

// Load fills cfg from environment variables. A .env file in the working directory
// is read once on first use. Each struct type is parsed once; later calls copy
// the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if reflect.TypeFor[T]().Kind() != reflect.Struct {
		return ErrNilConfig
	}

	loadDotenv.Do(func() {
		// Missing .env is not an error.
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()
	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return fmt.Errorf("%w: %w", ErrParsingConfig, err)
	}
	cache.Store(key, parsed)
	*cfg = parsed

	return nil
}

// MustLoad is like Load but panics on error.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Parse fills cfg from environment variables without caching.
func Parse[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrParsingConfig, err)
	}
	return nil
}
