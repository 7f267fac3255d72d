package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// AppConfig holds configuration values parsed from environment variables.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Addr is the local address both sockets bind; empty binds all
	// interfaces.
	Addr string `koanf:"addr" validate:"omitempty,bind_addr"`

	// Port is the network port the DNS server will bind to.
	Port int `koanf:"port" validate:"required,gte=1,lt=65535"`

	// TTL is the default applied to response records without one.
	TTL uint32 `koanf:"ttl" validate:"required,gte=1"`

	// ZoneDB is the path of the persistent zone registry; empty runs
	// without persistence.
	ZoneDB string `koanf:"zone_db"`
}

// DEFAULT_APP_CONFIG defines the default application configuration
// settings for the DNS daemon.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:      "prod",
	LogLevel: "info",
	Addr:     "",
	Port:     53,
	TTL:      3600,
	ZoneDB:   "",
}

// validBindAddr accepts a bare IP address usable as a bind target.
func validBindAddr(fl validator.FieldLevel) bool {
	return net.ParseIP(fl.Field().String()) != nil
}

// envLoader loads environment variables with the prefix "DNSD_",
// lowercasing keys and stripping the prefix. It can be swapped in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: "DNSD_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ToLower(strings.TrimPrefix(key, "DNSD_"))
			return key, strings.TrimSpace(value)
		},
	}), nil)
}

// defaultLoader loads default values using the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers the custom "bind_addr" validation.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("bind_addr", validBindAddr)
}

// Load parses environment variables and returns an AppConfig instance.
// It applies default values and runs validation automatically.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}
	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}
