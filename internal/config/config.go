// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process
// environment, loads them into structured Go types (struct), and
// validates that required values are present so they
// can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Seed defaults so an empty environment still yields a usable config.
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into
	// the process env before any of the code below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Key layout:
	- Env vars are read using a prefix: SCHEMACHECK_
	- Keys are lowercased and the prefix is removed
	- A double underscore separates nesting levels, e.g.
	  SCHEMACHECK_RULES__FIRST_NAMES -> rules.first_names -> Config.Rules.FirstNames
	- List values are comma separated: SCHEMACHECK_RULES__FIRST_NAMES=Ivan,Vasiliy
*/

const (
	envPrefix = "SCHEMACHECK_"

	// ServiceName is stamped onto every log line.
	ServiceName = "schemacheck"
)

// listKeys are the koanf keys whose env values are split on commas.
var listKeys = map[string]bool{
	"rules.first_names": true,
	"rules.last_names":  true,
}

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Rules         RulesConfig          `koanf:"rules" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// RulesConfig holds the field rules records are validated against.
//
// The allow-lists reflect the data the schemas were written for; they live
// in config so they can be replaced without touching the validators.
type RulesConfig struct {
	// AccessTokenPattern is the regular expression an access_token must match.
	AccessTokenPattern string `koanf:"access_token_pattern" validate:"required"`

	// FirstNames is the allow-list for User.first_name.
	FirstNames []string `koanf:"first_names" validate:"required,min=1,dive,required"`

	// LastNames is the allow-list for User.last_name.
	LastNames []string `koanf:"last_names" validate:"required,min=1,dive,required"`

	// LastNamePattern additionally accepts last names matching it.
	// Empty disables the pattern and leaves only the allow-list.
	LastNamePattern string `koanf:"last_name_pattern"`
}

// DefaultRulesConfig returns the rules matching the known-good records.
func DefaultRulesConfig() RulesConfig {
	return RulesConfig{
		AccessTokenPattern: `^[a-z]+[0-9]+_token$`,
		FirstNames:         []string{"Ivan", "Vasiliy", "User"},
		LastNames:          []string{"Vasiliev", "Dmitriev"},
		LastNamePattern:    `^[0-9]+$`,
	}
}

// defaultValues flattens the defaults into koanf keys.
func defaultValues() map[string]any {
	rules := DefaultRulesConfig()

	return map[string]any{
		"primary.env":                "development",
		"rules.access_token_pattern": rules.AccessTokenPattern,
		"rules.first_names":          rules.FirstNames,
		"rules.last_names":           rules.LastNames,
		"rules.last_name_pattern":    rules.LastNamePattern,
	}
}

// envKeyValue maps a raw env var onto a koanf key and value.
//
// Example:
//
//	SCHEMACHECK_RULES__LAST_NAMES="Vasiliev, Dmitriev" -> rules.last_names = [Vasiliev Dmitriev]
func envKeyValue(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	key = strings.ReplaceAll(key, "__", ".")

	if listKeys[key] {
		return key, splitList(value)
	}

	return key, value
}

func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}

// LoadConfig loads configuration from defaults and environment variables,
// unmarshals it into Config, validates it, applies observability defaults,
// and returns the resulting config.
//
// Behavior summary:
//   - Seeds defaults for primary + rules
//   - Merges env vars with prefix SCHEMACHECK_ on top
//   - Unmarshals into Config and validates the required blocks/fields
//   - Sets default observability if missing
//   - Overrides observability service name + environment
//   - Validates observability config as well
func LoadConfig() (*Config, error) {
	// The "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	for key, value := range defaultValues() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("could not set default %q: %w", key, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envKeyValue), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Force service name and environment regardless of what was set,
	// so every log line carries consistent labels.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}
