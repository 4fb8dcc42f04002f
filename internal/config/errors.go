package config

import "errors"

// Validation errors returned by the config views when required settings
// are missing or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid API client settings
	// (missing base URL, non-positive timeout, unknown fan-out strategy).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates an empty or in-memory session DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidMockConfigs indicates invalid mock backend settings.
	ErrInvalidMockConfigs = errors.New("invalid mock backend configuration")
)
