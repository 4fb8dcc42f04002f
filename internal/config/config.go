// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// FanOutStrategy selects how the template fan-out reacts to a failing
// subject.
type FanOutStrategy string

const (
	// FanOutBestEffort logs the failing subject and continues with the next.
	FanOutBestEffort FanOutStrategy = "best-effort"
	// FanOutFailFast aborts on the first failing subject.
	FanOutFailFast FanOutStrategy = "fail-fast"
)

// IsValid reports whether s is a known strategy.
func (s FanOutStrategy) IsValid() bool {
	return s == FanOutBestEffort || s == FanOutFailFast
}

// StructuredConfig is the top-level configuration container shared by the
// admin console and the mock backend. It is populated by merging values from
// a .env file, environment variables, command-line flags, an optional JSON
// file and finally built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds console-level switches and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the durable session store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the outbound API client settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Mock holds the settings of the mock backend, used by cmd/mockserver
	// and by the console when App.MockData is set.
	Mock Mock `envPrefix:"MOCK_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds console-level configuration.
type App struct {
	// MockData starts the embedded mock backend and points the adapter at it.
	// Env: APP_MOCK_DATA
	MockData bool `env:"MOCK_DATA"`

	// Version is the semantic version string shown by the console.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogFile is where the console writes its logs.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the durable storage settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the session store.
type DB struct {
	// DSN is the SQLite data source name of the session store
	// (e.g. "exam-admin.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Adapter holds the exam platform API client settings.
type Adapter struct {
	// BaseURL is the root of the platform API (e.g. "https://api.example.uz").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout is the deadline applied to every outbound call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TemplatesStrategy is either "best-effort" or "fail-fast".
	// Env: ADAPTER_TEMPLATES_STRATEGY
	TemplatesStrategy FanOutStrategy `env:"TEMPLATES_STRATEGY"`
}

// Mock holds the mock backend settings.
type Mock struct {
	// Address is the host:port the mock backend listens on.
	// Env: MOCK_ADDRESS
	Address string `env:"ADDRESS"`

	// DSN selects the mock backend database. DSNs starting with
	// "postgres://" or "postgresql://" use pgx; everything else is SQLite.
	// Env: MOCK_DB_DSN
	DSN string `env:"DB_DSN"`

	// TokenSignKey signs issued access tokens.
	// Env: MOCK_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of issued access tokens.
	// Env: MOCK_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// AccessTokenDuration is the lifetime of an access token.
	// Env: MOCK_ACCESS_TOKEN_DURATION
	AccessTokenDuration time.Duration `env:"ACCESS_TOKEN_DURATION"`

	// RefreshTokenDuration is the lifetime of a refresh token.
	// Env: MOCK_REFRESH_TOKEN_DURATION
	RefreshTokenDuration time.Duration `env:"REFRESH_TOKEN_DURATION"`

	// OTPCode is the one-time code the mock backend accepts for any phone.
	// Env: MOCK_OTP_CODE
	OTPCode string `env:"OTP_CODE"`

	// UploadDir is where uploaded images are written.
	// Env: MOCK_UPLOAD_DIR
	UploadDir string `env:"UPLOAD_DIR"`

	// AdminPhone is the phone of the seeded administrator account.
	// Env: MOCK_ADMIN_PHONE
	AdminPhone string `env:"ADMIN_PHONE"`
}

// GetStructuredConfig loads and merges the configuration from all sources.
// For every field the first source that sets a non-zero value wins, in this
// order:
//  1. Environment variables (a .env file in the working directory is loaded
//     into the environment first and never overrides real variables)
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
