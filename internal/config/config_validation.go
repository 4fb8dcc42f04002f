// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validate checks the merged [StructuredConfig]. Only the strategy is
// checked here because it is shared by every view; the views check the rest.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.TemplatesStrategy != "" && !cfg.Adapter.TemplatesStrategy.IsValid() {
		return fmt.Errorf("%w: unknown templates strategy %q", ErrInvalidAdapterConfigs, cfg.Adapter.TemplatesStrategy)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DSN == "" || strings.Contains(cfg.Storage.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 || !cfg.Adapter.TemplatesStrategy.IsValid() {
		return ErrInvalidAdapterConfigs
	}

	if !cfg.App.MockData {
		u, err := url.Parse(cfg.Adapter.BaseURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("%w: base url %q", ErrInvalidAdapterConfigs, cfg.Adapter.BaseURL)
		}
	}

	if cfg.App.MockData {
		return cfg.Mock.validate()
	}

	return nil
}

func (cfg *MockServerConfig) validate() error {
	if cfg.Address == "" || cfg.DSN == "" {
		return ErrInvalidMockConfigs
	}

	if cfg.TokenSignKey == "" || cfg.AccessTokenDuration <= 0 || cfg.RefreshTokenDuration <= 0 {
		return fmt.Errorf("%w: token settings", ErrInvalidMockConfigs)
	}

	if cfg.OTPCode == "" || strings.Trim(cfg.OTPCode, "0123456789") != "" {
		return fmt.Errorf("%w: otp code must be digits", ErrInvalidMockConfigs)
	}

	return nil
}
