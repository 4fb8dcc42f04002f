package config

import (
	"fmt"
	"time"
)

// ClientApp holds console-level settings.
type ClientApp struct {
	MockData bool
	Version  string
	LogFile  string
}

// ClientAdapter holds the API client settings.
type ClientAdapter struct {
	BaseURL           string
	RequestTimeout    time.Duration
	TemplatesStrategy FanOutStrategy
}

// ClientStorage holds the session store settings.
type ClientStorage struct {
	DSN string
}

// ClientConfig is the admin console configuration assembled from
// [StructuredConfig]. Mock is only validated when App.MockData is set.
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Mock    MockServerConfig
}

// MockServerConfig is the mock backend configuration.
type MockServerConfig struct {
	Version              string
	Address              string
	DSN                  string
	TokenSignKey         string
	TokenIssuer          string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	OTPCode              string
	UploadDir            string
	AdminPhone           string
}

// GetClientConfig builds and validates the console configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := cfg.clientView()
	return clientCfg, clientCfg.validate()
}

// GetMockServerConfig builds and validates the mock backend configuration.
func GetMockServerConfig() (*MockServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	mockCfg := cfg.mockView()
	return mockCfg, mockCfg.validate()
}

func (cfg *StructuredConfig) clientView() *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			MockData: cfg.App.MockData,
			Version:  cfg.App.Version,
			LogFile:  cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			BaseURL:           cfg.Adapter.BaseURL,
			RequestTimeout:    cfg.Adapter.RequestTimeout,
			TemplatesStrategy: cfg.Adapter.TemplatesStrategy,
		},
		Storage: ClientStorage{DSN: cfg.Storage.DB.DSN},
		Mock:    *cfg.mockView(),
	}
}

func (cfg *StructuredConfig) mockView() *MockServerConfig {
	return &MockServerConfig{
		Version:              cfg.App.Version,
		Address:              cfg.Mock.Address,
		DSN:                  cfg.Mock.DSN,
		TokenSignKey:         cfg.Mock.TokenSignKey,
		TokenIssuer:          cfg.Mock.TokenIssuer,
		AccessTokenDuration:  cfg.Mock.AccessTokenDuration,
		RefreshTokenDuration: cfg.Mock.RefreshTokenDuration,
		OTPCode:              cfg.Mock.OTPCode,
		UploadDir:            cfg.Mock.UploadDir,
		AdminPhone:           cfg.Mock.AdminPhone,
	}
}
