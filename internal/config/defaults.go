package config

import "time"

// Built-in defaults applied after every other source.
const (
	DefaultBaseURL              = "http://localhost:8080"
	DefaultRequestTimeout       = 15 * time.Second
	DefaultSessionDSN           = "exam-admin.db"
	DefaultMockAddress          = "localhost:8080"
	DefaultMockDSN              = "file:exam-mock?mode=memory&cache=shared"
	DefaultMockTokenSignKey     = "exam-mock-sign-key"
	DefaultMockTokenIssuer      = "exam-mock"
	DefaultAccessTokenDuration  = 15 * time.Minute
	DefaultRefreshTokenDuration = 24 * time.Hour
	DefaultOTPCode              = "123456"
	DefaultUploadDir            = "uploads"
	DefaultVersion              = "dev"
	DefaultMockAdminPhone       = "+998901234567"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{Version: DefaultVersion},
		Storage: Storage{
			DB: DB{DSN: DefaultSessionDSN},
		},
		Adapter: Adapter{
			BaseURL:           DefaultBaseURL,
			RequestTimeout:    DefaultRequestTimeout,
			TemplatesStrategy: FanOutBestEffort,
		},
		Mock: Mock{
			Address:              DefaultMockAddress,
			DSN:                  DefaultMockDSN,
			TokenSignKey:         DefaultMockTokenSignKey,
			TokenIssuer:          DefaultMockTokenIssuer,
			AccessTokenDuration:  DefaultAccessTokenDuration,
			RefreshTokenDuration: DefaultRefreshTokenDuration,
			OTPCode:              DefaultOTPCode,
			UploadDir:            DefaultUploadDir,
			AdminPhone:           DefaultMockAdminPhone,
		},
	}
}
