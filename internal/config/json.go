package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk shape of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		MockData bool   `json:"mock_data"`
		Version  string `json:"version"`
		LogFile  string `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		BaseURL           string   `json:"base_url"`
		RequestTimeout    Duration `json:"request_timeout"`
		TemplatesStrategy string   `json:"templates_strategy"`
	} `json:"adapter,omitempty"`

	Mock struct {
		Address              string   `json:"address"`
		DSN                  string   `json:"dsn"`
		TokenSignKey         string   `json:"token_sign_key"`
		TokenIssuer          string   `json:"token_issuer"`
		AccessTokenDuration  Duration `json:"access_token_duration"`
		RefreshTokenDuration Duration `json:"refresh_token_duration"`
		OTPCode              string   `json:"otp_code"`
		UploadDir            string   `json:"upload_dir"`
		AdminPhone           string   `json:"admin_phone"`
	} `json:"mock,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			MockData: jsonCfg.App.MockData,
			Version:  jsonCfg.App.Version,
			LogFile:  jsonCfg.App.LogFile,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Adapter: Adapter{
			BaseURL:           jsonCfg.Adapter.BaseURL,
			RequestTimeout:    time.Duration(jsonCfg.Adapter.RequestTimeout),
			TemplatesStrategy: FanOutStrategy(jsonCfg.Adapter.TemplatesStrategy),
		},
		Mock: Mock{
			Address:              jsonCfg.Mock.Address,
			DSN:                  jsonCfg.Mock.DSN,
			TokenSignKey:         jsonCfg.Mock.TokenSignKey,
			TokenIssuer:          jsonCfg.Mock.TokenIssuer,
			AccessTokenDuration:  time.Duration(jsonCfg.Mock.AccessTokenDuration),
			RefreshTokenDuration: time.Duration(jsonCfg.Mock.RefreshTokenDuration),
			OTPCode:              jsonCfg.Mock.OTPCode,
			UploadDir:            jsonCfg.Mock.UploadDir,
			AdminPhone:           jsonCfg.Mock.AdminPhone,
		},
	}, nil
}

// Duration is a time.Duration that unmarshals from JSON strings like "1h" or
// "30s" as well as from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	case nil:
		*d = 0
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
