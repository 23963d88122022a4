package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
type StructuredJSONConfig struct {
	App struct {
		JWTSecret              string   `json:"jwt_secret"`
		TokenIssuer            string   `json:"token_issuer"`
		TokenDuration          Duration `json:"token_duration"`
		CardMasterKey          string   `json:"card_master_key"`
		CardHMACKey            string   `json:"card_hmac_key"`
		AdminSecretHash        string   `json:"admin_secret_hash"`
		CardMonthsUntilExpires int      `json:"card_months_until_expires"`
		SignInMaxAttempts      int      `json:"signin_max_attempts"`
		SignInWindow           Duration `json:"signin_window"`
		Version                string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Cache struct {
			RedisAddress  string `json:"redis_address"`
			RedisPassword string `json:"redis_password"`
			RedisDB       int    `json:"redis_db"`
		} `json:"cache,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress        string   `json:"http_address"`
		GRPCAddress        string   `json:"grpc_address"`
		RequestTimeout     Duration `json:"request_timeout"`
		CORSAllowedOrigins []string `json:"cors_allowed_origins"`
	} `json:"server,omitempty"`

	Workers struct {
		ExpiryInterval Duration `json:"expiry_interval"`
	} `json:"workers,omitempty"`

	Docs struct {
		Prod       bool   `json:"prod"`
		LocalURL   string `json:"local_url"`
		ProdURL    string `json:"prod_url"`
		OutputDir  string `json:"output_dir"`
		OutputFile string `json:"output_file"`
	} `json:"docs,omitempty"`
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

	cfg := &StructuredConfig{
		App: App{
			JWTSecret:              jsonCfg.App.JWTSecret,
			TokenIssuer:            jsonCfg.App.TokenIssuer,
			TokenDuration:          time.Duration(jsonCfg.App.TokenDuration),
			CardMasterKey:          jsonCfg.App.CardMasterKey,
			CardHMACKey:            jsonCfg.App.CardHMACKey,
			AdminSecretHash:        jsonCfg.App.AdminSecretHash,
			CardMonthsUntilExpires: jsonCfg.App.CardMonthsUntilExpires,
			SignInMaxAttempts:      jsonCfg.App.SignInMaxAttempts,
			SignInWindow:           time.Duration(jsonCfg.App.SignInWindow),
			Version:                jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Cache: Cache{
				RedisAddress:  jsonCfg.Storage.Cache.RedisAddress,
				RedisPassword: jsonCfg.Storage.Cache.RedisPassword,
				RedisDB:       jsonCfg.Storage.Cache.RedisDB,
			},
		},
		Server: Server{
			HTTPAddress:        jsonCfg.Server.HTTPAddress,
			GRPCAddress:        jsonCfg.Server.GRPCAddress,
			RequestTimeout:     time.Duration(jsonCfg.Server.RequestTimeout),
			CORSAllowedOrigins: jsonCfg.Server.CORSAllowedOrigins,
		},
		Workers: Workers{
			ExpiryInterval: time.Duration(jsonCfg.Workers.ExpiryInterval),
		},
		Docs: Docs{
			Prod:       jsonCfg.Docs.Prod,
			LocalURL:   jsonCfg.Docs.LocalURL,
			ProdURL:    jsonCfg.Docs.ProdURL,
			OutputDir:  jsonCfg.Docs.OutputDir,
			OutputFile: jsonCfg.Docs.OutputFile,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
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
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
