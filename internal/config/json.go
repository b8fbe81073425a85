package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the shape of the JSON
// config file.
type StructuredJSONConfig struct {
	App struct {
		PasswordLength int    `json:"password_length"`
		LogFile        string `json:"log_file"`
		LogLevel       string `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		VaultPath        string   `json:"vault_path"`
		MasterConfigPath string   `json:"master_config_path"`
		LockRetryDelay   Duration `json:"lock_retry_delay"`
		LockTimeout      Duration `json:"lock_timeout"`
	} `json:"storage,omitempty"`

	Crypto struct {
		ArgonTime    uint32 `json:"argon_time"`
		ArgonMemory  uint32 `json:"argon_memory"`
		ArgonThreads uint8  `json:"argon_threads"`
	} `json:"crypto,omitempty"`
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
			PasswordLength: jsonCfg.App.PasswordLength,
			LogFile:        jsonCfg.App.LogFile,
			LogLevel:       jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			VaultPath:        jsonCfg.Storage.VaultPath,
			MasterConfigPath: jsonCfg.Storage.MasterConfigPath,
			LockRetryDelay:   time.Duration(jsonCfg.Storage.LockRetryDelay),
			LockTimeout:      time.Duration(jsonCfg.Storage.LockTimeout),
		},
		Crypto: Crypto{
			ArgonTime:    jsonCfg.Crypto.ArgonTime,
			ArgonMemory:  jsonCfg.Crypto.ArgonMemory,
			ArgonThreads: jsonCfg.Crypto.ArgonThreads,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
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
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
