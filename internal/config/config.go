package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	ConfigFileName = "config.json"
	ConfigDirName  = "stratus"
)

type GCSConfig struct {
	Project         string `json:"project,omitempty"`
	CredentialsFile string `json:"credentials_file,omitempty"`
	// Endpoint overrides the API host, mainly for emulators
	Endpoint string `json:"endpoint,omitempty"`
}

type Config struct {
	GCS *GCSConfig `json:"gcs,omitempty"`
}

// ConfigManager reads and writes the JSON configuration file under
// ~/.config/stratus.
type ConfigManager struct {
	path string
}

func NewConfigManager() (*ConfigManager, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	return &ConfigManager{path: path}, nil
}

func newConfigManagerAt(path string) *ConfigManager {
	return &ConfigManager{path: path}
}

func resolveConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting user home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", ConfigDirName)
	configPath := filepath.Join(configDir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	// Older releases kept the config in the working directory
	if _, err := os.Stat(ConfigFileName); err == nil {
		if err := migrateConfig(ConfigFileName, configPath); err == nil {
			return configPath, nil
		}
		return ConfigFileName, nil
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}

	return configPath, nil
}

func migrateConfig(sourcePath, destPath string) error {
	destDir := filepath.Dir(destPath)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("error reading source config file: %w", err)
	}

	if err := os.WriteFile(destPath, data, 0o644); err != nil {
		return fmt.Errorf("error writing destination config file: %w", err)
	}

	return nil
}

func (m *ConfigManager) LoadConfig() (*Config, error) {
	if _, err := os.Stat(m.path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if len(data) == 0 {
		return &Config{}, nil
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return &config, nil
}

func (m *ConfigManager) SaveConfig(config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

func splitKey(key string) (provider, field string, err error) {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid config key format: %s. Use format like 'provider.key' (e.g., 'gcs.project')", key)
	}
	return parts[0], parts[1], nil
}

func (m *ConfigManager) SetValue(key, value string) error {
	config, err := m.LoadConfig()
	if err != nil {
		return err
	}

	provider, field, err := splitKey(key)
	if err != nil {
		return err
	}

	switch provider {
	case "gcs":
		if config.GCS == nil {
			config.GCS = &GCSConfig{}
		}
		switch field {
		case "project":
			config.GCS.Project = value
		case "credentials_file":
			config.GCS.CredentialsFile = value
		case "endpoint":
			config.GCS.Endpoint = value
		default:
			return fmt.Errorf("unknown config key for gcs: %s", field)
		}
	default:
		return fmt.Errorf("unknown provider in config key: %s", provider)
	}

	return m.SaveConfig(config)
}

func (m *ConfigManager) GetValue(key string) (string, bool, error) {
	config, err := m.LoadConfig()
	if err != nil {
		return "", false, err
	}

	provider, field, err := splitKey(key)
	if err != nil {
		return "", false, err
	}

	if provider == "gcs" && config.GCS != nil {
		switch field {
		case "project":
			return config.GCS.Project, true, nil
		case "credentials_file":
			return config.GCS.CredentialsFile, true, nil
		case "endpoint":
			return config.GCS.Endpoint, true, nil
		}
	}

	return "", false, nil
}

func (m *ConfigManager) DeleteValue(key string) (bool, error) {
	config, err := m.LoadConfig()
	if err != nil {
		return false, err
	}

	val, exists, err := m.GetValue(key)
	if err != nil {
		return false, err
	}
	if !exists || val == "" {
		return false, nil
	}

	provider, field, err := splitKey(key)
	if err != nil {
		return false, err
	}

	if provider == "gcs" && config.GCS != nil {
		switch field {
		case "project":
			config.GCS.Project = ""
		case "credentials_file":
			config.GCS.CredentialsFile = ""
		case "endpoint":
			config.GCS.Endpoint = ""
		}
	}

	if err := m.SaveConfig(config); err != nil {
		return false, err
	}

	return true, nil
}
