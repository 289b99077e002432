package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// SessionConfig holds settings for a single play session.
type SessionConfig struct {
	SavePath string `yaml:"save_path"`
	Turns    int    `yaml:"turns"`
	AutoHire bool   `yaml:"auto_hire"`
}

// AuditConfig specifies where drained events are written.
type AuditConfig struct {
	Dir     string `yaml:"dir"`
	Archive string `yaml:"archive"`
}

// CostConfig is the wood and stone price of one site.
type CostConfig struct {
	Wood  int `yaml:"wood"`
	Stone int `yaml:"stone"`
}

// Config corresponds to the structure of the YAML config file.
type Config struct {
	Session SessionConfig         `yaml:"session"`
	Audit   AuditConfig           `yaml:"audit"`
	Catalog map[string]CostConfig `yaml:"catalog"`
}

// DefaultConfig returns the configuration written when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Session: SessionConfig{
			SavePath: filepath.Join("data", "savedGame.json"),
			Turns:    10,
		},
		Audit: AuditConfig{
			Dir:     filepath.Join("data", "audit"),
			Archive: filepath.Join("data", "archive.db"),
		},
		Catalog: map[string]CostConfig{
			"farm":        {Wood: 4, Stone: 1},
			"mine":        {Wood: 6, Stone: 3},
			"lumber_mill": {Wood: 3, Stone: 2},
		},
	}
}

// ConfigManager handles loading and saving of the session configuration.
type ConfigManager struct {
	configPath string
	config     *Config
	lock       sync.Mutex
}

// NewConfigManager loads the config at path. A missing file is replaced by
// DefaultConfig, which is written back to path.
func NewConfigManager(path string) (*ConfigManager, error) {
	cm := &ConfigManager{
		configPath: path,
	}

	exists, err := cm.LoadConfig()
	if err != nil {
		return nil, err
	}
	if !exists {
		cm.config = DefaultConfig()
		if err := cm.SaveConfig(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}
	if err := cm.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cm, nil
}

// Validate checks that the essential configuration values are usable.
func (cm *ConfigManager) Validate() error {
	cm.lock.Lock()
	defer cm.lock.Unlock()

	if strings.TrimSpace(cm.config.Session.SavePath) == "" {
		return fmt.Errorf("save path is not set")
	}
	if cm.config.Session.Turns < 0 {
		return fmt.Errorf("turns must not be negative, got %d", cm.config.Session.Turns)
	}
	for name, cost := range cm.config.Catalog {
		if cost.Wood < 0 || cost.Stone < 0 {
			return fmt.Errorf("catalog entry %q has a negative cost", name)
		}
	}
	return nil
}

// LoadConfig loads the configuration from the YAML file. It reports false
// without error when the file does not exist.
func (cm *ConfigManager) LoadConfig() (bool, error) {
	cm.lock.Lock()
	defer cm.lock.Unlock()

	file, err := os.ReadFile(cm.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(file, config); err != nil {
		return false, fmt.Errorf("failed to decode YAML from config file: %w", err)
	}
	cm.config = config
	return true, nil
}

// saveConfig is the internal, non-locking implementation of saving the configuration.
func (cm *ConfigManager) saveConfig() error {
	data, err := yaml.Marshal(cm.config)
	if err != nil {
		return fmt.Errorf("failed to encode config to YAML: %w", err)
	}

	if dir := filepath.Dir(cm.configPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(cm.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to config file: %w", err)
	}
	return nil
}

// SaveConfig saves the current configuration to the YAML file.
func (cm *ConfigManager) SaveConfig() error {
	cm.lock.Lock()
	defer cm.lock.Unlock()
	return cm.saveConfig()
}

// GetConfig returns the entire configuration.
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// SetConfig sets the configuration for testing purposes.
func (cm *ConfigManager) SetConfig(config *Config) {
	cm.config = config
}

// Cost returns the catalog price for a site category. Keys are matched
// case-insensitively with spaces folded to underscores ("Lumber Mill" finds
// "lumber_mill").
func (cm *ConfigManager) Cost(category string) (CostConfig, bool) {
	cm.lock.Lock()
	defer cm.lock.Unlock()

	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(category)), " ", "_")
	cost, ok := cm.config.Catalog[key]
	return cost, ok
}
