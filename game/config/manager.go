package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/soulchess/game/engine"
	"github.com/wricardo/soulchess/game/service"
)

var (
	ErrConfigNotFound = service.ErrConfigNotFound
	ErrInvalidConfig  = engine.ErrInvalidConfig
)

// DefaultConfigName is the configuration used when a session names none
const DefaultConfigName = "classic"

// Manager handles game configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.GameConfig
	configs       map[string]*engine.GameConfig
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.GameConfig),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// configKey is the cache key and file stem for a config name
func configKey(name string) string {
	return strings.TrimSuffix(name, ".json")
}

// LoadConfig loads a configuration by name, with or without the .json extension
func (m *Manager) LoadConfig(name string) (*engine.GameConfig, error) {
	key := configKey(name)
	if key == "" || strings.ContainsAny(key, `/\`) {
		return nil, fmt.Errorf("%w: invalid config name %q", ErrConfigNotFound, name)
	}

	m.mu.RLock()
	if config, exists := m.configs[key]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[key]; exists {
		return config, nil
	}

	data, err := os.ReadFile(filepath.Join(m.configDir, key+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	m.configs[key] = &config
	return &config, nil
}

// ReloadConfig drops a cached configuration and reads it again from disk
func (m *Manager) ReloadConfig(name string) error {
	m.mu.Lock()
	delete(m.configs, configKey(name))
	m.mu.Unlock()

	_, err := m.LoadConfig(name)
	return err
}

// ValidateConfig checks a configuration without saving it
func (m *Manager) ValidateConfig(config *engine.GameConfig) error {
	return engine.ValidateGameConfig(config)
}

// Count returns the number of cached configurations
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}

// ListConfigs returns information about all valid configurations, sorted
// by config ID. Invalid files are skipped.
func (m *Manager) ListConfigs() ([]*service.ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	configs := []*service.ConfigInfo{}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := configKey(entry.Name())

		config, err := m.LoadConfig(name)
		if err != nil {
			continue
		}

		configs = append(configs, &service.ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    name, // This is the identifier to use for session creation
			Name:        config.Name,
			Description: config.Description,
			Level:       config.StartLevel(),
			BoardSize:   config.BoardSize,
			FixedLayout: config.HasLayout(),
		})
	}

	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ConfigID < configs[j].ConfigID
	})

	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// RefreshCache drops all cached configurations and picks the default again
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.GameConfig)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// loadDefaultConfig picks classic.json, then the first valid config, then
// the built-in level 1 configuration
func (m *Manager) loadDefaultConfig() error {
	config, err := m.LoadConfig(DefaultConfigName)
	if err != nil {
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			config = engine.DefaultConfig()
		} else if config, err = m.LoadConfig(configs[0].ConfigID); err != nil {
			config = engine.DefaultConfig()
		}
	}

	m.mu.Lock()
	m.defaultConfig = config
	m.mu.Unlock()
	return nil
}

// SaveConfig validates a configuration and writes it to disk
func (m *Manager) SaveConfig(name string, config *engine.GameConfig) error {
	if err := engine.ValidateGameConfig(config); err != nil {
		return err
	}

	key := configKey(name)
	if key == "" || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: invalid config name %q", ErrInvalidConfig, name)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.configDir, key+".json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[key] = config
	m.mu.Unlock()

	return nil
}
