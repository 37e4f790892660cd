// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/DataDog/viper"
	"github.com/spf13/cast"
	"go.uber.org/fx"

	"github.com/DataDog/appserver-discovery/pkg/util/log"
)

const envPrefix = "DD"

// safeConfig wraps viper with a lock and logs cast failures instead of
// silently returning zero values
type safeConfig struct {
	sync.RWMutex
	*viper.Viper
}

type dependencies struct {
	fx.In

	Params Params
}

func newConfig(deps dependencies) (Component, error) {
	cfg := newSafeConfig()
	if err := load(cfg, deps.Params); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewMock returns a configuration holding defaults and DD_* environment
// values. Tests override values with Set.
func NewMock() Component {
	return newSafeConfig()
}

func newSafeConfig() *safeConfig {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &safeConfig{Viper: v}
	setupDefaults(cfg.Viper)
	return cfg
}

func load(cfg *safeConfig, p Params) error {
	if p.configName != "" {
		cfg.SetConfigName(p.configName)
	}
	if p.ConfFilePath != "" {
		cfg.AddConfigPath(p.ConfFilePath)
		if strings.HasSuffix(p.ConfFilePath, ".yaml") || strings.HasSuffix(p.ConfFilePath, ".yml") {
			cfg.SetConfigFile(p.ConfFilePath)
		}
	}
	if p.defaultConfPath != "" {
		cfg.AddConfigPath(p.defaultConfPath)
	}

	err := cfg.ReadInConfig()
	if err == nil {
		log.Debugf("loaded configuration from %s", cfg.ConfigFileUsed())
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if p.configMissingOK && errors.As(err, &notFound) {
		log.Debugf("no configuration file found, using defaults")
		return nil
	}
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("cannot access the config file (%w); try running the command under the same user as the agent", err)
	}
	return fmt.Errorf("unable to load config file: %w", err)
}

// GetString wraps Viper for concurrent access
func (c *safeConfig) GetString(key string) string {
	c.RLock()
	defer c.RUnlock()
	val, err := cast.ToStringE(c.Viper.Get(key))
	if err != nil {
		log.Warnf("failed to get configuration value for key %q: %s", key, err) //nolint:errcheck
	}
	return val
}

// GetBool wraps Viper for concurrent access
func (c *safeConfig) GetBool(key string) bool {
	c.RLock()
	defer c.RUnlock()
	val, err := cast.ToBoolE(c.Viper.Get(key))
	if err != nil {
		log.Warnf("failed to get configuration value for key %q: %s", key, err) //nolint:errcheck
	}
	return val
}

// GetInt wraps Viper for concurrent access
func (c *safeConfig) GetInt(key string) int {
	c.RLock()
	defer c.RUnlock()
	val, err := cast.ToIntE(c.Viper.Get(key))
	if err != nil {
		log.Warnf("failed to get configuration value for key %q: %s", key, err) //nolint:errcheck
	}
	return val
}

// GetDuration wraps Viper for concurrent access
func (c *safeConfig) GetDuration(key string) time.Duration {
	c.RLock()
	defer c.RUnlock()
	val, err := cast.ToDurationE(c.Viper.Get(key))
	if err != nil {
		log.Warnf("failed to get configuration value for key %q: %s", key, err) //nolint:errcheck
	}
	return val
}

// GetStringSlice wraps Viper for concurrent access
func (c *safeConfig) GetStringSlice(key string) []string {
	c.RLock()
	defer c.RUnlock()
	raw := c.Viper.Get(key)
	if s, ok := raw.(string); ok {
		// env values arrive space separated
		return strings.Fields(s)
	}
	val, err := cast.ToStringSliceE(raw)
	if err != nil {
		log.Warnf("failed to get configuration value for key %q: %s", key, err) //nolint:errcheck
	}
	return val
}

// IsSet wraps Viper for concurrent access
func (c *safeConfig) IsSet(key string) bool {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.IsSet(key)
}

// Set wraps Viper for concurrent access
func (c *safeConfig) Set(key string, value interface{}) {
	c.Lock()
	defer c.Unlock()
	c.Viper.Set(key, value)
}

// ConfigFileUsed wraps Viper for concurrent access
func (c *safeConfig) ConfigFileUsed() string {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.ConfigFileUsed()
}
