// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package config implements a component to handle agent configuration. This
// component temporarily wraps a viper instance loaded from the agent YAML
// file and DD_* environment variables.
//
// The component loads the file during construction and fails fx startup when
// the file is required but missing or unreadable.
package config

import (
	"time"

	"go.uber.org/fx"
)

// team: agent-discovery

// Component is the component type.
type Component interface {
	// GetString returns the value of key as a string
	GetString(key string) string
	// GetBool returns the value of key as a bool
	GetBool(key string) bool
	// GetInt returns the value of key as an int
	GetInt(key string) int
	// GetDuration returns the value of key as a time.Duration
	GetDuration(key string) time.Duration
	// GetStringSlice returns the value of key as a string slice
	GetStringSlice(key string) []string
	// IsSet returns whether key was set by the file, the environment or Set
	IsSet(key string) bool
	// Set overrides the value of key at runtime
	Set(key string, value interface{})
	// ConfigFileUsed returns the path of the loaded file, if any
	ConfigFileUsed() string
}

// Module defines the fx options for this component.
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(newConfig),
	)
}

// MockModule provides a configuration that never reads a file. Values come
// from defaults and the environment only.
func MockModule() fx.Option {
	return fx.Module("config",
		fx.Provide(func() Component { return NewMock() }),
	)
}
