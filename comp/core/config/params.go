// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package config

// Params defines the parameters for the config component.
type Params struct {
	// ConfFilePath is the path at which to look for configuration, usually
	// given by the --cfgpath command-line flag. It may be a directory or a
	// .yaml file.
	ConfFilePath string

	// configName is the file name looked up in directories, without extension
	configName string

	// configMissingOK determines whether it is a fatal error if the config
	// file does not exist.
	configMissingOK bool

	// defaultConfPath is searched after ConfFilePath
	defaultConfPath string
}

// NewParams creates a new instance of Params
func NewParams(defaultConfPath string, options ...func(*Params)) Params {
	params := Params{
		configName:      "appserver-agent",
		defaultConfPath: defaultConfPath,
	}
	for _, o := range options {
		o(&params)
	}
	return params
}

// WithConfFilePath sets the path given on the command line
func WithConfFilePath(confFilePath string) func(*Params) {
	return func(b *Params) {
		b.ConfFilePath = confFilePath
	}
}

// WithConfigMissingOK makes a missing file acceptable
func WithConfigMissingOK(v bool) func(*Params) {
	return func(b *Params) {
		b.configMissingOK = v
	}
}

// WithConfigName overrides the file name looked up in directories
func WithConfigName(name string) func(*Params) {
	return func(b *Params) {
		b.configName = name
	}
}
