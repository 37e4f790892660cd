// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

//go:build !linux

package procsource

import (
	"context"
	"errors"

	"github.com/DataDog/appserver-discovery/pkg/appserver/enumeration"
)

// Procfs is only available on linux
type Procfs struct{}

// NewProcfs returns an error on this platform
func NewProcfs(string) (*Procfs, error) {
	return nil, errors.New("the procfs process source is only available on linux")
}

// Find implements enumeration.ProcessSource
func (p *Procfs) Find(context.Context, string) ([]enumeration.Process, error) {
	return nil, nil
}

// Parameters implements enumeration.ProcessSource
func (p *Procfs) Parameters(context.Context, enumeration.Process) ([]string, error) {
	return nil, nil
}
