// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package procsource

import (
	"context"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/DataDog/appserver-discovery/pkg/appserver/enumeration"
	"github.com/DataDog/appserver-discovery/pkg/util/log"
)

// Gopsutil lists processes through gopsutil, on any platform it supports
type Gopsutil struct{}

// NewGopsutil returns a gopsutil process source
func NewGopsutil() *Gopsutil {
	return &Gopsutil{}
}

// Find implements enumeration.ProcessSource
func (g *Gopsutil) Find(ctx context.Context, hint string) ([]enumeration.Process, error) {
	matcher, err := hintMatcher(hint)
	if err != nil {
		return nil, err
	}
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	var res []enumeration.Process
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			log.Tracef("Unable to get name of process %d: %v", p.Pid, err)
			continue
		}
		exe, _ := p.ExeWithContext(ctx)
		if !matchesHint(matcher, name, exe) {
			continue
		}
		created, err := p.CreateTimeWithContext(ctx)
		if err != nil {
			log.Tracef("Unable to get create time of process %d: %v", p.Pid, err)
		}
		res = append(res, enumeration.Process{PID: p.Pid, Name: name, CreateTime: created})
	}
	return res, nil
}

// Parameters implements enumeration.ProcessSource
func (g *Gopsutil) Parameters(ctx context.Context, p enumeration.Process) ([]string, error) {
	proc, err := process.NewProcessWithContext(ctx, p.PID)
	if err != nil {
		return nil, err
	}
	return proc.CmdlineSliceWithContext(ctx)
}
