// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

//go:build linux

package procsource

import (
	"context"
	"fmt"

	"github.com/prometheus/procfs"

	"github.com/DataDog/appserver-discovery/pkg/appserver/enumeration"
)

// Procfs reads processes from a proc filesystem, which may be the one of the
// host mounted in a container
type Procfs struct {
	fs procfs.FS
}

// NewProcfs returns a source reading the proc filesystem mounted at root
func NewProcfs(root string) (*Procfs, error) {
	fs, err := procfs.NewFS(root)
	if err != nil {
		return nil, fmt.Errorf("unable to open proc filesystem %s: %w", root, err)
	}
	return &Procfs{fs: fs}, nil
}

// Find implements enumeration.ProcessSource
func (p *Procfs) Find(ctx context.Context, hint string) ([]enumeration.Process, error) {
	matcher, err := hintMatcher(hint)
	if err != nil {
		return nil, err
	}
	procs, err := p.fs.AllProcs()
	if err != nil {
		return nil, err
	}

	var res []enumeration.Process
	for _, proc := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		comm, err := proc.Comm()
		if err != nil {
			continue
		}
		exe, _ := proc.Executable()
		if !matchesHint(matcher, comm, exe) {
			continue
		}
		stat, err := proc.Stat()
		if err != nil {
			continue
		}
		res = append(res, enumeration.Process{PID: int32(proc.PID), Name: comm, CreateTime: int64(stat.Starttime)})
	}
	return res, nil
}

// Parameters implements enumeration.ProcessSource
func (p *Procfs) Parameters(_ context.Context, proc enumeration.Process) ([]string, error) {
	pr, err := p.fs.Proc(int(proc.PID))
	if err != nil {
		return nil, err
	}
	return pr.CmdLine()
}
