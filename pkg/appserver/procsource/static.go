// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package procsource

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/DataDog/appserver-discovery/pkg/appserver/enumeration"
)

type staticProc struct {
	args    []string
	created int64
}

// Static is an in-memory process table
type Static struct {
	mu     sync.RWMutex
	procs  map[int32]staticProc
	starts int64
}

// NewStatic returns an empty process table
func NewStatic() *Static {
	return &Static{procs: make(map[int32]staticProc)}
}

// Set adds or replaces the process pid. Every call starts a new process with
// a later create time.
func (s *Static) Set(pid int32, args ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts++
	s.procs[pid] = staticProc{args: args, created: s.starts}
}

// Kill removes the process pid
func (s *Static) Kill(pid int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.procs, pid)
}

// Find implements enumeration.ProcessSource. Every process matches.
func (s *Static) Find(context.Context, string) ([]enumeration.Process, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]enumeration.Process, 0, len(s.procs))
	for pid, proc := range s.procs {
		res = append(res, enumeration.Process{PID: pid, CreateTime: proc.created})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].PID < res[j].PID })
	return res, nil
}

// Parameters implements enumeration.ProcessSource
func (s *Static) Parameters(_ context.Context, p enumeration.Process) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	proc, ok := s.procs[p.PID]
	if !ok {
		return nil, fmt.Errorf("process %d not found", p.PID)
	}
	return append([]string(nil), proc.args...), nil
}
