// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package procsource lists the processes that may run an application server
package procsource

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/DataDog/appserver-discovery/pkg/appserver/enumeration"
)

// Supported process sources
const (
	KindGopsutil = "gopsutil"
	KindProcfs   = "procfs"
)

// New returns the process source of the given kind. procRoot is only used by
// the procfs source.
func New(kind, procRoot string) (enumeration.ProcessSource, error) {
	switch kind {
	case KindGopsutil, "":
		return NewGopsutil(), nil
	case KindProcfs:
		return NewProcfs(procRoot)
	default:
		return nil, fmt.Errorf("unknown process source %q", kind)
	}
}

// hintMatcher matches the executable names a hint stands for: "java" matches
// java, java.exe, javaw and javaw.exe
func hintMatcher(hint string) (glob.Glob, error) {
	q := glob.QuoteMeta(hint)
	return glob.Compile(fmt.Sprintf("{%[1]s,%[1]s.exe,%[1]sw,%[1]sw.exe}", q))
}

// matchesHint reports whether name, or the base name of the executable path,
// matches g
func matchesHint(g glob.Glob, name, exe string) bool {
	if name != "" && g.Match(name) {
		return true
	}
	return exe != "" && g.Match(filepath.Base(exe))
}
