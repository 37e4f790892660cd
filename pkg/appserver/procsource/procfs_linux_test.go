// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

//go:build linux

package procsource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataDog/appserver-discovery/pkg/appserver/enumeration"
)

// fakeProc writes a process whose start time, in clock ticks, is pid*10
func fakeProc(t *testing.T, root string, pid int, comm string, args ...string) {
	t.Helper()
	dir := filepath.Join(root, strconv.Itoa(pid))
	stat := fmt.Sprintf("%d (%s) S 1 %d %d 0 -1 4194560 0 0 0 0 0 0 0 0 20 0 1 0 %d 0 0 %s\n",
		pid, comm, pid, pid, pid*10, strings.TrimSpace(strings.Repeat("0 ", 28)))
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stat"), []byte(stat), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comm"), []byte(comm+"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cmdline"), []byte(strings.Join(args, "\x00")+"\x00"), 0644))
}

func TestProcfs(t *testing.T) {
	root := t.TempDir()
	fakeProc(t, root, 100, "java", "/usr/bin/java", "-Dcatalina.home=/opt/tomcat", "org.apache.catalina.startup.Bootstrap")
	fakeProc(t, root, 200, "bash", "/bin/bash")
	fakeProc(t, root, 300, "javaw", "javaw", "weblogic.Server")

	src, err := NewProcfs(root)
	require.NoError(t, err)

	procs, err := src.Find(context.Background(), "java")
	require.NoError(t, err)
	assert.ElementsMatch(t, []enumeration.Process{
		{PID: 100, Name: "java", CreateTime: 1000},
		{PID: 300, Name: "javaw", CreateTime: 3000},
	}, procs)

	args, err := src.Parameters(context.Background(), enumeration.Process{PID: 100})
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/bin/java", "-Dcatalina.home=/opt/tomcat", "org.apache.catalina.startup.Bootstrap"}, args)

	_, err = src.Parameters(context.Background(), enumeration.Process{PID: 999})
	assert.Error(t, err)
}
