// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package command

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeCommand(t *testing.T) {
	var got *GlobalParams
	factory := func(globalParams *GlobalParams) []*cobra.Command {
		got = globalParams
		return []*cobra.Command{{
			Use:  "noop",
			RunE: func(*cobra.Command, []string) error { return nil },
		}}
	}

	cmd := MakeCommand([]SubcommandFactory{factory})
	cmd.SetArgs([]string{"--cfgpath", "/etc/custom", "noop"})
	require.NoError(t, cmd.Execute())

	require.NotNil(t, got)
	assert.Equal(t, "/etc/custom", got.ConfFilePath)
	assert.Equal(t, "/etc/custom", got.ConfigParams().ConfFilePath)
}

func TestRunExitCode(t *testing.T) {
	ok := &cobra.Command{Use: "ok", RunE: func(*cobra.Command, []string) error { return nil }}
	ok.SetArgs([]string{})
	assert.Equal(t, 0, Run(ok))

	failing := &cobra.Command{Use: "fail", RunE: func(*cobra.Command, []string) error { return errors.New("boom") }}
	failing.SetArgs([]string{})
	assert.Equal(t, -1, Run(failing))
}
