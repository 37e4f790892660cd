// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package fxutil

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

// TestOneShotSubcommand runs commandline against subcommands and checks that
// it calls OneShot with expectedOneShotFunc. verifyFn is then invoked with
// its arguments resolved from the options the command passed to OneShot.
func TestOneShotSubcommand(
	t *testing.T,
	subcommands []*cobra.Command,
	commandline []string,
	expectedOneShotFunc interface{},
	verifyFn interface{},
) {
	var called bool
	fxAppTestOverride = func(oneShotFunc interface{}, opts []fx.Option) error {
		called = true
		require.Equal(t,
			reflect.ValueOf(expectedOneShotFunc).Pointer(),
			reflect.ValueOf(oneShotFunc).Pointer(),
			"command did not run the expected function")
		runVerify(t, opts, verifyFn)
		return nil
	}
	defer func() { fxAppTestOverride = nil }()

	require.NoError(t, runCommand(subcommands, commandline))
	require.True(t, called, "command did not call OneShot")
}

// TestRunSubcommand is TestOneShotSubcommand for commands calling Run
func TestRunSubcommand(
	t *testing.T,
	subcommands []*cobra.Command,
	commandline []string,
	verifyFn interface{},
) {
	var called bool
	fxAppTestOverride = func(_ interface{}, opts []fx.Option) error {
		called = true
		runVerify(t, opts, verifyFn)
		return nil
	}
	defer func() { fxAppTestOverride = nil }()

	require.NoError(t, runCommand(subcommands, commandline))
	require.True(t, called, "command did not call Run")
}

func runVerify(t *testing.T, opts []fx.Option, verifyFn interface{}) {
	app := fxtest.New(t, append(opts, fx.Invoke(verifyFn))...)
	app.RequireStart()
	app.RequireStop()
}

func runCommand(subcommands []*cobra.Command, commandline []string) error {
	cmd := &cobra.Command{Use: "test"}
	cmd.AddCommand(subcommands...)
	cmd.SetArgs(commandline)
	cmd.SilenceUsage = true
	return cmd.Execute()
}
