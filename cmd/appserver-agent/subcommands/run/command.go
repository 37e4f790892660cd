// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package run implements 'appserver-agent run'.
package run

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/DataDog/appserver-discovery/cmd/appserver-agent/command"
	appserverfx "github.com/DataDog/appserver-discovery/comp/appserver/fx"
	"github.com/DataDog/appserver-discovery/comp/core/config"
	"github.com/DataDog/appserver-discovery/pkg/util/fxutil"
)

type cliParams struct {
	*command.GlobalParams
}

// Commands returns a slice of subcommands for the 'appserver-agent' command.
func Commands(globalParams *command.GlobalParams) []*cobra.Command {
	cliParams := &cliParams{
		GlobalParams: globalParams,
	}
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the appserver agent until it is interrupted",
		Long:  ``,
		RunE: func(*cobra.Command, []string) error {
			return run(cliParams)
		},
	}
	return []*cobra.Command{runCmd}
}

func run(cliParams *cliParams) error {
	return fxutil.Run(
		fx.Supply(cliParams),
		fx.Supply(cliParams.ConfigParams()),
		config.Module(),
		command.LogOption(""),
		appserverfx.Module(),
	)
}
