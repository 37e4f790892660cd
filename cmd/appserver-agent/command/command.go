// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package command implements the top-level `appserver-agent` binary, including
// its subcommands.
package command

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/DataDog/appserver-discovery/comp/core/config"
	"github.com/DataDog/appserver-discovery/pkg/util/log/setup"
)

// LoggerName is the name of the logger used by the binary
const LoggerName setup.LoggerName = "APPSERVER"

// GlobalParams contains the values of agent-global Cobra flags.
//
// A pointer to this type is passed to SubcommandFactory's, but its contents
// are not valid until Cobra calls the subcommand's Run or RunE function.
type GlobalParams struct {
	// ConfFilePath holds the path to the folder containing the configuration
	// file, to allow overrides from the command line
	ConfFilePath string

	// NoColor disables the colors of the output
	NoColor bool
}

// SubcommandFactory returns a sub-command factory
type SubcommandFactory func(globalParams *GlobalParams) []*cobra.Command

// MakeCommand makes the top-level Cobra command for this app.
func MakeCommand(subcommandFactories []SubcommandFactory) *cobra.Command {
	globalParams := GlobalParams{}

	agentCmd := &cobra.Command{
		Use:   "appserver-agent [command]",
		Short: "Discovers the Java application servers of the host",
		Long: `
The appserver agent watches the running processes of the host and recognizes
JBoss, WebSphere, WebLogic and Tomcat instances, keeping their state across
restarts.`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if globalParams.NoColor {
				color.NoColor = true
			}
		},
	}

	agentCmd.PersistentFlags().StringVarP(&globalParams.ConfFilePath, "cfgpath", "c", "", "path to directory containing appserver-agent.yaml")
	agentCmd.PersistentFlags().BoolVarP(&globalParams.NoColor, "no-color", "n", false, "disable color output")

	for _, sf := range subcommandFactories {
		for _, cmd := range sf(&globalParams) {
			agentCmd.AddCommand(cmd)
		}
	}

	return agentCmd
}

// ConfigParams returns the config component parameters for the command line.
// The defaults are usable so a missing file is accepted.
func (g *GlobalParams) ConfigParams() config.Params {
	return config.NewParams(config.DefaultConfPath,
		config.WithConfFilePath(g.ConfFilePath),
		config.WithConfigMissingOK(true))
}

// LogOption sets the logger up from the configuration once it is loaded. A
// non empty level overrides log_level.
func LogOption(level string) fx.Option {
	return fx.Invoke(func(cfg config.Component) error {
		p := setup.Params{
			Name:    LoggerName,
			Level:   cfg.GetString("log_level"),
			File:    cfg.GetString("log_file"),
			Console: cfg.GetBool("log_to_console"),
			JSON:    cfg.GetBool("log_format_json"),
		}
		if level != "" {
			p.Level = level
		}
		return setup.SetupLogger(p)
	})
}

// Run executes cmd and returns the process exit code
func Run(cmd *cobra.Command) int {
	cmd.SilenceErrors = true
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		return -1
	}
	return 0
}
