// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package version implements 'appserver-agent version'.
package version

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/DataDog/appserver-discovery/cmd/appserver-agent/command"
	"github.com/DataDog/appserver-discovery/pkg/version"
)

// Commands returns a slice of subcommands for the 'appserver-agent' command.
func Commands(*command.GlobalParams) []*cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version info",
		Long:  ``,
		RunE: func(*cobra.Command, []string) error {
			return printVersion(color.Output)
		},
	}
	return []*cobra.Command{versionCmd}
}

func printVersion(w io.Writer) error {
	av, err := version.Agent()
	if err != nil {
		return err
	}
	meta := ""
	if av.Metadata() != "" {
		meta = fmt.Sprintf("- Meta: %s ", color.YellowString(av.Metadata()))
	}
	_, err = fmt.Fprintf(w, "Appserver agent %s %s- Commit: %s - Go version: %s\n",
		color.CyanString(av.GetNumberAndPre()),
		meta,
		color.GreenString(av.Commit),
		color.RedString(runtime.Version()),
	)
	return err
}
