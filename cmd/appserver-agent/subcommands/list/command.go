// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package list implements 'appserver-agent list'.
package list

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/DataDog/appserver-discovery/cmd/appserver-agent/command"
	appserverimpl "github.com/DataDog/appserver-discovery/comp/appserver/impl"
	"github.com/DataDog/appserver-discovery/comp/core/config"
	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
	"github.com/DataDog/appserver-discovery/pkg/appserver/persist"
	"github.com/DataDog/appserver-discovery/pkg/util/fxutil"
)

type cliParams struct {
	*command.GlobalParams

	json    bool
	noCache bool
	refresh bool
}

// Commands returns a slice of subcommands for the 'appserver-agent' command.
func Commands(globalParams *command.GlobalParams) []*cobra.Command {
	cliParams := &cliParams{
		GlobalParams: globalParams,
	}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Poll the processes once and print the application server instances",
		Long: `Loads the instances saved by previous runs, polls the running processes and
prints every known instance. The cache is updated on exit unless --no-cache
is given.`,
		RunE: func(*cobra.Command, []string) error {
			return fxutil.OneShot(listInstances,
				fx.Supply(cliParams),
				fx.Supply(cliParams.ConfigParams()),
				config.Module(),
				command.LogOption("off"),
			)
		},
	}
	listCmd.Flags().BoolVarP(&cliParams.json, "json", "j", false, "print the instances as JSON")
	listCmd.Flags().BoolVar(&cliParams.noCache, "no-cache", false, "neither read nor write the instance cache")
	listCmd.Flags().BoolVarP(&cliParams.refresh, "refresh", "r", false, "read versions and ports from the installation folders")
	return []*cobra.Command{listCmd}
}

func listInstances(cliParams *cliParams, cfg config.Component) error {
	return list(context.Background(), color.Output, cliParams, cfg)
}

func list(ctx context.Context, w io.Writer, cliParams *cliParams, cfg config.Component) error {
	var cache persist.Cache
	if cliParams.noCache {
		cache = persist.Nop{}
	}
	enum, err := appserverimpl.NewEnumerator(cfg, nil, cache, nil)
	if err != nil {
		return err
	}

	if err := enum.Init(ctx); err != nil {
		return multierr.Append(err, enum.CleanUp(ctx))
	}
	if cliParams.refresh {
		for _, err := range multierr.Errors(enum.UpdateInstances(ctx)) {
			// print the warnings on stderr to avoid polluting the output
			fmt.Fprintln(os.Stderr, color.YellowString("Warning: %v", err))
		}
	}

	return multierr.Append(printInstances(w, enum.Instances(), cliParams.json), enum.CleanUp(ctx))
}

func printInstances(w io.Writer, instances []*instance.Instance, asJSON bool) error {
	if asJSON {
		summaries := lo.Map(instances, func(i *instance.Instance, _ int) instance.Summary { return i.Summary() })
		body, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(body))
		return err
	}

	if len(instances) == 0 {
		_, err := fmt.Fprintln(w, "No application server instance found")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Type", "Id", "State", "Version", "Port", "Disk path"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, inst := range instances {
		state := color.RedString("stopped")
		if inst.IsRunning {
			state = color.GreenString("running")
		}
		table.Append([]string{inst.TypeName(), inst.ID, state, inst.Version, inst.Port, inst.DiskPath})
	}
	table.Render()
	return nil
}
