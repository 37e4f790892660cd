// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package classify implements 'appserver-agent classify'.
package classify

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/DataDog/appserver-discovery/cmd/appserver-agent/command"
	"github.com/DataDog/appserver-discovery/pkg/appserver/matcher"
	"github.com/DataDog/appserver-discovery/pkg/util/fxutil"
)

// errNoMatch is returned when no matcher accepts the command line
var errNoMatch = errors.New("no application server recognized")

type cliParams struct {
	*command.GlobalParams

	args []string
	json bool
}

type result struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	DiskPath   string            `json:"disk_path"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Commands returns a slice of subcommands for the 'appserver-agent' command.
func Commands(globalParams *command.GlobalParams) []*cobra.Command {
	cliParams := &cliParams{
		GlobalParams: globalParams,
	}
	classifyCmd := &cobra.Command{
		Use:   "classify -- <argv...>",
		Short: "Show how a process command line is classified",
		Long: `Runs the application server matchers on the given command line, argv[0]
included, and prints the instance it describes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cliParams.args = args
			return fxutil.OneShot(classify, fx.Supply(cliParams))
		},
	}
	classifyCmd.Flags().BoolVarP(&cliParams.json, "json", "j", false, "print the result as JSON")
	return []*cobra.Command{classifyCmd}
}

func classify(cliParams *cliParams) error {
	return printClassification(color.Output, cliParams.args, cliParams.json)
}

func printClassification(w io.Writer, args []string, asJSON bool) error {
	d, ok := matcher.Classify(matcher.Default(), args)
	if !ok {
		return errNoMatch
	}
	res := result{
		Type:       d.Type.String(),
		ID:         d.ID,
		DiskPath:   d.DiskPath,
		Attributes: d.Attributes,
	}

	if asJSON {
		body, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(body))
		return err
	}

	fmt.Fprintf(w, "%s instance %s\n", color.GreenString(res.Type), color.CyanString(res.ID))
	fmt.Fprintf(w, "  disk path: %s\n", res.DiskPath)
	keys := lo.Keys(res.Attributes)
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, res.Attributes[k])
	}
	return nil
}
