// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package subcommands lists the appserver-agent subcommands
package subcommands

import (
	"github.com/DataDog/appserver-discovery/cmd/appserver-agent/command"
	"github.com/DataDog/appserver-discovery/cmd/appserver-agent/subcommands/classify"
	"github.com/DataDog/appserver-discovery/cmd/appserver-agent/subcommands/list"
	"github.com/DataDog/appserver-discovery/cmd/appserver-agent/subcommands/run"
	"github.com/DataDog/appserver-discovery/cmd/appserver-agent/subcommands/version"
)

// AgentSubcommands returns SubcommandFactories for the subcommands supported
// by the current build
func AgentSubcommands() []command.SubcommandFactory {
	return []command.SubcommandFactory{
		run.Commands,
		list.Commands,
		classify.Commands,
		version.Commands,
	}
}
