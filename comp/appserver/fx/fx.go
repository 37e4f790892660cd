// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package fx provides fx wiring for the appserver component
package fx

import (
	"go.uber.org/fx"

	appserver "github.com/DataDog/appserver-discovery/comp/appserver/def"
	appserverimpl "github.com/DataDog/appserver-discovery/comp/appserver/impl"
	"github.com/DataDog/appserver-discovery/comp/core/config"
	compdef "github.com/DataDog/appserver-discovery/comp/def"
)

// Module defines the fx options for this component
func Module() fx.Option {
	return fx.Module("appserver",
		fx.Provide(newComponent),
		// Force the instantiation of the component, uses fx.Lifecycle for start/stop
		fx.Invoke(func(_ appserver.Component) {}),
	)
}

func newComponent(lc fx.Lifecycle, cfg config.Component) (appserver.Component, error) {
	provides, err := appserverimpl.NewComponent(appserverimpl.Requires{
		Lc:     compdef.NewLifecycle(lc),
		Config: cfg,
	})
	if err != nil {
		return nil, err
	}
	return provides.Comp, nil
}
