// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package fxutil holds the helpers used to build and run the fx apps behind
// every agent subcommand.
package fxutil

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/multierr"
)

const (
	appStartTimeout = 5 * time.Minute
	appStopTimeout  = 30 * time.Second
)

// appTimeouts gives components time to load caches and scan the process table
func appTimeouts() fx.Option {
	return fx.Options(fx.StartTimeout(appStartTimeout), fx.StopTimeout(appStopTimeout))
}

// Run runs an fx.App using the supplied options, returning any errors.
//
// This differs from fx.App#Run in that it returns errors instead of exiting
// the process.
func Run(opts ...fx.Option) error {
	if fxAppTestOverride != nil {
		return fxAppTestOverride(func() {}, opts)
	}

	app := fx.New(append([]fx.Option{appTimeouts(), fx.NopLogger}, opts...)...)
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()

	if err := app.Start(startCtx); err != nil {
		return multierr.Append(err, stopApp(app))
	}

	<-app.Done()

	return stopApp(app)
}

func stopApp(app *fx.App) error {
	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	return app.Stop(stopCtx)
}
