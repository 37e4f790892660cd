// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2024-present Datadog, Inc.

// Package def holds the types shared by every component definition.
package def

import (
	"context"

	"go.uber.org/fx"
)

// Hook are the callbacks run when the app starts and stops
type Hook struct {
	OnStart func(context.Context) error
	OnStop  func(context.Context) error
}

// Lifecycle lets a component register start and stop hooks
type Lifecycle interface {
	Append(h Hook)
}

type fxLifecycleAdapter struct {
	lc fx.Lifecycle
}

// NewLifecycle adapts an fx.Lifecycle
func NewLifecycle(lc fx.Lifecycle) Lifecycle {
	return &fxLifecycleAdapter{lc: lc}
}

func (a *fxLifecycleAdapter) Append(h Hook) {
	a.lc.Append(fx.Hook{OnStart: h.OnStart, OnStop: h.OnStop})
}
