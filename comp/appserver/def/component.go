// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package appserver defines the component discovering the application
// servers of the host
package appserver

import (
	"context"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
)

// team: agent-discovery

// Component keeps the application server instances of the host up to date.
// Returned instances are copies.
type Component interface {
	// Instances returns the known instances in enumeration order
	Instances() []*instance.Instance
	// GetInstance returns the instance with the given id
	GetInstance(id string) (*instance.Instance, bool)
	// Update polls the running processes. When full is set the instances are
	// deep refreshed afterwards.
	Update(ctx context.Context, full bool) error
	// SetDeepMonitored changes the deep monitoring settings of an instance
	SetDeepMonitored(id string, deep bool, protocol string) bool
}
