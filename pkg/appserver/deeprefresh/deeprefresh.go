// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package deeprefresh reads the version and listening ports of an
// application server instance from its installation files.
package deeprefresh

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
)

// Refresher updates instances from the files found under their disk path
type Refresher struct {
	fs afero.Fs
}

// New returns a Refresher reading from fs
func New(fs afero.Fs) *Refresher {
	return &Refresher{fs: fs}
}

// Refresh updates the version and ports of inst. Values that cannot be read
// are left untouched and reported in the returned error.
func (r *Refresher) Refresh(ctx context.Context, inst *instance.Instance) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch inst.Type {
	case instance.Tomcat:
		return r.refreshTomcat(inst)
	case instance.JBoss:
		return r.refreshJBoss(inst)
	case instance.WebSphere:
		return r.refreshWebSphere(inst)
	case instance.WebLogic:
		return r.refreshWebLogic(inst)
	default:
		return fmt.Errorf("no refresh available for %s instance %s", inst.TypeName(), inst.ID)
	}
}

// Installed returns a predicate telling whether an instance is still present
// on fs
func Installed(fs afero.Fs) func(*instance.Instance) bool {
	return func(inst *instance.Instance) bool {
		if inst.Type == instance.WebSphere {
			ok, _ := afero.Exists(fs, webSphereProfileVersionFile(inst))
			return ok
		}
		ok, _ := afero.DirExists(fs, inst.DiskPath)
		return ok
	}
}
