// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package persist saves the known application server instances across agent
// restarts. Instances read back are always reported as stopped until a poll
// sees them running again.
package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
)

// Supported cache backends
const (
	BackendBolt = "bolt"
	BackendFile = "file"
	BackendNone = "none"
)

// ErrCorrupt is returned when the stored instance count does not match the
// records found
var ErrCorrupt = errors.New("instance cache is corrupt")

// Cache stores instances between two agent runs
type Cache interface {
	// Read returns the instances saved by the last Write
	Read(ctx context.Context) ([]*instance.Instance, error)
	// Write replaces the saved instances
	Write(ctx context.Context, instances []*instance.Instance) error
	// Close releases the underlying storage
	Close() error
}

// New returns the cache for backend, storing its data under dir
func New(backend, dir string) (Cache, error) {
	switch backend {
	case BackendBolt:
		return OpenBolt(dir)
	case BackendFile:
		return NewFile(afero.NewOsFs(), dir), nil
	case BackendNone, "":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}

// Nop is a Cache that remembers nothing
type Nop struct{}

// Read implements Cache
func (Nop) Read(context.Context) ([]*instance.Instance, error) { return nil, nil }

// Write implements Cache
func (Nop) Write(context.Context, []*instance.Instance) error { return nil }

// Close implements Cache
func (Nop) Close() error { return nil }
