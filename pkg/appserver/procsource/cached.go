// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package procsource

import (
	"context"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/DataDog/appserver-discovery/pkg/appserver/enumeration"
)

// Cached remembers the argument vectors returned by a source. Application
// servers are long running, their command line is read once per ttl. Entries
// are keyed by PID and create time so a reused PID is read again.
type Cached struct {
	source enumeration.ProcessSource
	cache  *cache.Cache
}

// NewCached wraps source
func NewCached(source enumeration.ProcessSource, ttl time.Duration) *Cached {
	return &Cached{
		source: source,
		cache:  cache.New(ttl, 2*ttl),
	}
}

// Find implements enumeration.ProcessSource
func (c *Cached) Find(ctx context.Context, hint string) ([]enumeration.Process, error) {
	return c.source.Find(ctx, hint)
}

// Parameters implements enumeration.ProcessSource
func (c *Cached) Parameters(ctx context.Context, p enumeration.Process) ([]string, error) {
	key := strconv.Itoa(int(p.PID)) + ":" + strconv.FormatInt(p.CreateTime, 10) + ":" + p.Name
	if args, found := c.cache.Get(key); found {
		return args.([]string), nil
	}
	args, err := c.source.Parameters(ctx, p)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, args)
	return args, nil
}
