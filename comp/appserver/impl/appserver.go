// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package appserverimpl implements the appserver component
package appserverimpl

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.uber.org/multierr"

	appserver "github.com/DataDog/appserver-discovery/comp/appserver/def"
	"github.com/DataDog/appserver-discovery/comp/core/config"
	compdef "github.com/DataDog/appserver-discovery/comp/def"
	"github.com/DataDog/appserver-discovery/pkg/appserver/deeprefresh"
	"github.com/DataDog/appserver-discovery/pkg/appserver/enumeration"
	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
	"github.com/DataDog/appserver-discovery/pkg/appserver/persist"
	"github.com/DataDog/appserver-discovery/pkg/appserver/procsource"
	"github.com/DataDog/appserver-discovery/pkg/appserver/telemetry"
	"github.com/DataDog/appserver-discovery/pkg/util/log"
)

const defaultPollInterval = time.Minute

// Requires defines the dependencies for the appserver component
type Requires struct {
	Lc     compdef.Lifecycle
	Config config.Component

	// The fields below are built from the configuration when nil
	Source enumeration.ProcessSource
	Cache  persist.Cache
	Fs     afero.Fs
	Clock  clock.Clock
}

// Provides defines what this component provides
type Provides struct {
	Comp appserver.Component
}

type component struct {
	// mu serializes every access to enum
	mu   sync.Mutex
	enum *enumeration.Enumerator

	metrics         *telemetry.Metrics
	clock           clock.Clock
	pollInterval    time.Duration
	refreshInterval time.Duration
	addr            string

	cancel context.CancelFunc
	done   chan struct{}
	server *http.Server
}

// NewComponent creates the appserver component. The cache is opened right
// away, the first poll happens when the app starts.
func NewComponent(reqs Requires) (Provides, error) {
	c := &component{
		metrics: telemetry.New(),
		clock:   reqs.Clock,
	}
	if c.clock == nil {
		c.clock = clock.New()
	}

	cfg := reqs.Config
	if !cfg.GetBool("appserver.enabled") {
		log.Debug("Application server discovery is disabled")
		c.enum = enumeration.New(procsource.NewStatic(), persist.Nop{})
		return Provides{Comp: c}, nil
	}

	enum, err := NewEnumerator(cfg, reqs.Source, reqs.Cache, reqs.Fs)
	if err != nil {
		return Provides{}, err
	}
	c.enum = enum

	c.pollInterval = cfg.GetDuration("appserver.poll_interval")
	if c.pollInterval <= 0 {
		log.Warnf("Invalid appserver.poll_interval %s, using %s", c.pollInterval, defaultPollInterval) //nolint:errcheck
		c.pollInterval = defaultPollInterval
	}
	c.refreshInterval = cfg.GetDuration("appserver.deep_refresh_interval")
	if port := cfg.GetInt("appserver.status.port"); port > 0 {
		c.addr = net.JoinHostPort(cfg.GetString("appserver.status.host"), strconv.Itoa(port))
	}

	reqs.Lc.Append(compdef.Hook{
		OnStart: c.start,
		OnStop:  c.stop,
	})
	return Provides{Comp: c}, nil
}

// NewEnumerator builds the enumerator described by the appserver.* settings.
// source, cache and fs are built from the configuration when nil.
func NewEnumerator(cfg config.Component, source enumeration.ProcessSource, cache persist.Cache, fs afero.Fs) (*enumeration.Enumerator, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	if source == nil {
		var err error
		source, err = procsource.New(cfg.GetString("appserver.process_source"), cfg.GetString("appserver.proc_root"))
		if err != nil {
			return nil, err
		}
		if ttl := cfg.GetDuration("appserver.process_cache_ttl"); ttl > 0 {
			source = procsource.NewCached(source, ttl)
		}
	}

	if cache == nil {
		var err error
		cache, err = persist.New(cfg.GetString("appserver.cache.backend"), cfg.GetString("appserver.cache.path"))
		if err != nil {
			return nil, err
		}
	}

	opts := []enumeration.Option{
		enumeration.WithExecutableHint(cfg.GetString("appserver.executable_hint")),
		enumeration.WithRefresher(deeprefresh.New(fs)),
	}
	if cfg.GetBool("appserver.prune_uninstalled") {
		opts = append(opts, enumeration.WithPrune(deeprefresh.Installed(fs)))
	}
	return enumeration.New(source, cache, opts...), nil
}

func (c *component) start(ctx context.Context) error {
	c.mu.Lock()
	begin := c.clock.Now()
	err := c.enum.Init(ctx)
	c.metrics.ObservePoll(c.clock.Since(begin), err)
	c.metrics.SetInstances(c.enum.Instances())
	size := c.enum.Size()
	c.mu.Unlock()
	if err != nil {
		log.Warnf("Initial application server poll failed: %v", err) //nolint:errcheck
	}

	if c.addr != "" {
		if err := c.serve(); err != nil {
			return err
		}
	}

	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.run(runCtx)

	log.Infof("Application server discovery started with %d known instances, polling every %s", size, c.pollInterval)
	return nil
}

func (c *component) stop(ctx context.Context) error {
	if c.cancel != nil {
		c.cancel()
		<-c.done
	}

	var err error
	if c.server != nil {
		err = c.server.Shutdown(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return multierr.Append(err, c.enum.CleanUp(ctx))
}

func (c *component) run(ctx context.Context) {
	defer close(c.done)

	poll := c.clock.Ticker(c.pollInterval)
	defer poll.Stop()

	var deep <-chan time.Time
	if c.refreshInterval > 0 {
		t := c.clock.Ticker(c.refreshInterval)
		defer t.Stop()
		deep = t.C
	}

	for {
		select {
		case <-poll.C:
			if err := c.poll(ctx, false); err != nil {
				log.Warnf("Application server poll failed: %v", err) //nolint:errcheck
			}
		case <-deep:
			if err := c.refresh(ctx); err != nil {
				log.Debugf("Application server deep refresh: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (c *component) poll(ctx context.Context, full bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	begin := c.clock.Now()
	err := c.enum.Update(ctx, full)
	c.metrics.ObservePoll(c.clock.Since(begin), err)
	c.metrics.SetInstances(c.enum.Instances())
	return err
}

func (c *component) refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.enum.UpdateInstances(ctx)
	c.metrics.ObserveRefresh(err)
	return err
}

// Update implements the component interface
func (c *component) Update(ctx context.Context, full bool) error {
	if err := c.poll(ctx, full); err != nil {
		return err
	}
	if !full {
		return nil
	}
	return c.refresh(ctx)
}

// Instances implements the component interface
func (c *component) Instances() []*instance.Instance {
	c.mu.Lock()
	defer c.mu.Unlock()
	return lo.Map(c.enum.Instances(), func(i *instance.Instance, _ int) *instance.Instance {
		return i.Clone()
	})
}

// GetInstance implements the component interface
func (c *component) GetInstance(id string) (*instance.Instance, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	inst, ok := c.enum.GetInstance(id)
	if !ok {
		return nil, false
	}
	return inst.Clone(), true
}

// SetDeepMonitored implements the component interface
func (c *component) SetDeepMonitored(id string, deep bool, protocol string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	inst, ok := c.enum.GetInstance(id)
	if !ok {
		return false
	}
	inst.SetDeepMonitored(deep, protocol)
	return true
}
