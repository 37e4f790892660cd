// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package enumeration keeps track of the application server instances of the
// host. An Enumerator is seeded from its cache by Init, refreshed from the
// running processes by Update and saved back by CleanUp.
//
// An Enumerator is not safe for concurrent use. Callers serialize Init,
// Update, UpdateInstances and CleanUp.
package enumeration

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
	"github.com/DataDog/appserver-discovery/pkg/appserver/matcher"
	"github.com/DataDog/appserver-discovery/pkg/appserver/persist"
	"github.com/DataDog/appserver-discovery/pkg/util/log"
)

// DefaultExecutableHint is the binary name application servers run under
const DefaultExecutableHint = "java"

// Process identifies a candidate process
type Process struct {
	PID  int32
	Name string
	// CreateTime tells apart two processes that got the same PID. Its unit
	// depends on the source.
	CreateTime int64
}

// ProcessSource lists the candidate processes of the host
type ProcessSource interface {
	// Find returns the processes whose executable matches hint
	Find(ctx context.Context, hint string) ([]Process, error)
	// Parameters returns the argument vector of p, argv[0] included
	Parameters(ctx context.Context, p Process) ([]string, error)
}

// Refresher reads the details of an instance that are not visible on its
// command line
type Refresher interface {
	Refresh(ctx context.Context, inst *instance.Instance) error
}

// Option configures an Enumerator
type Option func(*Enumerator)

// WithMatchers replaces the default matchers
func WithMatchers(matchers ...matcher.Matcher) Option {
	return func(e *Enumerator) {
		e.matchers = matchers
	}
}

// WithExecutableHint sets the binary name passed to the process source
func WithExecutableHint(hint string) Option {
	return func(e *Enumerator) {
		e.hint = hint
	}
}

// WithRefresher sets the hook run by UpdateInstances
func WithRefresher(r Refresher) Option {
	return func(e *Enumerator) {
		e.refresher = r
	}
}

// WithPrune makes Update drop stopped instances for which installed returns
// false
func WithPrune(installed func(*instance.Instance) bool) Option {
	return func(e *Enumerator) {
		e.installed = installed
	}
}

// Enumerator discovers application server instances
type Enumerator struct {
	source    ProcessSource
	cache     persist.Cache
	matchers  []matcher.Matcher
	hint      string
	refresher Refresher
	installed func(*instance.Instance) bool

	store *instance.Store
}

// New returns an Enumerator reading processes from source and persisting
// instances to cache
func New(source ProcessSource, cache persist.Cache, opts ...Option) *Enumerator {
	e := &Enumerator{
		source:   source,
		cache:    cache,
		matchers: matcher.Default(),
		hint:     DefaultExecutableHint,
		store:    instance.NewStore(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init seeds the instances from the cache, then runs a first Update. A cache
// that cannot be read is ignored.
func (e *Enumerator) Init(ctx context.Context) error {
	cached, err := e.cache.Read(ctx)
	switch {
	case errors.Is(err, persist.ErrCorrupt):
		log.Warnf("Discarding application server cache: %v", err)
	case err != nil:
		log.Warnf("Unable to read application server cache: %v", err)
	}
	for _, inst := range cached {
		e.store.Add(inst)
	}
	log.Debugf("Loaded %d application server instances from cache", len(cached))

	return e.Update(ctx, false)
}

// Update reconciles the instances with the running processes. full is
// accepted for callers polling on two schedules: it never triggers the
// deep refresh nor any cache access, UpdateInstances does the former.
//
// When the process source fails the instances are left untouched.
func (e *Enumerator) Update(ctx context.Context, full bool) error {
	running, err := e.scan(ctx)
	if err != nil {
		return err
	}

	e.store.Merge(running)
	log.Debugf("Application server poll (full: %t): %d running processes matched, %d known instances", full, len(running), e.store.Len())

	if e.installed != nil {
		for _, inst := range e.store.Prune(e.installed) {
			log.Infof("%s instance %s is no longer installed, forgetting it", inst.TypeName(), inst.ID)
		}
	}
	return nil
}

// scan classifies every candidate process
func (e *Enumerator) scan(ctx context.Context) ([]*instance.Instance, error) {
	procs, err := e.source.Find(ctx, e.hint)
	if err != nil {
		return nil, fmt.Errorf("unable to list %s processes: %w", e.hint, err)
	}

	var running []*instance.Instance
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		args, err := e.source.Parameters(ctx, p)
		if err != nil {
			// the process may have exited since Find
			log.Debugf("Skipping process %d: %v", p.PID, err)
			continue
		}
		d, ok := matcher.Classify(e.matchers, args)
		if !ok {
			continue
		}
		log.Tracef("Process %d is %s instance %s", p.PID, d.Type, d.ID)
		running = append(running, d.Instance())
	}
	return running, nil
}

// UpdateInstances runs the refresher on every known instance. Failures are
// collected and do not stop the refresh of other instances.
func (e *Enumerator) UpdateInstances(ctx context.Context) error {
	if e.refresher == nil {
		return nil
	}
	var errs error
	for _, inst := range e.store.Instances() {
		if err := e.refresher.Refresh(ctx, inst); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return multierr.Append(errs, ctxErr)
			}
			errs = multierr.Append(errs, fmt.Errorf("%s instance %s: %w", inst.TypeName(), inst.ID, err))
		}
	}
	return errs
}

// CleanUp saves the instances to the cache and closes it
func (e *Enumerator) CleanUp(ctx context.Context) error {
	err := e.cache.Write(ctx, e.store.Instances())
	if err != nil {
		err = fmt.Errorf("unable to write application server cache: %w", err)
	}
	return multierr.Append(err, e.cache.Close())
}

// Size returns the number of known instances
func (e *Enumerator) Size() int {
	return e.store.Len()
}

// Instances returns the known instances, JBoss first, then WebSphere,
// WebLogic and Tomcat, each sorted by id
func (e *Enumerator) Instances() []*instance.Instance {
	return e.store.Instances()
}

// GetInstance returns the instance with the given id
func (e *Enumerator) GetInstance(id string) (*instance.Instance, bool) {
	return e.store.Get(id)
}
