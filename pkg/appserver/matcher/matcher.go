// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package matcher classifies a process argument vector as an application
// server instance. Matchers are pure: they only look at the arguments.
package matcher

import (
	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
)

// Attribute keys set by matchers
const (
	AttrProfile   = "profile"
	AttrPorts     = "ports"
	AttrHome      = "home"
	AttrCell      = "cell"
	AttrNode      = "node"
	AttrServer    = "server"
	AttrConfigDir = "config_dir"
)

// Descriptor is the result of a positive match
type Descriptor struct {
	Type       instance.Type
	ID         string
	DiskPath   string
	Attributes map[string]string
}

// Instance returns a running instance built from d
func (d Descriptor) Instance() *instance.Instance {
	inst := instance.New(d.ID, d.DiskPath, d.Type)
	inst.Profile = d.Attributes[AttrProfile]
	inst.PortsBinding = d.Attributes[AttrPorts]
	inst.HomePath = d.Attributes[AttrHome]
	inst.Cell = d.Attributes[AttrCell]
	inst.Node = d.Attributes[AttrNode]
	inst.Server = d.Attributes[AttrServer]
	return inst
}

// Matcher recognizes the command line of one product
type Matcher interface {
	// Type returns the product recognized by the matcher
	Type() instance.Type
	// TryMatch classifies args, argv[0] included
	TryMatch(args []string) (Descriptor, bool)
}

// Default returns the matchers in the order they are tried
func Default() []Matcher {
	return []Matcher{
		jbossDomainMatcher{},
		jbossMatcher{},
		webSphereMatcher{},
		webLogicMatcher{},
		tomcatMatcher{},
	}
}

// Classify returns the descriptor of the first matcher accepting args
func Classify(matchers []Matcher, args []string) (Descriptor, bool) {
	for _, m := range matchers {
		if d, ok := m.TryMatch(args); ok {
			return d, true
		}
	}
	return Descriptor{}, false
}
