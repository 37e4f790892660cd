// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package matcher

import (
	"strings"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
	"github.com/DataDog/appserver-discovery/pkg/appserver/tokens"
)

// jboss vendor specific constants
const (
	jbossMainClass      = "org.jboss.Main"
	jbossClasspathFlag  = "-classpath"
	jbossRunJar         = "bin/run.jar"
	jbossServerNameProp = "-Djboss.server.name"
	jbossConfigFlag     = "-c"
	jbossBindingSetProp = "-Djboss.service.binding.set"
	jbossHomeDirProp    = "-Djboss.home.dir"
	jbossDefaultProfile = "default"

	jbossDomainServerPrefix = "-D[Server:"
	jbossDomainServerSuffix = "]"
)

type jbossMatcher struct{}

func (jbossMatcher) Type() instance.Type { return instance.JBoss }

// TryMatch recognizes a standalone JBoss started through bin/run.jar
func (jbossMatcher) TryMatch(args []string) (Descriptor, bool) {
	if _, ok := tokens.FindExactToken(args, jbossMainClass); !ok {
		return Descriptor{}, false
	}

	entry, ok := jbossRunJarEntry(args)
	if !ok {
		return Descriptor{}, false
	}
	diskPath := strings.TrimSuffix(entry, jbossRunJar)
	profile := jbossProfile(args)

	attrs := map[string]string{AttrProfile: profile}
	if ports, ok := tokens.ValueOfAssignment(args, jbossBindingSetProp); ok {
		attrs[AttrPorts] = ports
	}

	return Descriptor{
		Type:       instance.JBoss,
		ID:         diskPath + "server/" + profile + "/",
		DiskPath:   diskPath,
		Attributes: attrs,
	}, true
}

// jbossRunJarEntry returns the classpath entry pointing to bin/run.jar. Both
// "-classpath value" and "-classpath=value" are accepted.
func jbossRunJarEntry(args []string) (string, bool) {
	if cp, ok := tokens.ValueAfterFlag(args, jbossClasspathFlag); ok {
		if entry, ok := tokens.PathHasSuffix(cp, jbossRunJar); ok {
			return entry, true
		}
	}
	if cp, ok := tokens.ValueOfAssignment(args, jbossClasspathFlag); ok {
		if entry, ok := tokens.PathHasSuffix(cp, jbossRunJar); ok {
			return entry, true
		}
	}
	return "", false
}

func jbossProfile(args []string) string {
	if name, ok := tokens.ValueOfAssignment(args, jbossServerNameProp); ok {
		return name
	}
	if name, ok := tokens.ValueAfterFlag(args, jbossConfigFlag); ok && name != "" {
		return name
	}
	if name, ok := tokens.ValueOfSpaceJoined(args, jbossConfigFlag); ok {
		return name
	}
	return jbossDefaultProfile
}

// jbossDomainMatcher recognizes a server spawned by a WildFly host
// controller. These processes have no org.jboss.Main nor run.jar.
type jbossDomainMatcher struct{}

func (jbossDomainMatcher) Type() instance.Type { return instance.JBoss }

func (jbossDomainMatcher) TryMatch(args []string) (Descriptor, bool) {
	server, ok := jbossDomainServerName(args)
	if !ok {
		return Descriptor{}, false
	}
	home, ok := tokens.ValueOfAssignment(args, jbossHomeDirProp)
	if !ok {
		return Descriptor{}, false
	}

	id := strings.TrimSuffix(home, "/") + "/domain/servers/" + server + "/"
	attrs := map[string]string{
		AttrServer: server,
		AttrHome:   home,
	}
	if ports, ok := tokens.ValueOfAssignment(args, jbossBindingSetProp); ok {
		attrs[AttrPorts] = ports
	}
	return Descriptor{
		Type:       instance.JBoss,
		ID:         id,
		DiskPath:   id,
		Attributes: attrs,
	}, true
}

func jbossDomainServerName(args []string) (string, bool) {
	for _, arg := range args {
		if !strings.HasPrefix(arg, jbossDomainServerPrefix) || !strings.HasSuffix(arg, jbossDomainServerSuffix) {
			continue
		}
		name := arg[len(jbossDomainServerPrefix) : len(arg)-len(jbossDomainServerSuffix)]
		if name != "" {
			return name, true
		}
	}
	return "", false
}
