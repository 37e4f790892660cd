// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
)

func TestJBossMatcher(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		match    bool
		id       string
		diskPath string
		profile  string
		ports    string
	}{
		{
			name: "classpath with space",
			args: []string{
				"/usr/java/jre1.6.0_10//bin/java", "-server", "-Xms128m",
				"-Djava.library.path=/opt/jboss-6.0/bin/native/lib",
				"-classpath", "/optjboss-6.0/:/opt/jboss-6.0/bin/run.jar:/usr/lib",
				"org.jboss.Main", "-Djboss.service.binding.set=ports-01", "-b", "0.0.0.0",
			},
			match:    true,
			id:       "/opt/jboss-6.0/server/default/",
			diskPath: "/opt/jboss-6.0/",
			profile:  "default",
			ports:    "ports-01",
		},
		{
			name:     "classpath with equal sign",
			args:     []string{"-classpath=/opt/jboss-6.2/bin/run.jar", "org.jboss.Main", "-Djboss.service.binding.set=ports-01"},
			match:    true,
			id:       "/opt/jboss-6.2/server/default/",
			diskPath: "/opt/jboss-6.2/",
			profile:  "default",
			ports:    "ports-01",
		},
		{
			name:     "server name property",
			args:     []string{"-classpath=/c/jboss-90/bin/run.jar", "org.jboss.Main", "-Djboss.server.name=profile 3"},
			match:    true,
			id:       "/c/jboss-90/server/profile 3/",
			diskPath: "/c/jboss-90/",
			profile:  "profile 3",
		},
		{
			name:     "server name wins over config flag",
			args:     []string{"-classpath=/c/jboss-90/bin/run.jar", "org.jboss.Main", "-c", "other", "-Djboss.server.name=named"},
			match:    true,
			id:       "/c/jboss-90/server/named/",
			diskPath: "/c/jboss-90/",
			profile:  "named",
		},
		{
			name:     "config flag in one token",
			args:     []string{"-classpath=/jboss-6.3/bin/run.jar", "org.jboss.Main", "-Djboss.service.binding.set=ports-02", "-c minimal"},
			match:    true,
			id:       "/jboss-6.3/server/minimal/",
			diskPath: "/jboss-6.3/",
			profile:  "minimal",
			ports:    "ports-02",
		},
		{
			name:     "config flag and value",
			args:     []string{"-classpath=/jboss-6.4/bin/run.jar", "org.jboss.Main", "-c", "My profile"},
			match:    true,
			id:       "/jboss-6.4/server/My profile/",
			diskPath: "/jboss-6.4/",
			profile:  "My profile",
		},
		{
			name: "main class typo",
			args: []string{"-classpath", "/opt/jboss-6.3/bin/run.jar", "org.jboss_Main"},
		},
		{
			name: "classpath flag typo",
			args: []string{"-classpathx", "/opt/jboss-6.5/bin/run.jar", "org.jboss.Main"},
		},
		{
			name: "classpath flag wrong case",
			args: []string{"Classpath", "/opt/jboss-6.5/bin/run.jar", "org.jboss.Main"},
		},
		{
			name: "classpath without value",
			args: []string{"org.jboss.Main", "-Djboss.service.binding.set=ports-01", "-classpath"},
		},
		{
			name: "classpath with empty assignment",
			args: []string{"org.jboss.Main", "-classpath=", "-Djboss.service.binding.set=ports-01"},
		},
		{
			name: "run.jam",
			args: []string{"-classpath", "/opt/jboss-6.6/bin/run.jam", "org.jboss.Main"},
		},
		{
			name: "run.ja in longer classpath",
			args: []string{"-classpath", "/opt/jboss-6.6/bin:/usr/lib:/opt/jboss-6.6/bin/run.ja:/opt/jboss-6.6/lib", "org.jboss.Main"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := jbossMatcher{}.TryMatch(tt.args)
			require.Equal(t, tt.match, ok)
			if !tt.match {
				return
			}
			assert.Equal(t, instance.JBoss, d.Type)
			assert.Equal(t, tt.id, d.ID)
			assert.Equal(t, tt.diskPath, d.DiskPath)
			assert.Equal(t, tt.profile, d.Attributes[AttrProfile])
			assert.Equal(t, tt.ports, d.Attributes[AttrPorts])
		})
	}
}

func TestJBossDomainMatcher(t *testing.T) {
	args := []string{
		"/usr/lib/jvm/java-7-openjdk-amd64/jre/bin/java",
		"-D[Server:server-one]",
		"-XX:PermSize=256m",
		"-Djboss.home.dir=/root/wildfly-8.1.0.CR2/wildfly-8.1.0.CR2",
		"-Djboss.server.log.dir=/root/wildfly-8.1.0.CR2/wildfly-8.1.0.CR2/domain/servers/server-one/log",
		"-jar", "/root/wildfly-8.1.0.CR2/wildfly-8.1.0.CR2/jboss-modules.jar",
		"-mp", "/root/wildfly-8.1.0.CR2/wildfly-8.1.0.CR2/modules",
		"org.jboss.as.server",
	}

	d, ok := jbossDomainMatcher{}.TryMatch(args)
	require.True(t, ok)
	assert.Equal(t, instance.JBoss, d.Type)
	assert.Equal(t, "/root/wildfly-8.1.0.CR2/wildfly-8.1.0.CR2/domain/servers/server-one/", d.ID)
	assert.Equal(t, d.ID, d.DiskPath)
	assert.Equal(t, "server-one", d.Attributes[AttrServer])

	_, ok = jbossMatcher{}.TryMatch(args)
	assert.False(t, ok, "domain servers have no run.jar")

	t.Run("home dir with trailing slash", func(t *testing.T) {
		d, ok := jbossDomainMatcher{}.TryMatch([]string{"-D[Server:server-two]", "-Djboss.home.dir=/opt/wildfly/"})
		require.True(t, ok)
		assert.Equal(t, "/opt/wildfly/domain/servers/server-two/", d.ID)
	})

	t.Run("missing home dir", func(t *testing.T) {
		_, ok := jbossDomainMatcher{}.TryMatch([]string{"-D[Server:server-one]", "org.jboss.as.server"})
		assert.False(t, ok)
	})

	t.Run("host controller", func(t *testing.T) {
		_, ok := jbossDomainMatcher{}.TryMatch([]string{"-D[Host Controller]", "-Djboss.home.dir=/opt/wildfly"})
		assert.False(t, ok)
	})

	t.Run("empty server name", func(t *testing.T) {
		_, ok := jbossDomainMatcher{}.TryMatch([]string{"-D[Server:]", "-Djboss.home.dir=/opt/wildfly"})
		assert.False(t, ok)
	})
}
