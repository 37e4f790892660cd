// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTomcatMatcher(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		match bool
		id    string
		home  string
	}{
		{
			name: "base and home",
			args: []string{
				"/usr/java/jre1.6.0_10//bin/java",
				"-Djava.util.logging.config.file=/opt/apache-tomcat-5.5.29//conf/logging.properties",
				"-classpath", "/opt/apache-tomcat-5.5.29//bin/bootstrap.jar",
				"-Dcatalina.base=/opt/apache-tomcat-5.5.29/profile1",
				"-Dcatalina.home=/opt/apache-tomcat-5.5.29/",
				"-Djava.io.tmpdir=/opt/apache-tomcat-5.5.29//temp",
				"org.apache.catalina.startup.Bootstrap", "start",
			},
			match: true,
			id:    "/opt/apache-tomcat-5.5.29/profile1/",
			home:  "/opt/apache-tomcat-5.5.29/",
		},
		{
			name:  "home only",
			args:  []string{"-Dcatalina.home=/opt/apache-tomcat-5.5.29/", "org.apache.catalina.startup.Bootstrap"},
			match: true,
			id:    "/opt/apache-tomcat-5.5.29/",
			home:  "/opt/apache-tomcat-5.5.29/",
		},
		{
			name:  "no bootstrap class",
			args:  []string{"-Dcatalina.home=/opt/tomcat"},
			match: true,
			id:    "/opt/tomcat/",
			home:  "/opt/tomcat",
		},
		{
			name: "base only",
			args: []string{"-Dcatalina.base=/opt/apache-tomcat-5.5.29/", "org.apache.catalina.startup.Bootstrap"},
		},
		{
			name: "empty home",
			args: []string{"-Dcatalina.home=", "-Dcatalina.base=/opt/apache-tomcat-5.5.29/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := tomcatMatcher{}.TryMatch(tt.args)
			require.Equal(t, tt.match, ok)
			if !tt.match {
				return
			}
			assert.Equal(t, tt.id, d.ID)
			assert.Equal(t, tt.id, d.DiskPath)
			assert.Equal(t, tt.home, d.Attributes[AttrHome])
		})
	}
}
