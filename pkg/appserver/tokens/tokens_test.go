// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindExactToken(t *testing.T) {
	args := []string{"java", "-classpathx", "Classpath", "-classpath", "org.jboss.Main"}

	tests := []struct {
		name    string
		literal string
		index   int
		found   bool
	}{
		{name: "exact", literal: "-classpath", index: 3, found: true},
		{name: "class name", literal: "org.jboss.Main", index: 4, found: true},
		{name: "no substring match", literal: "org.jboss", index: -1},
		{name: "case sensitive", literal: "classpath", index: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, ok := FindExactToken(args, tt.literal)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.index, i)
		})
	}
}

func TestValueAfterFlag(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		value string
		found bool
	}{
		{name: "value follows", args: []string{"-classpath", "/a:/b", "x"}, value: "/a:/b", found: true},
		{name: "flag is last", args: []string{"x", "-classpath"}},
		{name: "typo", args: []string{"-classpathx", "/a"}},
		{name: "empty next token", args: []string{"-classpath", ""}, value: "", found: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ValueAfterFlag(tt.args, "-classpath")
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestValueOfAssignment(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		value string
		found bool
	}{
		{name: "assignment", args: []string{"-Dcatalina.home=/opt/tomcat"}, value: "/opt/tomcat", found: true},
		{name: "empty value", args: []string{"-Dcatalina.home="}},
		{name: "no equal sign", args: []string{"-Dcatalina.home", "/opt/tomcat"}},
		{name: "longer key", args: []string{"-Dcatalina.homes=/opt/tomcat"}},
		{name: "first non empty wins", args: []string{"-Dcatalina.home=", "-Dcatalina.home=/b", "-Dcatalina.home=/c"}, value: "/b", found: true},
		{name: "value with equal sign", args: []string{"-Dcatalina.home=/a=b"}, value: "/a=b", found: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := ValueOfAssignment(tt.args, "-Dcatalina.home")
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestValueOfSpaceJoined(t *testing.T) {
	v, ok := ValueOfSpaceJoined([]string{"-c", "-c minimal"}, "-c")
	assert.True(t, ok)
	assert.Equal(t, "minimal", v)

	_, ok = ValueOfSpaceJoined([]string{"-c "}, "-c")
	assert.False(t, ok)

	_, ok = ValueOfSpaceJoined([]string{"-cp /a"}, "-c")
	assert.False(t, ok)
}

func TestPathHasSuffix(t *testing.T) {
	tests := []struct {
		name      string
		classpath string
		entry     string
		found     bool
	}{
		{name: "single entry", classpath: "/opt/jboss-6.2/bin/run.jar", entry: "/opt/jboss-6.2/bin/run.jar", found: true},
		{name: "second entry", classpath: "/optjboss-6.0/:/opt/jboss-6.0/bin/run.jar:/usr/lib", entry: "/opt/jboss-6.0/bin/run.jar", found: true},
		{name: "wrong extension", classpath: "/opt/jboss-6.6/bin/run.jam"},
		{name: "truncated", classpath: "/opt/jboss-6.6/bin/run.ja"},
		{name: "suffix not at end", classpath: "/opt/jboss/bin/run.jar.bak"},
		{name: "case sensitive", classpath: "/opt/jboss/BIN/run.jar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := PathHasSuffix(tt.classpath, "bin/run.jar")
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.entry, entry)
		})
	}
}

func TestParentDir(t *testing.T) {
	tests := []struct {
		path   string
		levels int
		want   string
	}{
		{"/opt/Oracle/Middleware/wlserver_10.3/server", 2, "/opt/Oracle/Middleware"},
		{"/opt/Oracle/Middleware/wlserver_10.3/server/", 2, "/opt/Oracle/Middleware"},
		{"/opt/Oracle/Middleware/wlserver_10.3", 1, "/opt/Oracle/Middleware"},
		{"/opt/weblogic/user_projects/domains/base_domain/servers/Managed1/data/nodemanager/boot.properties", 8, "/opt/weblogic"},
		{"/a", 2, ""},
		{"/a/b", 0, "/a/b"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ParentDir(tt.path, tt.levels))
		})
	}
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "AppSrv01", LastSegment("/opt/IBM/WebSphere/AppServer/profiles/AppSrv01"))
	assert.Equal(t, "AppSrv01", LastSegment("/opt/IBM/WebSphere/AppServer/profiles/AppSrv01/"))
	assert.Equal(t, "AppSrv01", LastSegment("AppSrv01"))
}
