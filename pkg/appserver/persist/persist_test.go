// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package persist

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
)

func sampleInstances() []*instance.Instance {
	tomcat := instance.New("/opt/apache-tomcat-7.0.11/", "/opt/apache-tomcat-7.0.11/", instance.Tomcat)
	tomcat.SetPorts("8080", "8443")
	tomcat.SetVersion("7.0.11")
	tomcat.SetDeepMonitored(true, instance.ProtocolHTTPS)

	ws := instance.New("AppSrv01-cell-node-server1", "/opt/IBM/WebSphere/AppServer/profiles/AppSrv01", instance.WebSphere)
	ws.Profile = "AppSrv01"
	ws.Cell = "cell"
	ws.Node = "node"
	ws.Server = "server1"

	return []*instance.Instance{tomcat, ws}
}

func openCaches(t *testing.T) map[string]Cache {
	b, err := OpenBolt(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	return map[string]Cache{
		BackendBolt: b,
		BackendFile: NewFile(afero.NewMemMapFs(), "/var/lib/appserver-agent"),
	}
}

func TestRoundTrip(t *testing.T) {
	for name, cache := range openCaches(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			empty, err := cache.Read(ctx)
			require.NoError(t, err)
			assert.Empty(t, empty)

			require.NoError(t, cache.Write(ctx, sampleInstances()))
			read, err := cache.Read(ctx)
			require.NoError(t, err)
			require.Len(t, read, 2)

			instance.Sort(read)
			ws, tomcat := read[0], read[1]

			assert.Equal(t, "AppSrv01-cell-node-server1", ws.ID)
			assert.Equal(t, instance.WebSphere, ws.Type)
			assert.Equal(t, "server1", ws.Server)
			assert.False(t, ws.IsRunning)

			assert.Equal(t, instance.Tomcat, tomcat.Type)
			assert.Equal(t, "/opt/apache-tomcat-7.0.11/", tomcat.DiskPath)
			assert.Equal(t, "7.0.11", tomcat.Version)
			assert.Equal(t, "7", tomcat.MajorVersion)
			assert.True(t, tomcat.IsDeepMonitored)
			assert.Equal(t, instance.ProtocolHTTPS, tomcat.Protocol)
			assert.Equal(t, "8443", tomcat.Port)
			assert.False(t, tomcat.IsRunning)
		})
	}
}

func TestWriteReplaces(t *testing.T) {
	for name, cache := range openCaches(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, cache.Write(ctx, sampleInstances()))
			require.NoError(t, cache.Write(ctx, sampleInstances()[:1]))

			read, err := cache.Read(ctx)
			require.NoError(t, err)
			require.Len(t, read, 1)
			assert.Equal(t, "/opt/apache-tomcat-7.0.11/", read[0].ID)
		})
	}
}

func TestRecordDefaults(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		ok       bool
		id       string
		protocol string
	}{
		{
			name:     "id falls back to disk path",
			data:     `{"type":"JBoss","disk_path":"/opt/jboss/"}`,
			ok:       true,
			id:       "/opt/jboss/",
			protocol: instance.ProtocolHTTP,
		},
		{
			name:     "protocol kept",
			data:     `{"id":"/opt/Oracle","type":"Weblogic","disk_path":"/opt/Oracle","protocol":"HTTPS"}`,
			ok:       true,
			id:       "/opt/Oracle",
			protocol: instance.ProtocolHTTPS,
		},
		{
			name: "unknown type",
			data: `{"id":"/opt/glassfish","type":"GlassFish","disk_path":"/opt/glassfish"}`,
		},
		{
			name: "garbage",
			data: `{"id":`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, ok := decodeRecord([]byte(tt.data))
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.id, inst.ID)
			assert.Equal(t, tt.protocol, inst.Protocol)
			assert.False(t, inst.IsRunning)
		})
	}
}

func TestFileSkipsUnknownTypes(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cache/appservers.json", []byte(`{"count":2,"instances":[
		{"id":"/opt/glassfish","type":"GlassFish","disk_path":"/opt/glassfish"},
		{"id":"/opt/tomcat/","type":"Tomcat","disk_path":"/opt/tomcat/"}
	]}`), 0600))

	read, err := NewFile(fs, "/cache").Read(context.Background())
	require.NoError(t, err)
	require.Len(t, read, 1)
	assert.Equal(t, "/opt/tomcat/", read[0].ID)
}

func TestFileCountMismatch(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cache/appservers.json", []byte(`{"count":3,"instances":[
		{"id":"/opt/tomcat/","type":"Tomcat","disk_path":"/opt/tomcat/"}
	]}`), 0600))

	_, err := NewFile(fs, "/cache").Read(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileUnreadable(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/cache/appservers.json", []byte("not json"), 0600))

	_, err := NewFile(fs, "/cache").Read(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestNew(t *testing.T) {
	c, err := New(BackendNone, "")
	require.NoError(t, err)
	assert.IsType(t, Nop{}, c)

	c, err = New(BackendFile, t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &File{}, c)

	c, err = New(BackendBolt, t.TempDir())
	require.NoError(t, err)
	assert.IsType(t, &Bolt{}, c)
	assert.NoError(t, c.Close())

	_, err = New("redis", "")
	assert.Error(t, err)
}

func TestBoltReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	b, err := OpenBolt(dir)
	require.NoError(t, err)
	require.NoError(t, b.Write(ctx, sampleInstances()))
	require.NoError(t, b.Close())

	b, err = OpenBolt(dir)
	require.NoError(t, err)
	defer b.Close()
	read, err := b.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, read, 2)
}
