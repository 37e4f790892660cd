// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package telemetry

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
)

func TestObservePoll(t *testing.T) {
	m := New()
	m.ObservePoll(10*time.Millisecond, nil)
	m.ObservePoll(time.Second, errors.New("permission denied"))

	assert.Equal(t, Stats{Polls: 2, PollErrors: 1}, m.Stats())
	assert.Equal(t, 1, testutil.CollectAndCount(m.pollDuration))
}

func TestObserveRefresh(t *testing.T) {
	m := New()
	m.ObserveRefresh(nil)
	m.ObserveRefresh(multierr.Combine(errors.New("a"), errors.New("b")))

	stats := m.Stats()
	assert.Equal(t, float64(2), stats.Refreshes)
	assert.Equal(t, float64(2), stats.RefreshErrors)
}

func TestSetInstances(t *testing.T) {
	m := New()
	stopped := instance.New("/opt/tomcat2/", "/opt/tomcat2/", instance.Tomcat)
	stopped.IsRunning = false
	m.SetInstances([]*instance.Instance{
		instance.New("/opt/tomcat/", "/opt/tomcat/", instance.Tomcat),
		stopped,
		instance.New("/opt/Oracle", "/opt/Oracle", instance.WebLogic),
	})

	assert.Equal(t, float64(1), testutil.ToFloat64(m.instances.WithLabelValues("Tomcat", StateRunning)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.instances.WithLabelValues("Tomcat", StateStopped)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.instances.WithLabelValues("Weblogic", StateRunning)))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.instances.WithLabelValues("JBoss", StateRunning)))

	expected := `
# HELP appserver_instances Known application server instances by product and state
# TYPE appserver_instances gauge
appserver_instances{state="running",type="JBoss"} 0
appserver_instances{state="running",type="Tomcat"} 1
appserver_instances{state="running",type="WebSphere"} 0
appserver_instances{state="running",type="Weblogic"} 1
appserver_instances{state="stopped",type="JBoss"} 0
appserver_instances{state="stopped",type="Tomcat"} 1
appserver_instances{state="stopped",type="WebSphere"} 0
appserver_instances{state="stopped",type="Weblogic"} 0
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "appserver_instances"))

	m.SetInstances(nil)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.instances.WithLabelValues("Tomcat", StateRunning)))
}
