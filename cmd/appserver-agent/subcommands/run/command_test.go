// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package run

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataDog/appserver-discovery/cmd/appserver-agent/command"
	appserver "github.com/DataDog/appserver-discovery/comp/appserver/def"
	"github.com/DataDog/appserver-discovery/comp/core/config"
	"github.com/DataDog/appserver-discovery/pkg/util/fxutil"
)

func newGlobalParamsTest(t *testing.T) *command.GlobalParams {
	// the appserver component is forced by fx.Invoke, keep it from touching
	// the host
	path := filepath.Join(t.TempDir(), "appserver-agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: \"off\"\nappserver:\n  enabled: false\n"), 0644))
	return &command.GlobalParams{ConfFilePath: path}
}

func TestCommand(t *testing.T) {
	globalParams := newGlobalParamsTest(t)
	fxutil.TestRunSubcommand(t,
		Commands(globalParams),
		[]string{"run"},
		func(params config.Params, cfg config.Component, comp appserver.Component) {
			assert.Equal(t, globalParams.ConfFilePath, params.ConfFilePath)
			assert.Equal(t, globalParams.ConfFilePath, cfg.ConfigFileUsed())
			assert.False(t, cfg.GetBool("appserver.enabled"))
			assert.Empty(t, comp.Instances())
		})
}
