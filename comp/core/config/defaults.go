// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package config

import (
	"time"

	"github.com/DataDog/viper"
)

const (
	// DefaultConfPath points to the folder containing appserver-agent.yaml
	DefaultConfPath = "/etc/appserver-agent"
	// DefaultCachePath is where instance state is persisted between runs
	DefaultCachePath = "/var/lib/appserver-agent"
)

func setupDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("log_to_console", true)
	v.SetDefault("log_format_json", false)

	v.SetDefault("appserver.enabled", true)
	v.SetDefault("appserver.poll_interval", time.Minute)
	v.SetDefault("appserver.deep_refresh_interval", time.Duration(0))
	v.SetDefault("appserver.process_source", "gopsutil")
	v.SetDefault("appserver.executable_hint", "java")
	v.SetDefault("appserver.proc_root", "/proc")
	v.SetDefault("appserver.process_cache_ttl", time.Duration(0))
	v.SetDefault("appserver.cache.backend", "bolt")
	v.SetDefault("appserver.cache.path", DefaultCachePath)
	v.SetDefault("appserver.prune_uninstalled", false)
	v.SetDefault("appserver.status.host", "localhost")
	v.SetDefault("appserver.status.port", 5009)
}
