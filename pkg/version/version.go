// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is a parsed agent version
type Version struct {
	*semver.Version
	Commit string
}

// Agent returns the version of the running agent
func Agent() (Version, error) {
	return New(AgentVersion, Commit)
}

// New parses version
func New(version, commit string) (Version, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return Version{}, fmt.Errorf("invalid agent version %q: %w", version, err)
	}
	return Version{Version: v, Commit: commit}, nil
}

// GetNumberAndPre returns the version without build metadata, e.g. 1.2.3-rc.1
func (v Version) GetNumberAndPre() string {
	number := fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
	if pre := v.Prerelease(); pre != "" {
		number += "-" + pre
	}
	return number
}
