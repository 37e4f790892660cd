// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package matcher

import (
	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
	"github.com/DataDog/appserver-discovery/pkg/appserver/tokens"
)

const webLogicMainClass = "weblogic.Server"

// webLogicHomeAnchors lists the properties locating the middleware root, in
// precedence order, with the number of trailing segments to drop.
//
//	<root>/wlserver_10.3/server
//	<root>/wlserver_10.3
//	<root>/user_projects/domains/<domain>/servers/<server>/data/nodemanager/boot.properties
var webLogicHomeAnchors = []struct {
	prop   string
	levels int
}{
	{prop: "-Dweblogic.home", levels: 2},
	{prop: "-Dplatform.home", levels: 1},
	{prop: "-Dweblogic.system.BootIdentityFile", levels: 8},
}

type webLogicMatcher struct{}

func (webLogicMatcher) Type() instance.Type { return instance.WebLogic }

// TryMatch identifies the installation rather than the managed server, so all
// servers of one middleware home share an instance.
func (webLogicMatcher) TryMatch(args []string) (Descriptor, bool) {
	if _, ok := tokens.FindExactToken(args, webLogicMainClass); !ok {
		return Descriptor{}, false
	}

	for _, anchor := range webLogicHomeAnchors {
		value, ok := tokens.ValueOfAssignment(args, anchor.prop)
		if !ok {
			continue
		}
		root := tokens.ParentDir(value, anchor.levels)
		if root == "" {
			continue
		}
		return Descriptor{
			Type:       instance.WebLogic,
			ID:         root,
			DiskPath:   root,
			Attributes: map[string]string{AttrHome: value},
		}, true
	}
	return Descriptor{}, false
}
