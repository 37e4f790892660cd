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

const (
	webSphereRuntimeClass = "com.ibm.ws.runtime.WsServer"
	webSphereServerRoot   = "-Dserver.root"
)

type webSphereMatcher struct{}

func (webSphereMatcher) Type() instance.Type { return instance.WebSphere }

// TryMatch reads the positional tail of WsServer:
//
//	com.ibm.ws.runtime.WsServer <configDir> <cell> <node> <server>
func (webSphereMatcher) TryMatch(args []string) (Descriptor, bool) {
	anchor, ok := tokens.FindExactToken(args, webSphereRuntimeClass)
	if !ok || anchor+4 >= len(args) {
		return Descriptor{}, false
	}
	configDir, cell, node, server := args[anchor+1], args[anchor+2], args[anchor+3], args[anchor+4]

	root, ok := tokens.ValueOfAssignment(args, webSphereServerRoot)
	if !ok {
		return Descriptor{}, false
	}
	profile := tokens.LastSegment(root)

	return Descriptor{
		Type:     instance.WebSphere,
		ID:       strings.Join([]string{profile, cell, node, server}, "-"),
		DiskPath: root,
		Attributes: map[string]string{
			AttrProfile:   profile,
			AttrCell:      cell,
			AttrNode:      node,
			AttrServer:    server,
			AttrConfigDir: configDir,
		},
	}, true
}
