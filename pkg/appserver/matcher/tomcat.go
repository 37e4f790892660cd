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
	catalinaHomeProp = "-Dcatalina.home"
	catalinaBaseProp = "-Dcatalina.base"
)

type tomcatMatcher struct{}

func (tomcatMatcher) Type() instance.Type { return instance.Tomcat }

// TryMatch requires catalina.home. catalina.base defaults to it and names the
// instance.
func (tomcatMatcher) TryMatch(args []string) (Descriptor, bool) {
	home, ok := tokens.ValueOfAssignment(args, catalinaHomeProp)
	if !ok {
		return Descriptor{}, false
	}
	base, ok := tokens.ValueOfAssignment(args, catalinaBaseProp)
	if !ok {
		base = home
	}
	base = withTrailingSlash(base)

	return Descriptor{
		Type:       instance.Tomcat,
		ID:         base,
		DiskPath:   base,
		Attributes: map[string]string{AttrHome: home},
	}, true
}

func withTrailingSlash(path string) string {
	if strings.HasSuffix(path, "/") {
		return path
	}
	return path + "/"
}
