// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package instance

import "strings"

// Type is a supported application server product. The numeric value is the
// enumeration rank of the product.
type Type int

const (
	// JBoss covers JBoss AS and WildFly
	JBoss Type = iota
	// WebSphere is IBM WebSphere Application Server
	WebSphere
	// WebLogic is Oracle WebLogic Server
	WebLogic
	// Tomcat is Apache Tomcat
	Tomcat
)

const (
	// ProtocolHTTP selects the HTTP port of an instance
	ProtocolHTTP = "HTTP"
	// ProtocolHTTPS selects the HTTPS port of an instance
	ProtocolHTTPS = "HTTPS"
)

var typeNames = map[Type]string{
	JBoss:     "JBoss",
	WebSphere: "WebSphere",
	WebLogic:  "Weblogic",
	Tomcat:    "Tomcat",
}

// String returns the product name as exposed to consumers
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Rank orders products in enumerations
func (t Type) Rank() int {
	return int(t)
}

// ParseType returns the Type named s. The comparison ignores case so both
// "Weblogic" and "WebLogic" are accepted.
func ParseType(s string) (Type, bool) {
	for t, name := range typeNames {
		if strings.EqualFold(name, s) {
			return t, true
		}
	}
	return 0, false
}

// Types lists every product in rank order
func Types() []Type {
	return []Type{JBoss, WebSphere, WebLogic, Tomcat}
}
