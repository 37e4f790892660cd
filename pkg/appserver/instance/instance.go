// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package instance holds the application server instances found on the host
// and the store reconciling them across polls.
package instance

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Instance is one installation of an application server. ID is unique within
// a Store.
type Instance struct {
	ID        string `json:"id"`
	Type      Type   `json:"-"`
	DiskPath  string `json:"disk_path"`
	IsRunning bool   `json:"-"`

	HTTPPort        string `json:"http_port,omitempty"`
	HTTPSPort       string `json:"https_port,omitempty"`
	Protocol        string `json:"protocol,omitempty"`
	Port            string `json:"port,omitempty"`
	Version         string `json:"version,omitempty"`
	MajorVersion    string `json:"major_version,omitempty"`
	IsDeepMonitored bool   `json:"deep_monitored,omitempty"`

	// Product specific
	Profile      string `json:"profile,omitempty"`
	Cell         string `json:"cell,omitempty"`
	Node         string `json:"node,omitempty"`
	Server       string `json:"server,omitempty"`
	HomePath     string `json:"home_path,omitempty"`
	PortsBinding string `json:"ports_binding,omitempty"`
}

// New returns a running instance using HTTP
func New(id, diskPath string, t Type) *Instance {
	return &Instance{
		ID:        id,
		Type:      t,
		DiskPath:  diskPath,
		IsRunning: true,
		Protocol:  ProtocolHTTP,
	}
}

// TypeName returns the product name, e.g. "Weblogic"
func (i *Instance) TypeName() string {
	return i.Type.String()
}

// SetDeepMonitored enables or disables deep monitoring and selects the port
// matching protocol
func (i *Instance) SetDeepMonitored(deep bool, protocol string) {
	i.IsDeepMonitored = deep
	if strings.EqualFold(protocol, ProtocolHTTPS) {
		i.Protocol = ProtocolHTTPS
		i.Port = i.HTTPSPort
		return
	}
	i.Protocol = ProtocolHTTP
	i.Port = i.HTTPPort
}

// SetPorts records the listening ports and refreshes the selected one
func (i *Instance) SetPorts(httpPort, httpsPort string) {
	i.HTTPPort = httpPort
	i.HTTPSPort = httpsPort
	i.SetDeepMonitored(i.IsDeepMonitored, i.Protocol)
}

// SetVersion records the product version and derives the major version
func (i *Instance) SetVersion(version string) {
	i.Version = version
	i.MajorVersion = MajorVersion(version)
}

// MajorVersion returns the leading component of a product version. It
// accepts versions semver cannot parse, such as "5.1.0.GA".
func MajorVersion(version string) string {
	if version == "" {
		return ""
	}
	if v, err := semver.NewVersion(version); err == nil {
		return strconv.FormatUint(v.Major(), 10)
	}
	major, _, _ := strings.Cut(version, ".")
	return major
}

// inherit copies the state a poll cannot observe from prev
func (i *Instance) inherit(prev *Instance) {
	if i.Version == "" {
		i.Version = prev.Version
		i.MajorVersion = prev.MajorVersion
	}
	if i.HTTPPort == "" && i.HTTPSPort == "" {
		i.HTTPPort = prev.HTTPPort
		i.HTTPSPort = prev.HTTPSPort
	}
	i.SetDeepMonitored(prev.IsDeepMonitored, prev.Protocol)
}

// Clone returns a copy of i
func (i *Instance) Clone() *Instance {
	c := *i
	return &c
}

// Summary is the representation of an instance exposed to users
type Summary struct {
	*Instance
	Type    string `json:"type"`
	Running bool   `json:"running"`
}

// Summary returns the user facing representation of i
func (i *Instance) Summary() Summary {
	return Summary{
		Instance: i,
		Type:     i.TypeName(),
		Running:  i.IsRunning,
	}
}
