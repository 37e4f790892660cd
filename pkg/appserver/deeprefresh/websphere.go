// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package deeprefresh

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
)

func (r *Refresher) refreshWebSphere(inst *instance.Instance) error {
	var errs error
	if err := r.webSphereVersion(inst); err != nil {
		errs = multierr.Append(errs, err)
	}
	if err := r.webSpherePorts(inst); err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}

// webSphereProfileDir returns the profile folder when the disk path points to
// one of its servers, e.g. <profile>/servers/server1
func webSphereProfileDir(diskPath string) string {
	clean := filepath.Clean(diskPath)
	parent := filepath.Dir(clean)
	if filepath.Base(parent) == "servers" {
		return filepath.Dir(parent)
	}
	return clean
}

func webSphereProfileVersionFile(inst *instance.Instance) string {
	return filepath.Join(webSphereProfileDir(inst.DiskPath), "properties", "version", "profile.version")
}

// webSphereVersion reads <profile><version>7.0.0.0</version></profile>
func (r *Refresher) webSphereVersion(inst *instance.Instance) error {
	path := webSphereProfileVersionFile(inst)
	root, err := readXML(r.fs, path)
	if err != nil {
		return err
	}
	if root.name() == "profile" {
		if version, ok := root.child("version"); ok && version.text() != "" {
			inst.SetVersion(version.text())
			return nil
		}
	}
	return fmt.Errorf("no version found in %s", path)
}

// webSpherePorts reads the WC_defaulthost endpoints of the server in the
// serverindex.xml of its node
func (r *Refresher) webSpherePorts(inst *instance.Instance) error {
	path := filepath.Join(webSphereProfileDir(inst.DiskPath), "config", "cells", inst.Cell, "nodes", inst.Node, "serverindex.xml")
	root, err := readXML(r.fs, path)
	if err != nil {
		return err
	}
	if root.name() != "ServerIndex" {
		return fmt.Errorf("unexpected root element %q in %s", root.name(), path)
	}

	for _, entry := range root.childrenNamed("serverEntries") {
		if name, _ := entry.attr("serverName"); name != inst.Server {
			continue
		}
		var httpPort, httpsPort string
		for _, endpoint := range entry.childrenNamed("specialEndpoints") {
			name, _ := endpoint.attr("endPointName")
			port := endpointPort(endpoint)
			switch {
			case name == "WC_defaulthost" && httpPort == "":
				httpPort = port
			case name == "WC_defaulthost_secure" && httpsPort == "":
				httpsPort = port
			}
		}
		inst.SetPorts(httpPort, httpsPort)
		return nil
	}
	return fmt.Errorf("server %s not found in %s", inst.Server, path)
}

func endpointPort(n *node) string {
	endpoint, ok := n.child("endPoint")
	if !ok {
		return ""
	}
	port, _ := endpoint.attr("port")
	return strings.TrimSpace(port)
}
