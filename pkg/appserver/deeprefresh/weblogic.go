// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package deeprefresh

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rickar/props"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
	"github.com/DataDog/appserver-discovery/pkg/util/log"
)

const (
	webLogicDefaultHTTPPort  = "7001"
	webLogicDefaultHTTPSPort = "7002"
	webLogicAdminServer      = "AdminServer"
)

// refreshWebLogic reads the admin server of the first domain of the
// installation having a config/config.xml
func (r *Refresher) refreshWebLogic(inst *instance.Instance) error {
	domains := r.webLogicDomains(inst.DiskPath)
	if len(domains) == 0 {
		return fmt.Errorf("no WebLogic domain found under %s", inst.DiskPath)
	}

	var lastErr error
	for _, domain := range domains {
		root, err := readXML(r.fs, filepath.Join(domain, "config", "config.xml"))
		if err != nil {
			lastErr = err
			continue
		}
		if root.name() != "domain" {
			lastErr = fmt.Errorf("unexpected root element %q in domain %s", root.name(), domain)
			continue
		}
		applyWebLogicDomain(inst, root)
		return nil
	}
	return lastErr
}

func applyWebLogicDomain(inst *instance.Instance, domain *node) {
	if version, ok := domain.child("domain-version"); ok && version.text() != "" {
		inst.SetVersion(version.text())
		inst.MajorVersion = webLogicBrandedVersion(inst.Version)
	}

	admin := webLogicAdminServer
	if name, ok := domain.child("admin-server-name"); ok && name.text() != "" {
		admin = name.text()
	}

	httpPort, httpsPort := webLogicDefaultHTTPPort, webLogicDefaultHTTPSPort
	for _, server := range domain.childrenNamed("server") {
		if name, ok := server.child("name"); !ok || name.text() != admin {
			continue
		}
		if port, ok := server.child("listen-port"); ok && port.text() != "" {
			httpPort = port.text()
		}
		if ssl, ok := server.child("ssl"); ok {
			if port, ok := ssl.child("listen-port"); ok && port.text() != "" {
				httpsPort = port.text()
			}
		}
		break
	}
	inst.SetPorts(httpPort, httpsPort)
}

// webLogicDomains lists the domain folders from domain-registry.xml, falling
// back to the node manager domains file of 10.3 installations, sorted by
// domain name
func (r *Refresher) webLogicDomains(home string) []string {
	if root, err := readXML(r.fs, filepath.Join(home, "domain-registry.xml")); err == nil && root.name() == "domain-registry" {
		var domains []string
		for _, d := range root.childrenNamed("domain") {
			if location, ok := d.attr("location"); ok && location != "" {
				domains = append(domains, location)
			}
		}
		if len(domains) > 0 {
			return domains
		}
	}

	path := filepath.Join(home, "wlserver_10.3", "common", "nodemanager", "nodemanager.domains")
	f, err := r.fs.Open(path)
	if err != nil {
		log.Debugf("No WebLogic domain registry under %s: %v", home, err)
		return nil
	}
	defer f.Close()

	// name=path java properties, colons of Windows paths are escaped
	entries, err := props.Read(f)
	if err != nil {
		log.Debugf("Unable to read %s: %v", path, err)
		return nil
	}
	names := entries.Names()
	sort.Strings(names)

	var domains []string
	for _, name := range names {
		if location := entries.GetDefault(name, ""); location != "" {
			domains = append(domains, location)
		}
	}
	return domains
}

// webLogicBrandedVersion maps a domain version to the marketed release:
// 10.3.0 is 10g, later 10.3 releases are 11g.
func webLogicBrandedVersion(version string) string {
	parts := strings.Split(version, ".")
	if len(parts) < 3 {
		return instance.MajorVersion(version)
	}
	major, _ := strconv.Atoi(parts[0])
	minor, _ := strconv.Atoi(parts[1])
	revision, _ := strconv.Atoi(parts[2])

	switch {
	case major == 10 && minor == 3 && revision == 0:
		return "10"
	case major == 10 && minor < 3:
		return "10"
	case major == 10:
		return "11"
	case major == 11:
		return "11"
	default:
		return parts[0]
	}
}
