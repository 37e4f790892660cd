// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package deeprefresh

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
)

const tomcatVersionPrefix = "Apache Tomcat Version "

func (r *Refresher) refreshTomcat(inst *instance.Instance) error {
	var errs error
	if err := r.tomcatVersion(inst); err != nil {
		errs = multierr.Append(errs, err)
	}

	root, err := readXML(r.fs, filepath.Join(inst.DiskPath, "conf", "server.xml"))
	if err != nil {
		return multierr.Append(errs, err)
	}
	inst.SetPorts(connectorPorts(root))
	return errs
}

// tomcatVersion reads the version from the RELEASE-NOTES of the home folder
func (r *Refresher) tomcatVersion(inst *instance.Instance) error {
	home := inst.HomePath
	if home == "" {
		home = inst.DiskPath
	}
	path := filepath.Join(home, "RELEASE-NOTES")
	f, err := r.fs.Open(path)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if _, version, ok := strings.Cut(scanner.Text(), tomcatVersionPrefix); ok {
			inst.SetVersion(strings.TrimSpace(version))
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}
	return fmt.Errorf("no version found in %s", path)
}
