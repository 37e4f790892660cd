// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package deeprefresh

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
)

const (
	jbossDefaultBindingSet = "ports-default"
	jbossBindingSetClass   = "org.jboss.services.binding.impl.ServiceBindingSet"
	jbossWebServerService  = "jboss.web:service=WebServer"
)

func (r *Refresher) refreshJBoss(inst *instance.Instance) error {
	if err := r.jbossVersion(inst); err != nil {
		return err
	}
	major, err := strconv.Atoi(inst.MajorVersion)
	if err != nil {
		return fmt.Errorf("unexpected JBoss version %q for %s", inst.Version, inst.ID)
	}
	if major >= 5 {
		return r.jboss5Ports(inst)
	}
	return r.jboss4Ports(inst)
}

// jbossVersion reads the specVersion of jboss.jar in jar-versions.xml
func (r *Refresher) jbossVersion(inst *instance.Instance) error {
	path := filepath.Join(inst.DiskPath, "jar-versions.xml")
	root, err := readXML(r.fs, path)
	if err != nil {
		return err
	}
	if root.name() == "jar-versions" {
		for _, jar := range root.childrenNamed("jar") {
			if name, _ := jar.attr("name"); name != "jboss.jar" {
				continue
			}
			if version, ok := jar.attr("specVersion"); ok {
				inst.SetVersion(version)
				return nil
			}
		}
	}
	return fmt.Errorf("no jboss.jar version found in %s", path)
}

// jboss4Ports reads the embedded tomcat configuration of the profile
func (r *Refresher) jboss4Ports(inst *instance.Instance) error {
	root, err := readXML(r.fs, filepath.Join(inst.ID, "deploy", "jboss-web.deployer", "server.xml"))
	if err != nil {
		return err
	}
	inst.SetPorts(connectorPorts(root))
	return nil
}

// jboss5Ports reads the standard web server bindings and shifts them by the
// offset of the binding set the instance runs with
func (r *Refresher) jboss5Ports(inst *instance.Instance) error {
	path := filepath.Join(inst.ID, "conf", "bindingservice.beans", "META-INF", "bindings-jboss-beans.xml")
	root, err := readXML(r.fs, path)
	if err != nil {
		return err
	}
	if root.name() != "deployment" {
		return fmt.Errorf("unexpected root element %q in %s", root.name(), path)
	}

	bindingSet := inst.PortsBinding
	if bindingSet == "" {
		bindingSet = jbossDefaultBindingSet
	}

	offset := 0
	var standard *node
	for _, bean := range root.childrenNamed("bean") {
		if class, _ := bean.attr("class"); class == jbossBindingSetClass {
			if v, ok := jbossBindingSetOffset(bean, bindingSet); ok {
				offset = v
			}
		}
		if name, _ := bean.attr("name"); name == "StandardBindings" {
			standard = bean
		}
	}
	if standard == nil {
		return fmt.Errorf("no StandardBindings bean in %s", path)
	}

	httpPort, httpsPort := jbossStandardPorts(standard)
	inst.SetPorts(shiftPort(httpPort, offset), shiftPort(httpsPort, offset))
	return nil
}

// jbossBindingSetOffset reads the third constructor parameter of a binding
// set whose first parameter is name
func jbossBindingSetOffset(bean *node, name string) (int, bool) {
	constructor, ok := bean.child("constructor")
	if !ok {
		return 0, false
	}
	params := constructor.childrenNamed("parameter")
	if len(params) < 3 || params[0].text() != name {
		return 0, false
	}
	offset, err := strconv.Atoi(params[2].text())
	return offset, err == nil
}

func jbossStandardPorts(standard *node) (httpPort, httpsPort int) {
	constructor, ok := standard.child("constructor")
	if !ok {
		return 0, 0
	}
	param, ok := constructor.child("parameter")
	if !ok {
		return 0, 0
	}
	set, ok := param.child("set")
	if !ok {
		return 0, 0
	}

	for _, bean := range set.childrenNamed("bean") {
		props := bean.childrenNamed("property")
		if len(props) < 2 || !isProperty(props[0], "serviceName") || props[0].text() != jbossWebServerService {
			continue
		}
		switch {
		case len(props) >= 3 && isProperty(props[1], "bindingName") && isProperty(props[2], "port"):
			port, err := strconv.Atoi(props[2].text())
			if err != nil {
				continue
			}
			switch props[1].text() {
			case "HttpConnector":
				httpPort = port
			case "HttpsConnector":
				httpsPort = port
			}
		case isProperty(props[1], "port"):
			if port, err := strconv.Atoi(props[1].text()); err == nil {
				httpPort = port
			}
		}
	}
	return httpPort, httpsPort
}

func isProperty(n *node, name string) bool {
	v, ok := n.attr("name")
	return ok && v == name
}

func shiftPort(port, offset int) string {
	if port == 0 {
		return ""
	}
	return strconv.Itoa(port + offset)
}
