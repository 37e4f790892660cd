// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package deeprefresh

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// node is an untyped XML element. Names are compared without namespace.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []node     `xml:",any"`
}

func readXML(fs afero.Fs, path string) (*node, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	var root node
	if err := xml.NewDecoder(f).Decode(&root); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}
	return &root, nil
}

func (n *node) name() string {
	return n.XMLName.Local
}

func (n *node) text() string {
	return strings.TrimSpace(n.Content)
}

func (n *node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *node) child(name string) (*node, bool) {
	for i := range n.Children {
		if n.Children[i].name() == name {
			return &n.Children[i], true
		}
	}
	return nil, false
}

func (n *node) childrenNamed(name string) []*node {
	var res []*node
	for i := range n.Children {
		if n.Children[i].name() == name {
			res = append(res, &n.Children[i])
		}
	}
	return res
}

// connectorPorts reads the HTTP/1.1 connectors of a catalina server.xml:
//
//	<Server><Service><Connector port="8080" protocol="HTTP/1.1"/></Service></Server>
//
// A connector with secure="true" provides the HTTPS port.
func connectorPorts(root *node) (httpPort, httpsPort string) {
	if root.name() != "Server" {
		return "", ""
	}
	service, ok := root.child("Service")
	if !ok {
		return "", ""
	}
	for _, connector := range service.childrenNamed("Connector") {
		if protocol, ok := connector.attr("protocol"); ok && protocol != "HTTP/1.1" {
			continue
		}
		port, ok := connector.attr("port")
		if !ok {
			continue
		}
		if secure, _ := connector.attr("secure"); secure == "true" {
			if httpsPort == "" {
				httpsPort = port
			}
		} else if httpPort == "" {
			httpPort = port
		}
		if httpPort != "" && httpsPort != "" {
			break
		}
	}
	return httpPort, httpsPort
}
