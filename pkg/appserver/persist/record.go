// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package persist

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
	"github.com/DataDog/appserver-discovery/pkg/util/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// record is the stored form of an instance
type record struct {
	ID           string `json:"id,omitempty"`
	Type         string `json:"type"`
	DiskPath     string `json:"disk_path"`
	HTTPPort     string `json:"http_port,omitempty"`
	HTTPSPort    string `json:"https_port,omitempty"`
	Protocol     string `json:"protocol,omitempty"`
	Version      string `json:"version,omitempty"`
	DeepMonitor  bool   `json:"deep_monitored,omitempty"`
	Profile      string `json:"profile,omitempty"`
	Cell         string `json:"cell,omitempty"`
	Node         string `json:"node,omitempty"`
	Server       string `json:"server,omitempty"`
	HomePath     string `json:"home_path,omitempty"`
	PortsBinding string `json:"ports_binding,omitempty"`
}

func newRecord(i *instance.Instance) record {
	return record{
		ID:           i.ID,
		Type:         i.TypeName(),
		DiskPath:     i.DiskPath,
		HTTPPort:     i.HTTPPort,
		HTTPSPort:    i.HTTPSPort,
		Protocol:     i.Protocol,
		Version:      i.Version,
		DeepMonitor:  i.IsDeepMonitored,
		Profile:      i.Profile,
		Cell:         i.Cell,
		Node:         i.Node,
		Server:       i.Server,
		HomePath:     i.HomePath,
		PortsBinding: i.PortsBinding,
	}
}

// instance rebuilds a stopped instance from r. Records written before the id
// was stored use the disk path as id. It fails on unknown product types.
func (r record) instance() (*instance.Instance, bool) {
	t, ok := instance.ParseType(r.Type)
	if !ok {
		return nil, false
	}
	id := r.ID
	if id == "" {
		id = r.DiskPath
	}
	protocol := r.Protocol
	if protocol == "" {
		protocol = instance.ProtocolHTTP
	}

	inst := instance.New(id, r.DiskPath, t)
	inst.IsRunning = false
	inst.HTTPPort = r.HTTPPort
	inst.HTTPSPort = r.HTTPSPort
	inst.SetDeepMonitored(r.DeepMonitor, protocol)
	inst.SetVersion(r.Version)
	inst.Profile = r.Profile
	inst.Cell = r.Cell
	inst.Node = r.Node
	inst.Server = r.Server
	inst.HomePath = r.HomePath
	inst.PortsBinding = r.PortsBinding
	return inst, true
}

func encodeRecord(i *instance.Instance) ([]byte, error) {
	return json.Marshal(newRecord(i))
}

// decodeRecord returns false for records that cannot be turned into an
// instance. Those are logged and skipped.
func decodeRecord(data []byte) (*instance.Instance, bool) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		log.Warnf("Skipping unreadable cached instance: %v", err)
		return nil, false
	}
	inst, ok := r.instance()
	if !ok {
		log.Warnf("Skipping cached instance %q of unknown type %q", r.DiskPath, r.Type)
		return nil, false
	}
	return inst, true
}
