// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/afero"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
	"github.com/DataDog/appserver-discovery/pkg/util/log"
)

const cacheFileName = "appservers.json"

type fileContent struct {
	Count     int                   `json:"count"`
	Instances []jsoniter.RawMessage `json:"instances"`
}

// File is a Cache backed by a single JSON document
type File struct {
	fs   afero.Fs
	path string
}

// NewFile returns a cache writing to dir on fs
func NewFile(fs afero.Fs, dir string) *File {
	return &File{
		fs:   fs,
		path: filepath.Join(dir, cacheFileName),
	}
}

// Read implements Cache. A missing file is an empty cache.
func (f *File) Read(_ context.Context) ([]*instance.Instance, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", f.path, err)
	}

	var content fileContent
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if content.Count != len(content.Instances) {
		return nil, fmt.Errorf("%w: expected %d instances, found %d", ErrCorrupt, content.Count, len(content.Instances))
	}

	instances := make([]*instance.Instance, 0, len(content.Instances))
	for _, raw := range content.Instances {
		if inst, ok := decodeRecord(raw); ok {
			instances = append(instances, inst)
		}
	}
	log.Debugf("Read %d application server instances from %s", len(instances), f.path)
	return instances, nil
}

// Write implements Cache. The document is written next to the target then
// renamed over it.
func (f *File) Write(_ context.Context, instances []*instance.Instance) error {
	content := fileContent{
		Count:     len(instances),
		Instances: make([]jsoniter.RawMessage, 0, len(instances)),
	}
	for _, inst := range instances {
		data, err := encodeRecord(inst)
		if err != nil {
			return fmt.Errorf("unable to encode instance %s: %w", inst.ID, err)
		}
		content.Instances = append(content.Instances, data)
	}
	data, err := json.Marshal(content)
	if err != nil {
		return err
	}

	if err := f.fs.MkdirAll(filepath.Dir(f.path), cacheDirectoryPerm); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, data, 0600); err != nil {
		return fmt.Errorf("unable to write %s: %w", tmp, err)
	}
	return f.fs.Rename(tmp, f.path)
}

// Close implements Cache
func (f *File) Close() error { return nil }
