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
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/DataDog/appserver-discovery/pkg/appserver/instance"
	"github.com/DataDog/appserver-discovery/pkg/util/log"
)

const (
	boltFileName       = "appservers.db"
	instancesBucket    = "instances"
	metaBucket         = "meta"
	countKey           = "count"
	boltOpenTimeout    = time.Second
	cacheDirectoryPerm = 0700
)

// Bolt is a Cache backed by a BoltDB file. Each instance is one key of the
// instances bucket, the meta bucket holds the number of instances written.
type Bolt struct {
	db   *bolt.DB
	path string
}

// OpenBolt opens or creates the database under dir
func OpenBolt(dir string) (*Bolt, error) {
	if err := os.MkdirAll(dir, cacheDirectoryPerm); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}

	path := filepath.Join(dir, boltFileName)
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("unable to open DB %s: %w", path, err)
	}

	if err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{instancesBucket, metaBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("unable to create %s bucket: %w", name, err)
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Bolt{db: db, path: path}, nil
}

// Read implements Cache
func (b *Bolt) Read(_ context.Context) ([]*instance.Instance, error) {
	var instances []*instance.Instance
	err := b.db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket([]byte(metaBucket))
		bucket := tx.Bucket([]byte(instancesBucket))
		if meta == nil || bucket == nil {
			return nil
		}

		raw := meta.Get([]byte(countKey))
		if raw == nil {
			return nil
		}
		expected, err := strconv.Atoi(string(raw))
		if err != nil {
			return fmt.Errorf("%w: bad count %q", ErrCorrupt, raw)
		}

		found := 0
		if err := bucket.ForEach(func(_, v []byte) error {
			found++
			if inst, ok := decodeRecord(v); ok {
				instances = append(instances, inst)
			}
			return nil
		}); err != nil {
			return err
		}
		if found != expected {
			return fmt.Errorf("%w: expected %d instances, found %d", ErrCorrupt, expected, found)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("Read %d application server instances from %s", len(instances), b.path)
	return instances, nil
}

// Write implements Cache
func (b *Bolt) Write(_ context.Context, instances []*instance.Instance) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(instancesBucket)); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		bucket, err := tx.CreateBucket([]byte(instancesBucket))
		if err != nil {
			return err
		}
		written := make(map[string]struct{}, len(instances))
		for _, inst := range instances {
			data, err := encodeRecord(inst)
			if err != nil {
				return fmt.Errorf("unable to encode instance %s: %w", inst.ID, err)
			}
			if err := bucket.Put([]byte(inst.ID), data); err != nil {
				return err
			}
			written[inst.ID] = struct{}{}
		}

		meta, err := tx.CreateBucketIfNotExists([]byte(metaBucket))
		if err != nil {
			return err
		}
		return meta.Put([]byte(countKey), []byte(strconv.Itoa(len(written))))
	})
}

// Close implements Cache
func (b *Bolt) Close() error {
	return b.db.Close()
}
