// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package instance

import (
	"sort"

	"github.com/samber/lo"
)

// Store maps instance IDs to instances. It is not safe for concurrent use.
type Store struct {
	instances map[string]*Instance
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{instances: make(map[string]*Instance)}
}

// Len returns the number of stored instances
func (s *Store) Len() int {
	return len(s.instances)
}

// Get returns the instance with the given ID
func (s *Store) Get(id string) (*Instance, bool) {
	inst, ok := s.instances[id]
	return inst, ok
}

// Add inserts inst, replacing any instance with the same ID
func (s *Store) Add(inst *Instance) {
	s.instances[inst.ID] = inst
}

// Remove deletes the instance with the given ID
func (s *Store) Remove(id string) bool {
	if _, ok := s.instances[id]; !ok {
		return false
	}
	delete(s.instances, id)
	return true
}

// Instances returns the stored instances ordered by product rank, then ID
func (s *Store) Instances() []*Instance {
	out := lo.Values(s.instances)
	Sort(out)
	return out
}

// Sort orders instances by product rank, then ID
func Sort(instances []*Instance) {
	sort.Slice(instances, func(a, b int) bool {
		if instances[a].Type != instances[b].Type {
			return instances[a].Type.Rank() < instances[b].Type.Rank()
		}
		return instances[a].ID < instances[b].ID
	})
}

// Merge reconciles the store with the instances found running by a poll.
//
// Every stored instance is marked stopped, then each running instance is
// upserted as running. Duplicated IDs in running collapse to the first one.
// A re-found instance keeps its deep monitoring settings and any version or
// ports learnt earlier. Instances missing from running stay in the store.
func (s *Store) Merge(running []*Instance) {
	for _, inst := range s.instances {
		inst.IsRunning = false
	}

	for _, inst := range lo.UniqBy(running, func(i *Instance) string { return i.ID }) {
		if prev, ok := s.instances[inst.ID]; ok {
			inst.inherit(prev)
		}
		inst.IsRunning = true
		s.instances[inst.ID] = inst
	}
}

// Prune removes the stopped instances for which installed returns false and
// returns them
func (s *Store) Prune(installed func(*Instance) bool) []*Instance {
	var removed []*Instance
	for id, inst := range s.instances {
		if inst.IsRunning || installed(inst) {
			continue
		}
		removed = append(removed, inst)
		delete(s.instances, id)
	}
	Sort(removed)
	return removed
}
