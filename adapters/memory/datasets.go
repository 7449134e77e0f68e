// Package memory provides in-memory implementations of the dataset ports.
package memory

import (
	"sort"

	"motiflab/domain/analysis"
	"motiflab/domain/region"
)

// NumericMap is a map-backed ports.NumericMap with sorted keys
type NumericMap struct {
	name       string
	memberType analysis.MemberType
	values     map[string]float64
	keys       []string
}

// NewNumericMap copies values; keys iterate in lexical order
func NewNumericMap(name string, memberType analysis.MemberType, values map[string]float64) *NumericMap {
	m := &NumericMap{
		name:       name,
		memberType: memberType,
		values:     make(map[string]float64, len(values)),
		keys:       make([]string, 0, len(values)),
	}
	for k, v := range values {
		m.values[k] = v
		m.keys = append(m.keys, k)
	}
	sort.Strings(m.keys)
	return m
}

func (m *NumericMap) Name() string                    { return m.name }
func (m *NumericMap) MemberType() analysis.MemberType { return m.memberType }
func (m *NumericMap) Keys() []string                  { return append([]string(nil), m.keys...) }

func (m *NumericMap) Value(key string) (float64, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Collection is a ports.Collection keeping insertion order
type Collection struct {
	name       string
	memberType analysis.MemberType
	members    []string
	index      map[string]struct{}
}

// NewCollection builds a collection; duplicate members are kept once
func NewCollection(name string, memberType analysis.MemberType, members ...string) *Collection {
	c := &Collection{
		name:       name,
		memberType: memberType,
		index:      make(map[string]struct{}, len(members)),
	}
	for _, m := range members {
		if _, seen := c.index[m]; seen {
			continue
		}
		c.index[m] = struct{}{}
		c.members = append(c.members, m)
	}
	return c
}

func (c *Collection) Name() string                    { return c.name }
func (c *Collection) MemberType() analysis.MemberType { return c.memberType }
func (c *Collection) Members() []string               { return append([]string(nil), c.members...) }
func (c *Collection) Size() int                       { return len(c.members) }

func (c *Collection) Contains(member string) bool {
	_, ok := c.index[member]
	return ok
}

// Partition is a ports.Partition over named clusters
type Partition struct {
	name       string
	memberType analysis.MemberType
	clusters   map[string][]string
}

// NewPartition copies the cluster assignment
func NewPartition(name string, memberType analysis.MemberType, clusters map[string][]string) *Partition {
	p := &Partition{name: name, memberType: memberType, clusters: make(map[string][]string, len(clusters))}
	for cluster, members := range clusters {
		p.clusters[cluster] = append([]string(nil), members...)
	}
	return p
}

func (p *Partition) Name() string                    { return p.name }
func (p *Partition) MemberType() analysis.MemberType { return p.memberType }

// Clusters returns cluster names in lexical order
func (p *Partition) Clusters() []string {
	names := make([]string, 0, len(p.clusters))
	for name := range p.clusters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *Partition) ClusterMembers(cluster string) []string {
	return append([]string(nil), p.clusters[cluster]...)
}

// RegionDataset is a ports.RegionDataset over per-sequence region slices
type RegionDataset struct {
	name    string
	regions map[string][]region.Region
}

// NewRegionDataset takes ownership of regions
func NewRegionDataset(name string, regions map[string][]region.Region) *RegionDataset {
	if regions == nil {
		regions = map[string][]region.Region{}
	}
	return &RegionDataset{name: name, regions: regions}
}

func (d *RegionDataset) Name() string { return d.name }

// Regions never fails for in-memory data; a sequence without regions yields nil
func (d *RegionDataset) Regions(sequence string) ([]region.Region, error) {
	return d.regions[sequence], nil
}

// Sequences returns the names of sequences with at least one region, sorted
func (d *RegionDataset) Sequences() []string {
	names := make([]string, 0, len(d.regions))
	for name := range d.regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
