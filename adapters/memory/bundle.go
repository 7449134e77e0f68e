package memory

import (
	"encoding/json"
	"fmt"
	"io"

	"motiflab/domain/analysis"
	"motiflab/domain/core"
	"motiflab/domain/region"
)

// Bundle is the JSON shape datasets arrive in over the API and CLI
type Bundle struct {
	Sequences      []region.Sequence                     `json:"sequences"`
	NumericMaps    map[string]NumericMapSpec             `json:"numeric_maps,omitempty"`
	Collections    map[string]CollectionSpec             `json:"collections,omitempty"`
	Partitions     map[string]PartitionSpec              `json:"partitions,omitempty"`
	RegionDatasets map[string]map[string][]region.Region `json:"region_datasets,omitempty"`
}

// NumericMapSpec is the JSON form of a numeric map
type NumericMapSpec struct {
	MemberType string             `json:"member_type"`
	Values     map[string]float64 `json:"values"`
}

// CollectionSpec is the JSON form of a collection
type CollectionSpec struct {
	MemberType string   `json:"member_type"`
	Members    []string `json:"members"`
}

// PartitionSpec is the JSON form of a partition
type PartitionSpec struct {
	MemberType string              `json:"member_type"`
	Clusters   map[string][]string `json:"clusters"`
}

// DecodeBundle reads and validates a bundle
func DecodeBundle(r io.Reader) (*Bundle, error) {
	var b Bundle
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("%w: decode bundle: %v", core.ErrInvalidInput, err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks member types and sequence declarations
func (b *Bundle) Validate() error {
	seen := make(map[string]struct{}, len(b.Sequences))
	for _, s := range b.Sequences {
		if s.Name == "" {
			return fmt.Errorf("%w: sequence without a name", core.ErrInvalidInput)
		}
		if s.Length < 0 {
			return fmt.Errorf("%w: sequence %s has negative length", core.ErrInvalidInput, s.Name)
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("%w: sequence %s declared twice", core.ErrInvalidInput, s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	for name, m := range b.NumericMaps {
		if _, err := analysis.ParseMemberType(m.MemberType); err != nil {
			return fmt.Errorf("numeric map %s: %w", name, err)
		}
	}
	for name, c := range b.Collections {
		if _, err := analysis.ParseMemberType(c.MemberType); err != nil {
			return fmt.Errorf("collection %s: %w", name, err)
		}
	}
	for name, p := range b.Partitions {
		if _, err := analysis.ParseMemberType(p.MemberType); err != nil {
			return fmt.Errorf("partition %s: %w", name, err)
		}
	}
	return nil
}

// NumericMap looks up a numeric map by name
func (b *Bundle) NumericMap(name string) (*NumericMap, error) {
	spec, ok := b.NumericMaps[name]
	if !ok {
		return nil, core.NewNotFoundError("numeric map", name)
	}
	return NewNumericMap(name, analysis.MemberType(spec.MemberType), spec.Values), nil
}

// Collection looks up a collection by name
func (b *Bundle) Collection(name string) (*Collection, error) {
	spec, ok := b.Collections[name]
	if !ok {
		return nil, core.NewNotFoundError("collection", name)
	}
	return NewCollection(name, analysis.MemberType(spec.MemberType), spec.Members...), nil
}

// Partition looks up a partition by name
func (b *Bundle) Partition(name string) (*Partition, error) {
	spec, ok := b.Partitions[name]
	if !ok {
		return nil, core.NewNotFoundError("partition", name)
	}
	return NewPartition(name, analysis.MemberType(spec.MemberType), spec.Clusters), nil
}

// RegionDataset looks up a region dataset by name
func (b *Bundle) RegionDataset(name string) (*RegionDataset, error) {
	regions, ok := b.RegionDatasets[name]
	if !ok {
		return nil, core.NewNotFoundError("region dataset", name)
	}
	return NewRegionDataset(name, regions), nil
}

// SequenceScope returns the declared sequences, restricted to the members of the named
// Sequence collection when subset is not empty. Declaration order is kept.
func (b *Bundle) SequenceScope(subset string) ([]region.Sequence, error) {
	if subset == "" {
		return append([]region.Sequence(nil), b.Sequences...), nil
	}
	c, err := b.Collection(subset)
	if err != nil {
		return nil, err
	}
	if c.MemberType() != analysis.MemberSequence {
		return nil, core.NewIncompatibleTypesError(string(analysis.MemberSequence), string(c.MemberType()))
	}
	scope := make([]region.Sequence, 0, c.Size())
	for _, s := range b.Sequences {
		if c.Contains(s.Name) {
			scope = append(scope, s)
		}
	}
	return scope, nil
}
