package ports

import (
	"motiflab/domain/analysis"
	"motiflab/domain/region"
)

// NumericMap assigns a value to named members (motifs, sequences, modules)
type NumericMap interface {
	Name() string
	MemberType() analysis.MemberType
	// Keys returns every member with a value, in a stable order
	Keys() []string
	// Value returns the value for key and whether one is defined
	Value(key string) (float64, bool)
}

// Collection is a named set of members of one type
type Collection interface {
	Name() string
	MemberType() analysis.MemberType
	Members() []string
	Contains(member string) bool
}

// Partition divides members into named clusters
type Partition interface {
	Name() string
	MemberType() analysis.MemberType
	Clusters() []string
	ClusterMembers(cluster string) []string
}

// RegionDataset provides per-sequence interval sets over a shared coordinate system
type RegionDataset interface {
	Name() string
	// Regions returns the regions on one sequence. Callers must not modify the slice.
	Regions(sequence string) ([]region.Region, error)
}
