// Package analysis names the analysis variants, their capabilities, and the versioned
// envelope results travel in.
package analysis

import (
	"fmt"
	"sort"
	"time"

	"motiflab/domain/core"
	"motiflab/domain/stats"
)

// Kind identifies one analysis variant
type Kind string

const (
	KindDescriptive     Kind = "descriptive"
	KindSetOverlap      Kind = "set-overlap"
	KindClusterOverlap  Kind = "cluster-overlap"
	KindCorrelation     Kind = "correlation"
	KindRegionAgreement Kind = "region-agreement"
	KindRegression      Kind = "regression"
	KindOccurrence      Kind = "occurrence"
)

// MemberType is the type of object a collection, map or partition is made of
type MemberType string

const (
	MemberMotif    MemberType = "Motif"
	MemberModule   MemberType = "Module"
	MemberSequence MemberType = "Sequence"
)

// ParseMemberType accepts the canonical names case-sensitively
func ParseMemberType(s string) (MemberType, error) {
	switch t := MemberType(s); t {
	case MemberMotif, MemberModule, MemberSequence:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown member type %q", core.ErrInvalidInput, s)
}

// ============================================================================
// CAPABILITIES
// ============================================================================

// Capability describes what an analysis accepts. It replaces runtime type inspection
// with an explicit tag per variant.
type Capability struct {
	Kind        Kind         `json:"kind"`
	Description string       `json:"description"`
	Collation   bool         `json:"collation"`              // Results can be collated per member
	CollateOver []MemberType `json:"collate_over,omitempty"` // Empty means any member type
	SourceProxy bool         `json:"source_proxy"`           // Source may be any numeric provider
	Concurrent  bool         `json:"concurrent"`
}

// SupportsCollation reports whether the analysis can collate over members of type t
func (c Capability) SupportsCollation(t MemberType) bool {
	if !c.Collation {
		return false
	}
	if len(c.CollateOver) == 0 {
		return true
	}
	for _, accepted := range c.CollateOver {
		if accepted == t {
			return true
		}
	}
	return false
}

var capabilities = map[Kind]Capability{
	KindDescriptive: {
		Kind:        KindDescriptive,
		Description: "Min, max, mean, population standard deviation, quartiles and histogram of a numeric map",
		Collation:   true,
		SourceProxy: true,
	},
	KindSetOverlap: {
		Kind:        KindSetOverlap,
		Description: "Hypergeometric significance of the overlap between two collections",
		Collation:   true,
	},
	KindClusterOverlap: {
		Kind:        KindClusterOverlap,
		Description: "Hypergeometric overlap of every cluster in a partition with one collection",
		Collation:   true,
	},
	KindCorrelation: {
		Kind:        KindCorrelation,
		Description: "Pearson and Spearman correlation between two numeric maps",
		Collation:   true,
		SourceProxy: true,
	},
	KindRegionAgreement: {
		Kind:        KindRegionAgreement,
		Description: "Nucleotide-level agreement between a predicted and an answer region dataset",
		Collation:   true,
		CollateOver: []MemberType{MemberSequence},
		Concurrent:  true,
	},
	KindRegression: {
		Kind:        KindRegression,
		Description: "Least-squares regression of per-sequence motif scores against a numeric map",
		Collation:   true,
		CollateOver: []MemberType{MemberSequence},
	},
	KindOccurrence: {
		Kind:        KindOccurrence,
		Description: "Per-category presence and occurrence counts across sequences",
		Collation:   true,
		CollateOver: []MemberType{MemberSequence},
	},
}

// Lookup returns the capability of kind
func Lookup(kind Kind) (Capability, error) {
	c, ok := capabilities[kind]
	if !ok {
		return Capability{}, fmt.Errorf("%w: %q", core.ErrUnknownAnalysis, kind)
	}
	return c, nil
}

// Capabilities lists every analysis ordered by kind
func Capabilities() []Capability {
	list := make([]Capability, 0, len(capabilities))
	for _, c := range capabilities {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Kind < list[j].Kind })
	return list
}

// ============================================================================
// ENVELOPE
// ============================================================================

// SchemaVersion is bumped whenever an envelope payload changes shape
const SchemaVersion = 1

// Envelope carries one analysis result. Exactly one payload field is set, and Kind
// says which.
type Envelope struct {
	Version   int        `json:"version"`
	Kind      Kind       `json:"kind"`
	RunID     core.RunID `json:"run_id"`
	CreatedAt time.Time  `json:"created_at"`
	InputHash core.Hash  `json:"input_hash,omitempty"` // SHA-256 of the request bundle and params

	Statistic   *stats.Statistic         `json:"statistic,omitempty"`
	Overlap     *stats.OverlapResult     `json:"overlap,omitempty"`
	Clusters    []stats.ClusterOverlap   `json:"clusters"`
	Correlation *stats.CorrelationResult `json:"correlation,omitempty"`
	Agreement   *stats.AgreementResult   `json:"agreement,omitempty"`
	Regression  *stats.RegressionResult  `json:"regression,omitempty"`
	Occurrence  *stats.OccurrenceTally   `json:"occurrence,omitempty"`
}

// NewEnvelope starts an envelope for a fresh run of kind
func NewEnvelope(kind Kind) *Envelope {
	return &Envelope{
		Version:   SchemaVersion,
		Kind:      kind,
		RunID:     core.NewRunID(),
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks the version and that the payload matches Kind
func (e *Envelope) Validate() error {
	if e.Version != SchemaVersion {
		return fmt.Errorf("%w: envelope version %d, want %d", core.ErrInvalidInput, e.Version, SchemaVersion)
	}
	set := map[Kind]bool{
		KindDescriptive:     e.Statistic != nil,
		KindSetOverlap:      e.Overlap != nil,
		KindClusterOverlap:  e.Clusters != nil,
		KindCorrelation:     e.Correlation != nil,
		KindRegionAgreement: e.Agreement != nil,
		KindRegression:      e.Regression != nil,
		KindOccurrence:      e.Occurrence != nil,
	}
	if _, ok := set[e.Kind]; !ok {
		return fmt.Errorf("%w: %q", core.ErrUnknownAnalysis, e.Kind)
	}
	for kind, present := range set {
		if present != (kind == e.Kind) {
			return fmt.Errorf("%w: envelope of kind %s carries payload %s=%t", core.ErrInvalidInput, e.Kind, kind, present)
		}
	}
	return nil
}
