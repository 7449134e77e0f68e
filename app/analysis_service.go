package app

import (
	"context"
	"fmt"
	"time"

	"motiflab/adapters/memory"
	"motiflab/adapters/stats/agreement"
	"motiflab/adapters/stats/correlation"
	"motiflab/adapters/stats/descriptive"
	"motiflab/adapters/stats/occurrence"
	"motiflab/adapters/stats/overlap"
	"motiflab/adapters/stats/regression"
	"motiflab/domain/analysis"
	"motiflab/domain/core"
	domainStats "motiflab/domain/stats"
	"motiflab/internal"
	"motiflab/internal/config"
	"motiflab/internal/metrics"
	"motiflab/internal/monitor"
	"motiflab/ports"
)

// Params names the bundle datasets an analysis reads and tunes the engine. Which
// fields are required depends on the analysis kind.
type Params struct {
	// descriptive
	Map      string             `json:"map,omitempty"`
	Filter   string             `json:"filter,omitempty"`
	BinWidth float64            `json:"bin_width,omitempty"`
	Range    *descriptive.Range `json:"range,omitempty"`
	Layout   string             `json:"layout,omitempty"`

	// set-overlap, cluster-overlap
	A         string  `json:"a,omitempty"`
	B         string  `json:"b,omitempty"`
	Universe  string  `json:"universe,omitempty"`
	Partition string  `json:"partition,omitempty"`
	Alpha     float64 `json:"alpha,omitempty"`
	SortBy    string  `json:"sort_by,omitempty"` // "name" (default) or "p-value"

	// correlation
	X string `json:"x,omitempty"`
	Y string `json:"y,omitempty"`

	// region-agreement
	Prediction string `json:"prediction,omitempty"`
	Answer     string `json:"answer,omitempty"`
	Workers    int    `json:"workers,omitempty"`

	// regression
	Motif       string `json:"motif,omitempty"`
	Sites       string `json:"sites,omitempty"`
	Response    string `json:"response,omitempty"`
	SkipMissing bool   `json:"skip_missing,omitempty"`
	Normalize   bool   `json:"normalize,omitempty"`

	// occurrence
	Categories   string `json:"categories,omitempty"`
	Track        string `json:"track,omitempty"`
	Within       string `json:"within,omitempty"`
	CountUnknown bool   `json:"count_unknown,omitempty"`

	// Sequences names a Sequence collection restricting the region-based analyses
	Sequences string `json:"sequences,omitempty"`
}

// Request is one analysis invocation as received over HTTP or read by the CLI
type Request struct {
	Bundle *memory.Bundle `json:"bundle"`
	Params Params         `json:"params"`
}

// AnalysisService validates a request, runs one engine and wraps its result in an envelope
type AnalysisService struct {
	config    config.AnalysisConfig
	logger    *internal.Logger
	overlap   *overlap.Engine
	agreement *agreement.Engine
}

// NewAnalysisService creates the service with engine defaults from cfg
func NewAnalysisService(cfg config.AnalysisConfig, logger *internal.Logger) *AnalysisService {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &AnalysisService{
		config:    cfg,
		logger:    logger,
		overlap:   overlap.NewEngine(cfg.OverlapAlpha),
		agreement: agreement.NewEngine(cfg.Workers, cfg.Window, logger),
	}
}

// Capabilities lists the analyses the service runs
func (s *AnalysisService) Capabilities() []analysis.Capability {
	return analysis.Capabilities()
}

// Run executes one analysis. A nil monitor is replaced by one bound to ctx.
func (s *AnalysisService) Run(ctx context.Context, kind analysis.Kind, req Request, tm ports.TaskMonitor) (*analysis.Envelope, error) {
	if _, err := analysis.Lookup(kind); err != nil {
		return nil, err
	}
	if req.Bundle == nil {
		return nil, fmt.Errorf("%w: request carries no bundle", core.ErrInvalidInput)
	}
	if err := req.Bundle.Validate(); err != nil {
		return nil, err
	}

	env := analysis.NewEnvelope(kind)
	logger := s.logger.With("run_id", env.RunID.String(), "kind", string(kind))
	if hash, err := core.HashJSON(req); err == nil {
		env.InputHash = hash
	} else {
		logger.Debug("request not hashable: %v", err)
	}
	start := time.Now()
	logger.Info("starting %s analysis", kind)
	if tm == nil {
		tm = monitor.NewContext(ctx, logger)
	}

	err := s.dispatch(ctx, env, req.Bundle, req.Params, tm, logger)
	if err == nil {
		err = env.Validate()
	}

	elapsed := time.Since(start)
	switch {
	case err == nil:
		metrics.RecordRun(string(kind), metrics.StatusOK, elapsed)
		logger.Info("%s analysis finished in %s", kind, elapsed)
		return env, nil
	case core.IsCancelled(err):
		metrics.RecordRun(string(kind), metrics.StatusCancelled, elapsed)
		logger.Warn("%s analysis cancelled after %s", kind, elapsed)
	default:
		metrics.RecordRun(string(kind), metrics.StatusFailed, elapsed)
		logger.Error("%s analysis failed: %v", kind, err)
	}
	return nil, err
}

func (s *AnalysisService) dispatch(ctx context.Context, env *analysis.Envelope, b *memory.Bundle, p Params, tm ports.TaskMonitor, logger *internal.Logger) error {
	switch env.Kind {
	case analysis.KindDescriptive:
		stat, err := s.descriptive(b, p)
		env.Statistic = stat
		return err
	case analysis.KindSetOverlap:
		result, err := s.setOverlap(b, p)
		env.Overlap = result
		return err
	case analysis.KindClusterOverlap:
		results, err := s.clusterOverlap(b, p)
		env.Clusters = results
		return err
	case analysis.KindCorrelation:
		result, err := s.correlation(b, p)
		env.Correlation = result
		return err
	case analysis.KindRegionAgreement:
		result, err := s.regionAgreement(ctx, b, p, tm, logger)
		env.Agreement = result
		return err
	case analysis.KindRegression:
		result, err := s.regression(b, p)
		env.Regression = result
		return err
	case analysis.KindOccurrence:
		result, err := s.occurrence(b, p)
		env.Occurrence = result
		return err
	}
	return fmt.Errorf("%w: %q", core.ErrUnknownAnalysis, env.Kind)
}

func (s *AnalysisService) descriptive(b *memory.Bundle, p Params) (*domainStats.Statistic, error) {
	if err := required("map", p.Map); err != nil {
		return nil, err
	}
	m, err := b.NumericMap(p.Map)
	if err != nil {
		return nil, err
	}
	var filter ports.Collection
	if p.Filter != "" {
		c, err := b.Collection(p.Filter)
		if err != nil {
			return nil, err
		}
		filter = c
	}
	layout, err := descriptive.ParseLayout(p.Layout)
	if err != nil {
		return nil, err
	}
	width := p.BinWidth
	if width == 0 {
		width = s.config.BinWidth
	}

	stat, err := descriptive.Summarize(m, filter, descriptive.HistogramOptions{BinWidth: width, Range: p.Range, Layout: layout})
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (s *AnalysisService) overlapEngine(alpha float64) *overlap.Engine {
	if alpha > 0 {
		return overlap.NewEngine(alpha)
	}
	return s.overlap
}

func (s *AnalysisService) setOverlap(b *memory.Bundle, p Params) (*domainStats.OverlapResult, error) {
	if err := required("a", p.A, "b", p.B, "universe", p.Universe); err != nil {
		return nil, err
	}
	a, err := b.Collection(p.A)
	if err != nil {
		return nil, err
	}
	other, err := b.Collection(p.B)
	if err != nil {
		return nil, err
	}
	universe, err := b.Collection(p.Universe)
	if err != nil {
		return nil, err
	}

	result, err := s.overlapEngine(p.Alpha).Compare(a, other, universe)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *AnalysisService) clusterOverlap(b *memory.Bundle, p Params) ([]domainStats.ClusterOverlap, error) {
	if err := required("partition", p.Partition, "b", p.B, "universe", p.Universe); err != nil {
		return nil, err
	}
	partition, err := b.Partition(p.Partition)
	if err != nil {
		return nil, err
	}
	target, err := b.Collection(p.B)
	if err != nil {
		return nil, err
	}
	universe, err := b.Collection(p.Universe)
	if err != nil {
		return nil, err
	}

	results, err := s.overlapEngine(p.Alpha).CompareClusters(partition, target, universe)
	if err != nil {
		return nil, err
	}
	switch p.SortBy {
	case "", "name":
	case "p-value":
		domainStats.SortClustersByPValue(results)
	default:
		return nil, fmt.Errorf("%w: unknown sort order %q", core.ErrInvalidInput, p.SortBy)
	}
	return results, nil
}

func (s *AnalysisService) correlation(b *memory.Bundle, p Params) (*domainStats.CorrelationResult, error) {
	if err := required("x", p.X, "y", p.Y); err != nil {
		return nil, err
	}
	x, err := b.NumericMap(p.X)
	if err != nil {
		return nil, err
	}
	y, err := b.NumericMap(p.Y)
	if err != nil {
		return nil, err
	}
	var filter ports.Collection
	if p.Filter != "" {
		c, err := b.Collection(p.Filter)
		if err != nil {
			return nil, err
		}
		filter = c
	}

	result, err := correlation.Correlate(x, y, filter)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *AnalysisService) regionAgreement(ctx context.Context, b *memory.Bundle, p Params, tm ports.TaskMonitor, logger *internal.Logger) (*domainStats.AgreementResult, error) {
	if err := required("prediction", p.Prediction, "answer", p.Answer); err != nil {
		return nil, err
	}
	prediction, err := b.RegionDataset(p.Prediction)
	if err != nil {
		return nil, err
	}
	answer, err := b.RegionDataset(p.Answer)
	if err != nil {
		return nil, err
	}
	sequences, err := b.SequenceScope(p.Sequences)
	if err != nil {
		return nil, err
	}

	engine := s.agreement
	if p.Workers > 0 {
		engine = agreement.NewEngine(p.Workers, s.config.Window, logger)
	}
	result, err := engine.Compare(ctx, prediction, answer, sequences, tm)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *AnalysisService) regression(b *memory.Bundle, p Params) (*domainStats.RegressionResult, error) {
	if err := required("motif", p.Motif, "sites", p.Sites, "response", p.Response); err != nil {
		return nil, err
	}
	sites, err := b.RegionDataset(p.Sites)
	if err != nil {
		return nil, err
	}
	response, err := b.NumericMap(p.Response)
	if err != nil {
		return nil, err
	}
	sequences, err := b.SequenceScope(p.Sequences)
	if err != nil {
		return nil, err
	}

	result, err := regression.FitMotifScores(p.Motif, sites, sequences, response, regression.Options{
		SkipMissing: p.SkipMissing,
		Normalize:   p.Normalize,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *AnalysisService) occurrence(b *memory.Bundle, p Params) (*domainStats.OccurrenceTally, error) {
	if err := required("categories", p.Categories, "track", p.Track); err != nil {
		return nil, err
	}
	categories, err := b.Collection(p.Categories)
	if err != nil {
		return nil, err
	}
	track, err := b.RegionDataset(p.Track)
	if err != nil {
		return nil, err
	}
	sequences, err := b.SequenceScope(p.Sequences)
	if err != nil {
		return nil, err
	}
	opts := occurrence.Options{CountUnknown: p.CountUnknown}
	if p.Within != "" {
		within, err := b.RegionDataset(p.Within)
		if err != nil {
			return nil, err
		}
		opts.Within = within
	}

	tally, err := occurrence.Count(categories.Members(), track, sequences, opts)
	if err != nil {
		return nil, err
	}
	return &tally, nil
}

// required takes name/value pairs and rejects the first empty value
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return fmt.Errorf("%w: missing parameter %q", core.ErrInvalidInput, pairs[i])
		}
	}
	return nil
}
