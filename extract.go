package ocrtable

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config controls table reconstruction.
type Config struct {
	// RowThresholdFactor multiplies the median header height to give the largest
	// vertical-center gap between consecutive detections of one row (default: 1.2)
	RowThresholdFactor float64

	// SortHeadersByPosition orders columns left to right by header center instead of
	// the caller's label order (default: false)
	SortHeadersByPosition bool

	// Renderer turns the before and after detections into text (default: LineRenderer)
	Renderer MarkdownRenderer

	// Logger receives warnings about empty input and unmatched headers
	// (default: the standard logrus logger)
	Logger logrus.FieldLogger

	// MaxConcurrency bounds the pages reconstructed at once by ExtractPages.
	// Zero or less means one worker per page (default: 4)
	MaxConcurrency int

	// EnableMetricsLogging logs per-page timing and totals from ExtractPages (default: false)
	EnableMetricsLogging bool
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() Config {
	return Config{
		RowThresholdFactor:    DefaultRowThresholdFactor,
		SortHeadersByPosition: false,
		Renderer:              DefaultLineRenderer(),
		Logger:                logrus.StandardLogger(),
		MaxConcurrency:        4,
	}
}

// Option adjusts a Config.
type Option func(*Config)

// WithRowThresholdFactor sets the row gap multiplier.
func WithRowThresholdFactor(factor float64) Option {
	return func(c *Config) { c.RowThresholdFactor = factor }
}

// WithHeaderSort enables or disables left-to-right header sorting.
func WithHeaderSort(enabled bool) Option {
	return func(c *Config) { c.SortHeadersByPosition = enabled }
}

// WithRenderer sets the renderer used for before and after text.
func WithRenderer(r MarkdownRenderer) Option {
	return func(c *Config) { c.Renderer = r }
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Config) { c.Logger = l }
}

// Extractor rebuilds tables from OCR detections. It holds no per-call state and is
// safe for concurrent use.
type Extractor struct {
	config Config
}

// NewExtractor creates an extractor, filling unset config fields with defaults.
func NewExtractor(config Config) *Extractor {
	defaults := DefaultConfig()
	if config.RowThresholdFactor <= 0 {
		config.RowThresholdFactor = defaults.RowThresholdFactor
	}
	if config.Renderer == nil {
		config.Renderer = defaults.Renderer
	}
	if config.Logger == nil {
		config.Logger = defaults.Logger
	}
	return &Extractor{config: config}
}

// newExtractorWithOptions applies options on top of the default config.
func newExtractorWithOptions(opts []Option) *Extractor {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return NewExtractor(config)
}

// Config returns the extractor configuration.
func (e *Extractor) Config() Config {
	return e.config
}

// layout is the geometry shared by both entry points.
type layout struct {
	headers HeaderSet
	columns []Column
	rows    []Row
}

// analyze resolves the headers and clusters the body below them.
func (e *Extractor) analyze(detections []Detection, labels []string) (*layout, error) {
	if len(detections) == 0 || len(labels) == 0 {
		return nil, ErrMissingInput
	}

	headers, err := ResolveHeaders(detections, labels)
	if err != nil {
		return nil, err
	}
	if e.config.SortHeadersByPosition {
		headers = headers.SortedByPosition()
	}

	threshold := headers.MedianHeight() * e.config.RowThresholdFactor
	rows := ClusterRows(bodyMembers(detections, headers), threshold)

	return &layout{
		headers: headers,
		columns: BuildColumns(headers),
		rows:    rows,
	}, nil
}

// TryExtractTable is ExtractTable that also reports why the table is empty.
// The returned error is ErrMissingInput or wraps ErrHeaderNotFound.
func (e *Extractor) TryExtractTable(detections []Detection, labels []string) ([]TableRow, error) {
	l, err := e.analyze(detections, labels)
	if err != nil {
		return nil, err
	}
	return BuildTable(l.rows, l.columns), nil
}

// TryExtractDocument is ExtractDocument that also reports why the document is empty.
func (e *Extractor) TryExtractDocument(detections []Detection, labels []string) (Document, error) {
	l, err := e.analyze(detections, labels)
	if err != nil {
		return Document{}, err
	}
	return partitionDocument(detections, l.headers, l.columns, l.rows, e.config.Renderer), nil
}

// ExtractTable rebuilds the table under the given header labels.
// Labels must be supplied left to right unless SortHeadersByPosition is set.
// It returns nil when input is missing or any label is not found.
func (e *Extractor) ExtractTable(detections []Detection, labels []string) []TableRow {
	table, err := e.TryExtractTable(detections, labels)
	if err != nil {
		e.warn(err, labels)
		return nil
	}
	return table
}

// ExtractDocument rebuilds the table and the text before and after it.
// It returns the zero Document when input is missing or any label is not found.
func (e *Extractor) ExtractDocument(detections []Detection, labels []string) Document {
	doc, err := e.TryExtractDocument(detections, labels)
	if err != nil {
		e.warn(err, labels)
		return Document{}
	}
	return doc
}

func (e *Extractor) warn(err error, labels []string) {
	logger := e.config.Logger.WithField("headers", labels)
	if errors.Is(err, ErrHeaderNotFound) {
		logger.WithError(err).Warn("Header not found, returning empty table")
		return
	}
	logger.Warn("Detections or headers are empty")
}

// ExtractTable rebuilds the table under the given header labels with default settings.
func ExtractTable(detections []Detection, labels []string, opts ...Option) []TableRow {
	return newExtractorWithOptions(opts).ExtractTable(detections, labels)
}

// ExtractDocument rebuilds the table and its surrounding text with default settings.
func ExtractDocument(detections []Detection, labels []string, opts ...Option) Document {
	return newExtractorWithOptions(opts).ExtractDocument(detections, labels)
}
