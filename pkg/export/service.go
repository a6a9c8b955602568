// Package export turns assessment payloads into downloadable Word documents.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/benjaminschreck/moralreport/pkg/docx"
	"github.com/benjaminschreck/moralreport/pkg/logging"
	"github.com/benjaminschreck/moralreport/pkg/metrics"
	"github.com/benjaminschreck/moralreport/pkg/report"
)

// ContentType is the media type of generated documents
const ContentType = docx.ContentTypeDocx

const filenameLayout = "20060102_150405"

// Filename returns the download name for a document generated at t
func Filename(t time.Time) string {
	return "Hasil_Tes_" + t.Format(filenameLayout) + ".docx"
}

// Result is a finished document
type Result struct {
	Data        []byte
	Filename    string
	ContentType string
	GeneratedAt time.Time
}

// Service builds and serializes reports. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	now       func() time.Time
	location  *time.Location
	logger    *logging.Logger
	metrics   *metrics.Manager
	spoolDir  string
	labelCase report.LabelCase
	creator   string
	serialize []docx.SerializeOption
}

// Option configures a Service
type Option func(*Service)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the zone used for the date line and the filename
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithLogger sets the service logger
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records exports and cleanup failures on m
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSpoolDir sets the directory for temporary artifacts; empty means os.TempDir
func WithSpoolDir(dir string) Option {
	return func(s *Service) {
		s.spoolDir = dir
	}
}

// WithLabelCase sets how aspect names are cased in the table
func WithLabelCase(c report.LabelCase) Option {
	return func(s *Service) {
		s.labelCase = c
	}
}

// WithCreator sets the author recorded in document properties
func WithCreator(name string) Option {
	return func(s *Service) {
		s.creator = name
	}
}

// WithSerializeOptions passes options through to docx.Serialize
func WithSerializeOptions(opts ...docx.SerializeOption) Option {
	return func(s *Service) {
		s.serialize = append(s.serialize, opts...)
	}
}

// New creates an export service
func New(opts ...Option) *Service {
	s := &Service{
		now:       time.Now,
		location:  time.Local,
		logger:    logging.GetLogger(),
		labelCase: report.LabelCapitalize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Export decodes a JSON payload and renders it
func (s *Service) Export(ctx context.Context, raw []byte) (*Result, error) {
	start := time.Now()
	r, err := report.DecodeJSON(raw)
	if err != nil {
		s.logger.WithError(err).Warn("rejecting payload")
		s.record(metrics.OutcomeInvalidPayload, start, 0)
		return nil, &Error{Kind: KindInvalidPayload, Cause: err}
	}
	return s.render(ctx, r, start)
}

// ExportReport renders an already decoded report
func (s *Service) ExportReport(ctx context.Context, r *report.Report) (*Result, error) {
	return s.render(ctx, r, time.Now())
}

func (s *Service) render(ctx context.Context, r *report.Report, start time.Time) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	generatedAt := s.now().In(s.location)
	data, err := s.produce(r, generatedAt)
	if err != nil {
		s.logger.WithError(err).Error("failed to generate document")
		s.record(metrics.OutcomeSerialization, start, 0)
		return nil, &Error{Kind: KindSerialization, Cause: err}
	}

	res := &Result{
		Data:        data,
		Filename:    Filename(generatedAt),
		ContentType: ContentType,
		GeneratedAt: generatedAt,
	}
	s.logger.WithFields(logging.Fields{
		"filename": res.Filename,
		"bytes":    len(data),
		"aspects":  aspectCount(r),
	}).Debug("document generated")
	s.record(metrics.OutcomeSuccess, start, len(data))
	return res, nil
}

// produce builds and serializes the document. A panic anywhere below it is
// turned into an error so no partial output escapes.
func (s *Service) produce(r *report.Report, generatedAt time.Time) (data []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			data = nil
			err = fmt.Errorf("panic while generating document: %v", rec)
		}
	}()

	doc := report.Build(r, generatedAt,
		report.WithLabelCase(s.labelCase),
		report.WithCreator(s.creator),
	)
	return docx.Serialize(doc, s.serialize...)
}

func (s *Service) record(outcome string, start time.Time, size int) {
	if s.metrics != nil {
		s.metrics.RecordExport(outcome, time.Since(start), size)
	}
}

func aspectCount(r *report.Report) int {
	if r == nil || r.Aspects == nil {
		return 0
	}
	return r.Aspects.Len()
}
