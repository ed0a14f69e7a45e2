// Package dashboard holds the loaded dataset for one session and answers
// word-cloud queries against it.
//
// A Session starts Uninitialized, moves to Loading while Load runs, and ends
// in Ready or Failed. Load runs at most once. Readers only ever see the
// cleaned dataset, never a partially built one.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/KaramelBytes/wordloom/internal/chart"
	"github.com/KaramelBytes/wordloom/internal/cleaner"
	"github.com/KaramelBytes/wordloom/internal/table"
	"github.com/KaramelBytes/wordloom/internal/wordfreq"
)

var (
	// ErrNotLoaded is returned while the session has no dataset yet.
	ErrNotLoaded = errors.New("dataset not loaded")
	// ErrInvalidQuery wraps query validation failures.
	ErrInvalidQuery = errors.New("invalid query")
)

// Phase is the load state of a session.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Source produces the raw dataset, e.g. by reading a CSV file.
type Source func(ctx context.Context) (table.Dataset, error)

// Field is a text field offered for word counting.
type Field struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Options configures a Session.
type Options struct {
	Cleaner *cleaner.Cleaner
	Plan    cleaner.Plan
	// JoinKey is the category column used by filters; defaults to Plan.JoinKey.
	JoinKey   string
	Fields    []Field
	Tokenizer wordfreq.Tokenizer
	MaxWords  int
	Kind      chart.Kind
	Chart     chart.Options
	Logger    *slog.Logger
}

// Status is a snapshot of the session state.
type Status struct {
	Phase    string    `json:"phase"`
	LoadID   string    `json:"load_id,omitempty"`
	Rows     int       `json:"rows"`
	Warnings int       `json:"warnings"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Session is safe for concurrent readers.
type Session struct {
	opts     Options
	pipeline cleaner.Pipeline
	remap    map[string]string
	validate *validator.Validate
	logger   *slog.Logger

	once sync.Once
	mu   sync.RWMutex

	phase    Phase
	loadID   string
	data     table.Dataset
	report   *cleaner.Report
	err      error
	loadedAt time.Time
}

// NewSession builds an Uninitialized session.
func NewSession(opt Options) *Session {
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.Cleaner == nil {
		opt.Cleaner = cleaner.New(cleaner.Options{Logger: opt.Logger})
	}
	if opt.JoinKey == "" {
		opt.JoinKey = opt.Plan.JoinKey
	}
	if opt.MaxWords <= 0 {
		opt.MaxWords = wordfreq.DefaultMaxWords
	}
	if opt.Kind == "" {
		opt.Kind = chart.Treemap
	}
	s := &Session{
		opts:     opt,
		pipeline: opt.Cleaner.Build(opt.Plan),
		remap:    cleaner.StandardizeKeys(opt.Plan.JoinKeyRemap),
		logger:   opt.Logger.With(slog.String("component", "dashboard")),
	}
	s.validate = newValidator(s.hasField)
	return s
}

// Load fetches and cleans the dataset. Only the first call does any work;
// later calls return the first call's outcome.
func (s *Session) Load(ctx context.Context, src Source) error {
	s.once.Do(func() {
		id := uuid.NewString()
		s.mu.Lock()
		s.phase = PhaseLoading
		s.loadID = id
		s.mu.Unlock()

		log := s.logger.With(slog.String("load_id", id))
		log.Info("loading dataset")
		start := time.Now()

		data, rep, err := s.load(ctx, src)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			s.phase = PhaseFailed
			s.err = err
			log.Error("dataset load failed", slog.String("error", err.Error()))
			return
		}
		s.phase = PhaseReady
		s.data = data
		s.report = rep
		s.loadedAt = time.Now()
		log.Info("dataset ready",
			slog.Int("rows", data.Len()),
			slog.Int("warnings", len(rep.Warnings)),
			slog.Duration("took", time.Since(start)),
		)
	})
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Session) load(ctx context.Context, src Source) (table.Dataset, *cleaner.Report, error) {
	raw, err := src(ctx)
	if err != nil {
		return table.Dataset{}, nil, fmt.Errorf("load source: %w", err)
	}
	out, rep, err := s.pipeline.Run(ctx, raw)
	if err != nil {
		return table.Dataset{}, nil, fmt.Errorf("clean dataset: %w", err)
	}
	return out, rep, nil
}

// Phase returns the current load phase.
func (s *Session) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Status returns a snapshot for health reporting.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Status{Phase: s.phase.String(), LoadID: s.loadID, Rows: s.data.Len(), LoadedAt: s.loadedAt}
	if s.report != nil {
		st.Warnings = len(s.report.Warnings)
	}
	if s.err != nil {
		st.Error = s.err.Error()
	}
	return st
}

// Dataset returns the cleaned dataset. Before Ready it returns ErrNotLoaded,
// after a failed load the load error.
func (s *Session) Dataset() (table.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch s.phase {
	case PhaseReady:
		return s.data, nil
	case PhaseFailed:
		return table.Dataset{}, s.err
	default:
		return table.Dataset{}, ErrNotLoaded
	}
}

// Report returns the cleaning report of a successful load, or nil.
func (s *Session) Report() *cleaner.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// Categories returns the distinct join-key values, sorted.
func (s *Session) Categories() ([]string, error) {
	d, err := s.Dataset()
	if err != nil {
		return nil, err
	}
	return d.Distinct(s.opts.JoinKey), nil
}

// Fields returns the configured text fields.
func (s *Session) Fields() []Field {
	return append([]Field(nil), s.opts.Fields...)
}

func (s *Session) hasField(name string) bool {
	for _, f := range s.opts.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}
