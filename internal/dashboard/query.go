package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/KaramelBytes/wordloom/internal/chart"
	"github.com/KaramelBytes/wordloom/internal/cleaner"
	"github.com/KaramelBytes/wordloom/internal/table"
	"github.com/KaramelBytes/wordloom/internal/wordfreq"
)

// Query selects what to count and how to draw it. Zero fields take the
// session defaults, except Field which is required.
type Query struct {
	Field      string   `json:"field" validate:"required,textfield"`
	Categories []string `json:"institutions" validate:"omitempty,dive,required"`
	Kind       string   `json:"kind" validate:"omitempty,oneof=treemap scatter cloud sunburst"`
	MaxWords   int      `json:"max_words" validate:"gte=0,lte=1000"`
	ColorScale string   `json:"color_scale" validate:"omitempty,alphanum,max=32"`
	Title      string   `json:"title" validate:"max=200"`
}

// View is everything a client needs to draw one chart.
type View struct {
	Kind        chart.Kind           `json:"kind"`
	Field       string               `json:"field"`
	Figure      chart.Figure         `json:"figure"`
	Frequencies []wordfreq.Frequency `json:"frequencies"`
	// Shown is the number of ranked words, Observations the filtered rows.
	Shown        int `json:"shown"`
	Observations int `json:"observations"`
}

// Render recomputes filter, frequencies and layout for q from scratch.
func (s *Session) Render(ctx context.Context, q Query) (View, error) {
	q.Kind = strings.ToLower(strings.TrimSpace(q.Kind))
	if err := s.validate.StructCtx(ctx, q); err != nil {
		return View{}, fmt.Errorf("%w: %s", ErrInvalidQuery, describe(err))
	}
	d, err := s.Dataset()
	if err != nil {
		return View{}, err
	}

	kind := s.opts.Kind
	if q.Kind != "" {
		if kind, err = chart.ParseKind(q.Kind); err != nil {
			return View{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
	}
	maxWords := q.MaxWords
	if maxWords == 0 {
		maxWords = s.opts.MaxWords
	}

	cats := s.canonicalCategories(ctx, d, q.Categories)
	filtered := wordfreq.FilterByCategory(d, s.opts.JoinKey, wordfreq.AnyOf(cats...))
	freqs, err := s.opts.Tokenizer.ComputeFrequencies(filtered, q.Field, maxWords)
	if err != nil {
		return View{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}

	opt := s.opts.Chart
	if q.ColorScale != "" {
		opt.ColorScale = q.ColorScale
	}
	if q.Title != "" {
		opt.Title = q.Title
	}
	fig, err := chart.Build(kind, freqs, opt)
	if err != nil {
		return View{}, err
	}
	return View{
		Kind:         kind,
		Field:        q.Field,
		Figure:       fig,
		Frequencies:  freqs,
		Shown:        len(freqs),
		Observations: filtered.Len(),
	}, nil
}

// canonicalCategories runs selector values through the same standardization
// and remap the join key got at load time, so "Saga  Falabella" selects
// "saga falabella". Values still unknown are logged and kept.
func (s *Session) canonicalCategories(ctx context.Context, d table.Dataset, raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	known := make(map[string]bool)
	for _, c := range d.Distinct(s.opts.JoinKey) {
		known[c] = true
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		c := cleaner.StandardizeText(r)
		if canon, ok := s.remap[c]; ok {
			c = canon
		}
		if !known[c] {
			s.logger.WarnContext(ctx, "unknown category selected", slog.String("category", r), slog.String("column", s.opts.JoinKey))
		}
		out = append(out, c)
	}
	return out
}

func newValidator(hasField func(string) bool) *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("textfield", func(fl validator.FieldLevel) bool {
		return hasField(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// describe flattens validator errors into "field: rule" pairs.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "textfield":
			parts = append(parts, fmt.Sprintf("%s: %q is not a configured text field", fe.Field(), fe.Value()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s: must be one of %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
