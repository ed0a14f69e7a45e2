package cleaner

// Plan names the columns the standard load pipeline touches. Empty fields
// skip their step.
type Plan struct {
	DatetimeColumns  []string
	DatetimeFormat   string
	CategoryColumns  []string
	CategoryFallback string
	// SentinelWords are spellings of "no value" in the join key, e.g. "None".
	SentinelWords []string
	NestedColumns []string
	Unquote       bool
	// RecordColumns hold lists of records whose RecordDateFields are
	// datetimes, e.g. fecha_inicio_form.
	RecordColumns    []string
	RecordDateFields []string
	BooleanColumns   []string
	FloatColumns     []string
	// EmojiColumns are free-text columns stripped of emoji before analysis.
	EmojiColumns []string
	JoinKey      string
	JoinKeyRemap map[string]string
	// KeywordColumn is remapped to its generalized label through KeywordRemap,
	// and KeywordListColumn is kept consistent with it.
	KeywordColumn     string
	KeywordListColumn string
	KeywordRemap      map[string]string
	// Validate appends type and membership checks at the end.
	Validate bool
}

// DefaultPlan mirrors the dashboard dataset: institution, Published,
// keywords, main_keyword and Post.
func DefaultPlan() Plan {
	return Plan{
		DatetimeColumns:   []string{"Published"},
		CategoryColumns:   []string{"institution"},
		CategoryFallback:  DefaultCategoryFallback,
		SentinelWords:     []string{"none"},
		NestedColumns:     []string{"keywords"},
		Unquote:           true,
		JoinKey:           "institution",
		JoinKeyRemap:      DefaultInstitutionRemap,
		KeywordColumn:     "main_keyword",
		KeywordListColumn: "keywords",
	}
}

// Build assembles the pipeline for p in contract order.
func (c *Cleaner) Build(p Plan) Pipeline {
	steps := Pipeline{c.NormalizeNulls()}
	if p.JoinKey != "" && len(p.SentinelWords) > 0 {
		steps = append(steps, c.ClearSentinelText(p.JoinKey, p.SentinelWords...))
	}
	if len(p.EmojiColumns) > 0 {
		steps = append(steps, c.RemoveEmojis(p.EmojiColumns))
	}
	if len(p.DatetimeColumns) > 0 {
		steps = append(steps, c.ParseDatetimes(p.DatetimeColumns, p.DatetimeFormat))
	}
	if len(p.CategoryColumns) > 0 {
		fallback := p.CategoryFallback
		if fallback == "" {
			fallback = DefaultCategoryFallback
		}
		steps = append(steps, c.ImputeCategory(p.CategoryColumns, fallback))
	}
	if len(p.NestedColumns) > 0 {
		steps = append(steps, c.ParseNestedObjects(p.NestedColumns, p.Unquote))
	}
	if len(p.RecordColumns) > 0 {
		steps = append(steps, c.ParseDatetimeRecords(p.RecordColumns, p.RecordDateFields))
	}
	if len(p.BooleanColumns) > 0 {
		steps = append(steps, c.ParseBooleans(p.BooleanColumns))
	}
	if len(p.FloatColumns) > 0 {
		steps = append(steps, c.ParseFloats(p.FloatColumns))
	}
	if p.JoinKey != "" {
		steps = append(steps, c.StandardizeJoinKey(p.JoinKey))
		if len(p.JoinKeyRemap) > 0 {
			steps = append(steps, c.RemapCategories(p.JoinKey, StandardizeKeys(p.JoinKeyRemap)))
		}
	}
	if p.KeywordColumn != "" && len(p.KeywordRemap) > 0 {
		steps = append(steps, c.RemapCategories(p.KeywordColumn, p.KeywordRemap))
		if p.KeywordListColumn != "" {
			steps = append(steps, c.EnsureListContains(p.KeywordListColumn, p.KeywordColumn))
		}
	}
	if p.Validate {
		if p.JoinKey != "" {
			steps = append(steps, c.ValidateStrings(p.JoinKey, true))
		}
		if p.KeywordListColumn != "" {
			steps = append(steps, c.ValidateStringLists(p.KeywordListColumn))
			if p.KeywordColumn != "" {
				steps = append(steps, c.ValidateMembership(p.KeywordColumn, p.KeywordListColumn))
			}
		}
	}
	return steps
}
