package logging

import (
	"context"
	"strconv"
)

// Context keys for common log fields.
type contextKey string

const (
	// ScenarioKey is the context key for scenario file paths.
	ScenarioKey contextKey = "scenario"

	// SectionKey is the context key for the active section name.
	SectionKey contextKey = "section"

	// RunIndexKey is the context key for campaign run indexes.
	RunIndexKey contextKey = "run_index"

	// StudyKey is the context key for study identifiers.
	StudyKey contextKey = "study"
)

// WithScenario adds a scenario path to the context.
func WithScenario(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, ScenarioKey, path)
}

// GetScenario retrieves the scenario path from the context.
func GetScenario(ctx context.Context) string {
	if path, ok := ctx.Value(ScenarioKey).(string); ok {
		return path
	}
	return ""
}

// WithSection adds the active section name to the context.
func WithSection(ctx context.Context, section string) context.Context {
	return context.WithValue(ctx, SectionKey, section)
}

// GetSection retrieves the active section name from the context.
func GetSection(ctx context.Context) string {
	if section, ok := ctx.Value(SectionKey).(string); ok {
		return section
	}
	return ""
}

// WithRunIndex adds a campaign run index to the context.
func WithRunIndex(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, RunIndexKey, index)
}

// GetRunIndex retrieves the campaign run index from the context.
// It returns -1 if no run index is set.
func GetRunIndex(ctx context.Context) int {
	if index, ok := ctx.Value(RunIndexKey).(int); ok {
		return index
	}
	return -1
}

// WithStudy adds a study identifier to the context.
func WithStudy(ctx context.Context, study string) context.Context {
	return context.WithValue(ctx, StudyKey, study)
}

// GetStudy retrieves the study identifier from the context.
func GetStudy(ctx context.Context) string {
	if study, ok := ctx.Value(StudyKey).(string); ok {
		return study
	}
	return ""
}

// extractContextFields extracts known log fields from the context as
// alternating key/value args for slog.
func extractContextFields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}

	var fields []any

	if scenario := GetScenario(ctx); scenario != "" {
		fields = append(fields, "scenario", scenario)
	}
	if section := GetSection(ctx); section != "" {
		fields = append(fields, "section", section)
	}
	if index := GetRunIndex(ctx); index >= 0 {
		fields = append(fields, "run_index", strconv.Itoa(index))
	}
	if study := GetStudy(ctx); study != "" {
		fields = append(fields, "study", study)
	}

	return fields
}
