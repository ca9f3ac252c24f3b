package engine

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"vanet-hq/saturn/pkg/config"
	"vanet-hq/saturn/pkg/pattern"
	"vanet-hq/saturn/pkg/resource"
	"vanet-hq/saturn/pkg/rng"
	"vanet-hq/saturn/pkg/scl/ast"
	sclErrors "vanet-hq/saturn/pkg/scl/errors"
	"vanet-hq/saturn/pkg/scl/parser"
	"vanet-hq/saturn/pkg/sections"
	"vanet-hq/saturn/pkg/telemetry/metrics"
	"vanet-hq/saturn/pkg/value"
)

// Engine loads scenario files and prepares them for parameter resolution.
// One engine can load any number of scenarios; each Load returns an
// independent Scenario with its own memo table and resource cache.
type Engine struct {
	cfg       *config.EngineConfig
	logger    *slog.Logger
	collector *metrics.Collector
}

// New creates an engine. A nil cfg uses defaults, a nil logger falls back
// to slog.Default(), and a nil collector disables metric recording.
func New(cfg *config.EngineConfig, logger *slog.Logger, collector *metrics.Collector) *Engine {
	if cfg == nil {
		def := config.DefaultConfig()
		cfg = &def.Engine
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:       cfg,
		logger:    logger.With("component", "engine"),
		collector: collector,
	}
}

// LoadOptions carries per-scenario inputs: the active section, run
// parameter bindings for ${name} references, and resource resolution.
type LoadOptions struct {
	// Section selects the active section. Empty uses the configured
	// default section.
	Section string

	// RunParameters bind ${name} references, overriding any defaults
	// declared in the file.
	RunParameters map[string]string

	// RunIndex selects an element from ${name=v0,v1,...} value lists.
	RunIndex int

	// BaseDir overrides the directory relative document references
	// resolve against. Empty uses the configured resource directory,
	// falling back to the scenario file's own directory.
	BaseDir string
}

// Load parses and prepares the scenario file at path with default options.
func (e *Engine) Load(path string) (*Scenario, error) {
	return e.LoadWithOptions(path, LoadOptions{})
}

// LoadWithOptions parses and prepares the scenario file at path.
func (e *Engine) LoadWithOptions(path string, opts LoadOptions) (*Scenario, error) {
	start := time.Now()

	p := parser.NewParser().
		WithMaxFileSize(e.cfg.MaxFileSize).
		WithStrictMode(e.cfg.StrictParsing)
	doc, err := p.Parse(path)
	if err != nil {
		e.recordLoad("error", 0, start)
		return nil, err
	}

	return e.build(doc, opts, start)
}

// LoadBytes parses and prepares scenario text from memory. sourcePath is
// used for error reporting and as the fallback base for relative document
// references.
func (e *Engine) LoadBytes(data []byte, sourcePath string, opts LoadOptions) (*Scenario, error) {
	start := time.Now()

	p := parser.NewParser().
		WithMaxFileSize(e.cfg.MaxFileSize).
		WithStrictMode(e.cfg.StrictParsing)
	doc, err := p.ParseBytes(data, sourcePath)
	if err != nil {
		e.recordLoad("error", 0, start)
		return nil, err
	}

	return e.build(doc, opts, start)
}

// compiledAssignment is one pattern-keyed binding ready for matching.
type compiledAssignment struct {
	pattern *pattern.Pattern
	key     string
	raw     string
	order   int
	loc     ast.Location
}

// compiledSection holds a section's compiled assignments in declaration
// order. RNG directives are split out into the mapper instead.
type compiledSection struct {
	name        string
	assignments []compiledAssignment
}

// rawDirective is an rng-k assignment before its stream value is parsed.
type rawDirective struct {
	pattern *pattern.Pattern
	local   int
	raw     string
	order   int
	loc     ast.Location
}

// build turns a parsed document into a resolvable Scenario: it linearizes
// the section graph, compiles every assignment key, extracts RNG mapping
// directives and seeds for the active chain, and wires the resource cache.
func (e *Engine) build(doc *ast.Document, opts LoadOptions, start time.Time) (*Scenario, error) {
	graph, err := sections.Build(doc)
	if err != nil {
		e.recordLoad("error", 0, start)
		return nil, err
	}

	active := opts.Section
	if active == "" {
		active = e.cfg.DefaultSection
	}
	if active == "" {
		active = ast.GeneralSection
	}
	if !graph.Has(active) {
		e.recordLoad("error", 0, start)
		return nil, &UnknownSectionError{Name: active}
	}

	errList := sclErrors.NewErrorList()

	compiled := make(map[string]*compiledSection, len(doc.Sections))
	directives := make(map[string][]rawDirective)
	for _, sec := range doc.Sections {
		cs := &compiledSection{name: sec.Name}
		for _, a := range sec.Assignments {
			pat, cerr := pattern.Compile(a.Key)
			if cerr != nil {
				errList.AddError(sclErrors.ErrorTypeValidation,
					fmt.Sprintf("Invalid pattern %q: %v", a.Key, cerr), a.Location)
				continue
			}
			if _, leaf, ok := splitKey(a.Key); ok {
				if local, isRNG := rng.ParseDirectiveName(leaf); isRNG {
					directives[sec.Name] = append(directives[sec.Name], rawDirective{
						pattern: pat,
						local:   local,
						raw:     a.RawValue,
						order:   a.SourceOrder,
						loc:     a.Location,
					})
					continue
				}
			}
			cs.assignments = append(cs.assignments, compiledAssignment{
				pattern: pat,
				key:     a.Key,
				raw:     a.RawValue,
				order:   a.SourceOrder,
				loc:     a.Location,
			})
		}
		compiled[sec.Name] = cs
	}

	chain, _ := graph.Chain(active)

	numRngs := 1
	if o, ok := chainOption(graph, chain, "num-rngs"); ok {
		n, derr := e.parseIntDirective(o, opts)
		switch {
		case derr != nil:
			errList.Add(derr)
		case n < 1:
			errList.AddError(sclErrors.ErrorTypeValidation,
				fmt.Sprintf("num-rngs must be at least 1, got %d", n), o.Location)
		default:
			numRngs = n
		}
	}

	groups := make([][]rng.Directive, 0, len(chain))
	for _, name := range chain {
		raws := directives[name]
		if len(raws) == 0 {
			continue
		}
		group := make([]rng.Directive, 0, len(raws))
		for _, rd := range raws {
			stream, derr := e.parseIntValue(rd.raw, rd.loc, opts)
			if derr != nil {
				errList.Add(derr)
				continue
			}
			if stream < 0 || stream >= numRngs {
				errList.AddErrorWithSuggestion(sclErrors.ErrorTypeValidation,
					fmt.Sprintf("RNG stream %d is out of range: num-rngs is %d", stream, numRngs),
					rd.loc,
					fmt.Sprintf("declare num-rngs = %d or map to a stream below %d", stream+1, numRngs))
				continue
			}
			group = append(group, rng.Directive{
				Pattern:     rd.pattern,
				Local:       rd.local,
				Stream:      stream,
				SourceOrder: rd.order,
			})
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}

	seeds := make(map[int]int64)
	for _, name := range chain {
		sec := graph.Section(name)
		if sec == nil {
			continue
		}
		// Last occurrence per stream within the section.
		latest := make(map[int]*ast.Option)
		for _, o := range sec.Options {
			stream, isSeed := rng.ParseSeedName(o.Name)
			if !isSeed {
				continue
			}
			if cur := latest[stream]; cur == nil || o.SourceOrder > cur.SourceOrder {
				latest[stream] = o
			}
		}
		for stream, o := range latest {
			if _, bound := seeds[stream]; bound {
				// A more derived section already bound this stream.
				continue
			}
			if stream < 0 || stream >= numRngs {
				errList.AddErrorWithSuggestion(sclErrors.ErrorTypeValidation,
					fmt.Sprintf("%s targets stream %d but num-rngs is %d", o.Name, stream, numRngs),
					o.Location,
					fmt.Sprintf("declare num-rngs = %d or seed a stream below %d", stream+1, numRngs))
				continue
			}
			sv, derr := e.parseInt64Value(o.RawValue, o.Location, opts)
			if derr != nil {
				errList.Add(derr)
				continue
			}
			seeds[stream] = sv
		}
	}

	if errList.HasErrors() {
		for i, er := range errList.Errors {
			errList.Errors[i] = sclErrors.AddContextToError(er)
		}
		e.recordLoad("error", 0, start)
		return nil, errList
	}

	mapper, err := rng.New(numRngs, groups, seeds)
	if err != nil {
		e.recordLoad("error", 0, start)
		return nil, err
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = e.cfg.ResourceDir
	}
	if baseDir == "" && doc.Source != "" {
		baseDir = filepath.Dir(doc.Source)
	}
	resources := resource.NewCache(baseDir).WithMaxFileSize(e.cfg.MaxResourceSize)

	runParams := make(map[string]string, len(opts.RunParameters))
	for k, v := range opts.RunParameters {
		runParams[k] = v
	}

	scn := &Scenario{
		engine:    e,
		doc:       doc,
		graph:     graph,
		active:    active,
		compiled:  compiled,
		mapper:    mapper,
		resources: resources,
		runParams: runParams,
		runIndex:  opts.RunIndex,
		memo:      make(map[memoKey]*Resolution),
	}

	e.recordLoad("ok", len(doc.Sections), start)
	e.logger.Debug("scenario loaded",
		"source", doc.Source,
		"sections", len(doc.Sections),
		"active", active,
		"num_rngs", numRngs)

	return scn, nil
}

// chainOption finds the effective global directive for a chain: the first
// section in chain order that sets it wins, and within a section the last
// occurrence wins.
func chainOption(graph *sections.Graph, chain []string, name string) (*ast.Option, bool) {
	for _, sn := range chain {
		sec := graph.Section(sn)
		if sec == nil {
			continue
		}
		var found *ast.Option
		for _, o := range sec.Options {
			if o.Name == name && (found == nil || o.SourceOrder > found.SourceOrder) {
				found = o
			}
		}
		if found != nil {
			return found, true
		}
	}
	return nil, false
}

// parseIntDirective substitutes and parses a global directive as an int.
func (e *Engine) parseIntDirective(o *ast.Option, opts LoadOptions) (int, *sclErrors.Error) {
	return e.parseIntValue(o.RawValue, o.Location, opts)
}

// parseIntValue substitutes variables in raw and parses the result as an
// int, reporting failures against loc.
func (e *Engine) parseIntValue(raw string, loc ast.Location, opts LoadOptions) (int, *sclErrors.Error) {
	sub, err := value.Substitute(raw, opts.RunParameters, opts.RunIndex)
	if err != nil {
		return 0, &sclErrors.Error{
			Type:     sclErrors.ErrorTypeValidation,
			Message:  fmt.Sprintf("Cannot expand %q: %v", raw, err),
			Location: loc,
		}
	}
	n, err := strconv.Atoi(strings.TrimSpace(sub))
	if err != nil {
		return 0, &sclErrors.Error{
			Type:     sclErrors.ErrorTypeValidation,
			Message:  fmt.Sprintf("Expected an integer, got %q", sub),
			Location: loc,
		}
	}
	return n, nil
}

// parseInt64Value is parseIntValue for 64-bit seeds.
func (e *Engine) parseInt64Value(raw string, loc ast.Location, opts LoadOptions) (int64, *sclErrors.Error) {
	sub, err := value.Substitute(raw, opts.RunParameters, opts.RunIndex)
	if err != nil {
		return 0, &sclErrors.Error{
			Type:     sclErrors.ErrorTypeValidation,
			Message:  fmt.Sprintf("Cannot expand %q: %v", raw, err),
			Location: loc,
		}
	}
	n, err := strconv.ParseInt(strings.TrimSpace(sub), 10, 64)
	if err != nil {
		return 0, &sclErrors.Error{
			Type:     sclErrors.ErrorTypeValidation,
			Message:  fmt.Sprintf("Expected an integer seed, got %q", sub),
			Location: loc,
		}
	}
	return n, nil
}

// recordLoad reports a load attempt to the collector, if one is wired.
func (e *Engine) recordLoad(status string, sections int, start time.Time) {
	if e.collector == nil {
		return
	}
	e.collector.RecordScenarioLoad(status, sections, time.Since(start))
}
