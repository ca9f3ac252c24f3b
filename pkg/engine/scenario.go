package engine

import (
	"sync"
	"time"

	"vanet-hq/saturn/pkg/modpath"
	"vanet-hq/saturn/pkg/pattern"
	"vanet-hq/saturn/pkg/resource"
	"vanet-hq/saturn/pkg/rng"
	"vanet-hq/saturn/pkg/scl/ast"
	"vanet-hq/saturn/pkg/sections"
	"vanet-hq/saturn/pkg/value"
)

// Scenario is a loaded scenario file ready for parameter resolution. It is
// safe for concurrent use: resolution reads immutable compiled state and
// memoizes results behind a lock.
type Scenario struct {
	engine    *Engine
	doc       *ast.Document
	graph     *sections.Graph
	active    string
	compiled  map[string]*compiledSection
	mapper    *rng.Mapper
	resources *resource.Cache
	runParams map[string]string
	runIndex  int

	mu   sync.RWMutex
	memo map[memoKey]*Resolution
}

// memoKey identifies one resolution query. The requested kind and
// dimension are part of the key: the same assignment can parse differently
// under different type expectations.
type memoKey struct {
	section string
	path    string
	param   string
	kind    value.Kind
	dim     value.Dimension
}

// Resolution is a resolved parameter value together with where it came
// from, for diagnostics and lint explanations.
type Resolution struct {
	Value    value.Value
	Section  string       // Section whose assignment matched
	Key      string       // The matching assignment key
	Location ast.Location // Where the assignment lives
}

// Resolve returns the value bound to the parameter at the given module
// path in the active section.
func (s *Scenario) Resolve(path modpath.Path, param string) (value.Value, error) {
	return s.ResolveInAs(s.active, path, param, value.KindAny, value.DimNone)
}

// ResolveAs is Resolve with a type expectation: the matched value must
// parse as the given kind, and quantities must carry the given dimension.
func (s *Scenario) ResolveAs(path modpath.Path, param string, kind value.Kind, dim value.Dimension) (value.Value, error) {
	return s.ResolveInAs(s.active, path, param, kind, dim)
}

// ResolveIn resolves against an explicit section instead of the active one.
func (s *Scenario) ResolveIn(section string, path modpath.Path, param string) (value.Value, error) {
	return s.ResolveInAs(section, path, param, value.KindAny, value.DimNone)
}

// ResolveInAs resolves against an explicit section with a type expectation.
func (s *Scenario) ResolveInAs(section string, path modpath.Path, param string, kind value.Kind, dim value.Dimension) (value.Value, error) {
	res, err := s.resolveIn(section, path, param, kind, dim)
	if err != nil {
		return value.Value{}, err
	}
	return res.Value, nil
}

// Explain resolves in the active section and reports which assignment won.
func (s *Scenario) Explain(path modpath.Path, param string) (*Resolution, error) {
	return s.resolveIn(s.active, path, param, value.KindAny, value.DimNone)
}

// ExplainIn is Explain against an explicit section.
func (s *Scenario) ExplainIn(section string, path modpath.Path, param string) (*Resolution, error) {
	return s.resolveIn(section, path, param, value.KindAny, value.DimNone)
}

// resolveIn walks the section chain most-derived-first. The first section
// containing any matching assignment decides the value; within that
// section the most specific pattern wins, and equal specificity goes to
// the assignment declared last.
func (s *Scenario) resolveIn(section string, path modpath.Path, param string, kind value.Kind, dim value.Dimension) (*Resolution, error) {
	start := time.Now()

	chain, ok := s.graph.Chain(section)
	if !ok {
		return nil, &UnknownSectionError{Name: section}
	}

	key := memoKey{section: section, path: path.String(), param: param, kind: kind, dim: dim}
	s.mu.RLock()
	res, hit := s.memo[key]
	s.mu.RUnlock()
	if hit {
		if s.engine.collector != nil {
			s.engine.collector.RecordMemoHit()
		}
		return res, nil
	}

	var best *compiledAssignment
	var bestSection string
	for _, name := range chain {
		cs := s.compiled[name]
		if cs == nil {
			continue
		}
		for i := range cs.assignments {
			ca := &cs.assignments[i]
			if !ca.pattern.Matches(path, param) {
				continue
			}
			if best == nil {
				best, bestSection = ca, name
				continue
			}
			cmp := pattern.Compare(ca.pattern, best.pattern)
			if cmp > 0 || (cmp == 0 && ca.order > best.order) {
				best, bestSection = ca, name
			}
		}
		if best != nil {
			break
		}
	}

	if best == nil {
		s.recordResolution(param, "unbound", start)
		return nil, &ParameterUnboundError{Path: path.String(), Param: param, Section: section}
	}

	raw, err := value.Substitute(best.raw, s.runParams, s.runIndex)
	if err != nil {
		s.recordResolution(param, "error", start)
		return nil, &ValueError{Path: path.String(), Param: param, Location: best.loc, Err: err}
	}
	v, err := value.ParseAs(raw, kind, dim)
	if err != nil {
		s.recordResolution(param, "error", start)
		return nil, &ValueError{Path: path.String(), Param: param, Location: best.loc, Err: err}
	}

	res = &Resolution{Value: v, Section: bestSection, Key: best.key, Location: best.loc}

	s.mu.Lock()
	if existing, ok := s.memo[key]; ok {
		res = existing
	} else {
		s.memo[key] = res
	}
	s.mu.Unlock()

	s.recordResolution(param, "matched", start)
	return res, nil
}

func (s *Scenario) recordResolution(param, outcome string, start time.Time) {
	if s.engine.collector == nil {
		return
	}
	s.engine.collector.RecordResolution(param, outcome, time.Since(start))
}

// directive returns the substituted value of a global directive in the
// active chain along with the option it came from.
func (s *Scenario) directive(name string) (string, *ast.Option, error) {
	chain, _ := s.graph.Chain(s.active)
	o, ok := chainOption(s.graph, chain, name)
	if !ok {
		return "", nil, &DirectiveUnboundError{Name: name, Section: s.active}
	}
	sub, err := value.Substitute(o.RawValue, s.runParams, s.runIndex)
	if err != nil {
		return "", nil, &DirectiveError{Name: name, Location: o.Location, Err: err}
	}
	return sub, o, nil
}

// GlobalOption returns the substituted value of a global directive, e.g.
// "network" or "sim-time-limit", resolved through the active chain.
func (s *Scenario) GlobalOption(name string) (string, error) {
	raw, _, err := s.directive(name)
	return raw, err
}

// Network returns the network type name the scenario instantiates.
func (s *Scenario) Network() (string, error) {
	raw, o, err := s.directive("network")
	if err != nil {
		return "", err
	}
	v, err := value.ParseAs(raw, value.KindString, value.DimNone)
	if err != nil {
		return "", &DirectiveError{Name: "network", Location: o.Location, Err: err}
	}
	return v.Str, nil
}

// SimTimeLimit returns the simulation time limit as a time quantity.
func (s *Scenario) SimTimeLimit() (value.Quantity, error) {
	raw, o, err := s.directive("sim-time-limit")
	if err != nil {
		return value.Quantity{}, err
	}
	v, err := value.ParseAs(raw, value.KindQuantity, value.DimTime)
	if err != nil {
		return value.Quantity{}, &DirectiveError{Name: "sim-time-limit", Location: o.Location, Err: err}
	}
	return v.Quantity, nil
}

// NumRNGs returns the number of global RNG streams the scenario declares.
func (s *Scenario) NumRNGs() int {
	return s.mapper.NumRngs()
}

// Seed returns the configured seed for a global stream, if one is set.
func (s *Scenario) Seed(stream int) (int64, bool) {
	return s.mapper.Seed(stream)
}

// StreamFor returns the global RNG stream for a module's default RNG.
func (s *Scenario) StreamFor(path modpath.Path) int {
	return s.mapper.StreamFor(path)
}

// StreamForLocal returns the global RNG stream for a module's local RNG
// index.
func (s *Scenario) StreamForLocal(path modpath.Path, local int) int {
	return s.mapper.StreamForLocal(path, local)
}

// Document loads the external document behind a reference through the
// scenario's resource cache. Repeated loads of the same file return the
// identical instance.
func (s *Scenario) Document(ref value.DocumentRef) (*resource.Document, error) {
	doc, cached, err := s.resources.LoadInfo(ref)
	if c := s.engine.collector; c != nil {
		switch {
		case err != nil:
			c.RecordResourceLoad(string(ref.Format), "error", 0)
		case cached:
			c.RecordResourceCacheHit()
		default:
			c.RecordResourceLoad(string(ref.Format), "ok", doc.Size)
		}
	}
	return doc, err
}

// ActiveSection returns the section resolution defaults to.
func (s *Scenario) ActiveSection() string {
	return s.active
}

// Sections returns all section names in declaration order.
func (s *Scenario) Sections() []string {
	return s.graph.Names()
}

// Chain returns the linearized ancestor chain for a section, most-derived
// first.
func (s *Scenario) Chain(section string) ([]string, error) {
	chain, ok := s.graph.Chain(section)
	if !ok {
		return nil, &UnknownSectionError{Name: section}
	}
	return chain, nil
}

// Source returns the path the scenario was loaded from, or "" for
// in-memory scenarios.
func (s *Scenario) Source() string {
	return s.doc.Source
}
