// Package engine turns parsed scenario files into resolvable parameter
// spaces.
//
// An Engine wires the parser, section graph, pattern matcher, RNG stream
// mapper, and resource cache together. Loading a scenario compiles every
// assignment key once; resolution afterwards is a walk over compiled
// patterns with memoized results.
//
//	eng := engine.New(nil, nil, nil)
//	scn, err := eng.Load("scenarios/urban.ini")
//	if err != nil {
//		return err
//	}
//
//	path := modpath.MustParse("scenario.node[3].nic")
//	v, err := scn.ResolveAs(path, "txPower", value.KindQuantity, value.DimPower)
//
// # Precedence
//
// A parameter query walks the active section's chain most-derived-first.
// The first section containing any matching assignment decides the value:
// a broad pattern in a derived section shadows a more specific one in a
// base section. Within the deciding section the most specific pattern
// wins, and among equally specific patterns the one declared last wins.
//
// # Run expansion
//
// ${name=default} references are expanded at resolution time from the
// LoadOptions run parameters and run index, so one file serves a whole
// campaign of runs.
package engine
