// Package rng maps module-local random generators onto the
// simulation's physical RNG streams.
//
// A scenario declares num-rngs physical streams and directs modules
// onto them with assignments like
//
//	*.traci.mapper.rng-0 = 1
//
// which pins local generator 0 of every traci mapper to stream 1.
// Unmapped modules draw from stream 0. Per-stream seeds come from
// seed-<k>-mt directives. Stream selection is a pure function of the
// module path for a fixed configuration, so runs with the same seed
// reproduce identical per-module draw sequences even when unrelated
// configuration changes move other modules between streams.
package rng
