// Package aggregate provides the scaffold that turns a declarative
// transition/final/combine/serialize/deserialize tuple into a host-callable
// aggregate, mirroring aggregate_builder's #[aggregate] macro: the macro
// expands a single impl block into the several functions a SQL aggregate
// needs (transition, final, combine, serialize, deserialize) plus the
// registration metadata tying them together. Go has no such macro, so this
// package moves the same wiring to a runtime Build step: a Spec[S] declares
// the functions, Validate checks the same dependency rules the macro
// enforces at compile time, and Build produces a Declaration[S] exposing
// them uniformly.
package aggregate
