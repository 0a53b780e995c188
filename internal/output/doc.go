// Package output gives sweepy's analysis report one deterministic JSON
// shape, independent of map iteration order or which order a report's
// slices were appended in.
//
// # Ordering
//
// SortByTwoFields stably sorts a slice of structs by two named string
// fields applied in order, so ties keep their original relative order
// across runs. usage.BuildReport uses it to sort unusedExports by
// (File, Name).
//
// # JSON encoding
//
// DeterministicEncodeIndented normalizes a value before marshaling it:
// struct fields are re-keyed by their JSON tag into alphabetical order
// instead of declaration order, and a nil slice encodes as [] instead
// of null, so the same report always serializes to the same bytes.
package output
