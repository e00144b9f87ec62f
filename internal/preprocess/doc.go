// Package preprocess holds the pure data-cleaning transforms: missing-value
// handling, deduplication, numeric scaling, text normalization and list
// restructuring. Every function returns a new slice or string and never
// mutates its input. The only source of nondeterminism is Shuffle; the seeded
// variants draw from a generator local to the call.
//
// Functions taking `any` exist for callers that hold decoded literal values
// (the CLI, recipes, the gRPC service). They reject values of the wrong shape
// with an error wrapping ErrInvalidArgument.
package preprocess
