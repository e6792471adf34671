// Package parse reads serialization trees from JSON, XML, YAML or the
// binary wire format.
//
// # Usage
//
//	// format detected from the content
//	e, err := parse.Parse(data)
//
//	// reject malformed JSON instead of tolerating it
//	e, err = parse.Parse(data, parse.ParseJSON(), parse.ParseStrict())
//
// JSON parsing is tolerant by default: blank and malformed documents both
// give an empty tree and no error, and data after the first value is
// ignored. Binary parsing is always strict and reports bad magic, bad
// version, unknown tags and truncation as errors without returning a tree.
// Input wrapped in a zstd frame is unwrapped first whatever the format.
//
// Parsers never set array mode. Array items are unnamed children and the
// reader decides with ConsiderAsArrayOf how to interpret them.
//
// # Related Packages
//
//   - github.com/gdevelop/gdser/sertree - the tree model
//   - github.com/gdevelop/gdser/encode - the reverse direction
package parse
