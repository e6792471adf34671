// Package format names the physical encodings a serialization tree can be
// written in.
//
// # Usage
//
//	f, err := format.ParseFormat("json")
//	name := "game" + f.Suffix() // "game.json"
//
// # Related Packages
//
//   - github.com/gdevelop/gdser/parse - Parse bytes to a tree
//   - github.com/gdevelop/gdser/encode - Encode a tree to bytes
package format
