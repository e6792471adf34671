// Package encode writes serialization trees as JSON, XML, YAML or the
// binary wire format.
//
// # Usage
//
//	e := sertree.New()
//	e.SetStringAttribute("name", "Hero")
//	e.SetIntAttribute("hp", 100)
//
//	// compact JSON: {"name": "Hero","hp": 100}
//	err := encode.Encode(e, os.Stdout)
//
//	// indented XML under a <project> root
//	err = encode.Encode(e, os.Stdout,
//	    encode.EncodeFormat(format.XMLFormat), encode.EncodeIndent(2))
//
// JSON output follows the tree model: an element with an own value is a
// scalar, an array element is a list of its children and any other element
// is an object holding its attributes then its children. Attributes of an
// array element have no place in that output and are dropped with a
// warning.
//
// # Related Packages
//
//   - github.com/gdevelop/gdser/sertree - the tree model
//   - github.com/gdevelop/gdser/parse - the reverse direction
package encode
