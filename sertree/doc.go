// Package sertree provides the serialization tree every persisted entity is
// written to and read from.
//
// # Overview
//
// A tree is made of Elements. An Element holds
//
//   - an optional own Value (a scalar),
//   - attributes: named Values, unique by name, kept in insertion order,
//   - children: an ordered list of (name, *Element) pairs whose names may
//     repeat.
//
// Entities build a tree with AddChild, SetAttribute and SetValue, and read it
// back with Child, Item and the typed attribute getters. The tree itself has
// no notion of a file format: the encode and parse packages convert it to and
// from JSON, XML, YAML and a compact binary encoding.
//
// # Values
//
// A Value is Undefined (raw, not yet typed text, as read from XML), Boolean,
// String, Int or Double. Every getter coerces:
//
//	FromString("42").Int()     // 42
//	FromString("false").Bool() // false
//	FromString("").Bool()      // true: only "false" is false
//	FromDouble(2.5).Int()      // 2
//
// # Arrays
//
// An Element marked with ConsiderAsArrayOf("layout") is a homogeneous list.
// Children named "layout", children with an empty name (as produced by the
// JSON parser) and children named after the deprecated tag are all members.
// Adding a child with another name renames it to the tag and logs a warning.
//
// # Compatibility lookups
//
// Files written by older versions use other names. Every getter takes
// deprecated names:
//
//	name := e.StringAttribute("name", "", "Nom")
//
// tries the attribute "name", then the attribute "Nom", then a child "name"
// or "Nom" that carries a value, then the default.
//
// # Tolerance
//
// Lookups never panic and never return nil. A missing child or out of range
// index is logged (see SetLogger) and answered with a new empty Element, so
// hand edited and partially corrupted files load with defaulted fields.
//
// # Thread Safety
//
// Trees are not safe for concurrent mutation. Distinct trees may be used from
// different goroutines freely.
package sertree
