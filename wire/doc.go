// Package wire holds the layout of the binary tree format and the
// primitives used to read and write it.
//
// A payload is a header followed by one node:
//
//	u32 Magic ("GDBS"), u32 Version
//	node:
//	  u8  NodeElement
//	  own value: u8 ValueUndefined | u8 type tag + scalar
//	  u32 attribute count, then (string name, u8 type tag + scalar) pairs
//	  u8  is array, string array tag
//	  u32 child count, then (string name, node) pairs
//
// Integers are little endian, Int scalars are 64 bit, Double scalars are
// IEEE 754 bits and strings are a u32 byte length followed by UTF-8 bytes.
//
// Payloads may be wrapped in a zstd frame, see [Compress].
package wire
