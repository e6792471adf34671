package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	Magic   uint32 = 0x47444253
	Version uint32 = 1

	HeaderSize = 8

	// MaxDepth bounds element nesting when decoding.
	MaxDepth = 1000
)

// NodeType tags a node or a scalar in the payload.
type NodeType uint8

const (
	NodeElement NodeType = iota + 1
	ValueUndefined
	ValueBool
	ValueInt
	ValueDouble
	ValueString
)

func (t NodeType) String() string {
	switch t {
	case NodeElement:
		return "Element"
	case ValueUndefined:
		return "Undefined"
	case ValueBool:
		return "Bool"
	case ValueInt:
		return "Int"
	case ValueDouble:
		return "Double"
	case ValueString:
		return "String"
	default:
		return fmt.Sprintf("NodeType(%d)", uint8(t))
	}
}

// IsScalar reports whether t tags a scalar value.
func (t NodeType) IsScalar() bool {
	return t >= ValueBool && t <= ValueString
}

func AppendHeader(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, Magic)
	return binary.LittleEndian.AppendUint32(dst, Version)
}

func AppendTag(dst []byte, t NodeType) []byte {
	return append(dst, byte(t))
}

func AppendUint32(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

func AppendBool(dst []byte, b bool) []byte {
	if b {
		return append(dst, 1)
	}
	return append(dst, 0)
}

func AppendInt64(dst []byte, v int64) []byte {
	return binary.LittleEndian.AppendUint64(dst, uint64(v))
}

func AppendFloat64(dst []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
}

func AppendString(dst []byte, s string) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(s)))
	return append(dst, s...)
}

// Reader reads primitives from a payload. Every read is bounds checked and
// reports ErrTruncated instead of reading past the end.
type Reader struct {
	data []byte
	off  int
}

func NewReader(d []byte) *Reader {
	return &Reader{data: d}
}

func (r *Reader) Offset() int { return r.off }

func (r *Reader) Remaining() int { return len(r.data) - r.off }

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrTruncated, n, r.off, r.Remaining())
	}
	res := r.data[r.off : r.off+n]
	r.off += n
	return res, nil
}

// Header checks the magic number and the version.
func (r *Reader) Header() error {
	m, err := r.Uint32()
	if err != nil {
		return err
	}
	if m != Magic {
		return fmt.Errorf("%w: %#08x", ErrBadMagic, m)
	}
	v, err := r.Uint32()
	if err != nil {
		return err
	}
	if v != Version {
		return fmt.Errorf("%w: %d", ErrBadVersion, v)
	}
	return nil
}

func (r *Reader) Tag() (NodeType, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return NodeType(b[0]), nil
}

func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) Bool() (bool, error) {
	b, err := r.take(1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (r *Reader) Int64() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func (r *Reader) Float64() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

func (r *Reader) String() (string, error) {
	n, err := r.Uint32()
	if err != nil {
		return "", err
	}
	if uint64(n) > uint64(r.Remaining()) {
		return "", fmt.Errorf("%w: string of %d bytes at offset %d, have %d",
			ErrTruncated, n, r.off, r.Remaining())
	}
	b, _ := r.take(int(n))
	return string(b), nil
}

// Count reads a u32 item count. Each item occupies at least minSize bytes,
// so a count the remaining input cannot hold is reported as truncation
// before anything is allocated for it.
func (r *Reader) Count(minSize int) (int, error) {
	n, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	if uint64(n)*uint64(max(minSize, 1)) > uint64(r.Remaining()) {
		return 0, fmt.Errorf("%w: %d items at offset %d, have %d bytes",
			ErrTruncated, n, r.off, r.Remaining())
	}
	return int(n), nil
}

// HasMagic reports whether d starts with the binary format magic number.
func HasMagic(d []byte) bool {
	return len(d) >= 4 && binary.LittleEndian.Uint32(d) == Magic
}
