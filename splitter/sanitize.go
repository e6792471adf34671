package splitter

import (
	"strconv"
	"strings"
)

// SanitizeName makes name safe for a file name. Every rune outside
// [A-Za-z0-9-] is replaced by '_' followed by its decimal code point, so
// distinct names stay distinct: "My Scene" gives "My_32Scene".
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
			b.WriteString(strconv.Itoa(int(r)))
		}
	}
	return b.String()
}

// FragmentFileName returns the relative file name of the fragment at path
// named name: the path without its leading separator, '-' and the
// sanitized name. "/layouts/layout" and "Main" give "layouts/layout-Main".
func FragmentFileName(path, name string) string {
	return strings.TrimLeft(path, "/") + "-" + SanitizeName(name)
}
