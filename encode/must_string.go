package encode

import (
	"bytes"
	"strings"

	"github.com/gdevelop/gdser/sertree"
)

func MustString(e *sertree.Element, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(e, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
