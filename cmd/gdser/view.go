package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/gdevelop/gdser/encode"
	"github.com/gdevelop/gdser/sertree"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	return eachObjFile(cfg.MainConfig, cc, args, func(_ string, e *sertree.Element) error {
		return writeTree(cfg.MainConfig, cc.Out, e)
	})
}

// writeTree encodes e to w. Text output always ends with a newline.
func writeTree(cfg *MainConfig, w io.Writer, e *sertree.Element) error {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(e, buf, cfg.encOpts(w)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	if cfg.outFormat().IsText() && !cfg.Compress && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}
	_, err := w.Write(buf.Bytes())
	return err
}
