package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/gdevelop/gdser/encode"
	"github.com/gdevelop/gdser/parse"
	"github.com/gdevelop/gdser/project"
)

func hash(cfg *HashConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Hash.Parse(cc, args)
	if err != nil {
		cfg.Hash.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		d, err := readObjFile(cc, file)
		if err != nil {
			return err
		}
		if err := writeHash(cfg, cc.Out, file, d); err != nil {
			return fmt.Errorf("error hashing %s: %w", file, err)
		}
	}
	return nil
}

// writeHash writes the digest of d followed by name. With -t the digest
// is that of the binary encoding of the parsed tree, so indentation and
// compression do not change it.
func writeHash(cfg *HashConfig, w io.Writer, name string, d []byte) error {
	if cfg.Tree {
		e, err := parse.Parse(d, cfg.parseOpts()...)
		if err != nil {
			return err
		}
		d = encode.AppendBinary(nil, e)
	}
	sum := project.Hash(d)
	_, err := fmt.Fprintf(w, "%s  %s\n", hex.EncodeToString(sum[:]), name)
	return err
}
