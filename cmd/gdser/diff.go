package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/gdevelop/gdser/patch"
	"github.com/gdevelop/gdser/sertree"
	"github.com/gdevelop/gdser/treediff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := getObjFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getObjFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	differs, err := diffTrees(cfg, cc.Out, a, b)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// diffTrees writes the differences between a and b and reports whether
// there are any.
func diffTrees(cfg *DiffConfig, w io.Writer, a, b *sertree.Element) (bool, error) {
	changes := treediff.Diff(a, b)
	if len(changes) == 0 {
		return false, nil
	}
	if cfg.Merge {
		p, err := patch.CreateMergePatch(a, b)
		if err != nil {
			return true, err
		}
		_, err = fmt.Fprintf(w, "%s\n", p)
		return true, err
	}
	for _, c := range changes {
		if _, err := fmt.Fprintln(w, c); err != nil {
			return true, err
		}
	}
	return true, nil
}
