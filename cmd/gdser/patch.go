package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/gdevelop/gdser/patch"
	"github.com/gdevelop/gdser/sertree"
)

func patchCmd(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 {
		return fmt.Errorf("%w: patch requires a patch file and files to which to apply it", cli.ErrUsage)
	}
	p, err := readObjFile(cc, args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return eachObjFile(cfg.MainConfig, cc, args[1:], func(_ string, e *sertree.Element) error {
		res, err := applyPatch(e, p, cfg.Merge)
		if err != nil {
			return err
		}
		return writeTree(cfg.MainConfig, cc.Out, res)
	})
}

func applyPatch(e *sertree.Element, p []byte, merge bool) (*sertree.Element, error) {
	if merge {
		return patch.ApplyMergePatch(e, p)
	}
	return patch.ApplyJSONPatch(e, p)
}
