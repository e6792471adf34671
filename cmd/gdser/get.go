package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/gdevelop/gdser/sertree"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, an element path", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	if path[0] != '$' {
		path = "$" + path
	}
	if _, err := sertree.ParsePath(path); err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return eachObjFile(cfg.MainConfig, cc, args[1:], func(_ string, e *sertree.Element) error {
		res, err := getPath(e, path, cfg.List)
		if err != nil {
			return err
		}
		return writeTree(cfg.MainConfig, cc.Out, res)
	})
}

// getPath returns the element at path or, with list, an array of every
// element matching it.
func getPath(e *sertree.Element, path string, list bool) (*sertree.Element, error) {
	if !list {
		return e.Lookup(path)
	}
	elts, err := e.List(path)
	if err != nil {
		return nil, err
	}
	res := sertree.New().ConsiderAsArray()
	for _, x := range elts {
		x.CloneTo(res.AddChild(""))
	}
	return res, nil
}
