package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/gdevelop/gdser/query"
	"github.com/gdevelop/gdser/sertree"
)

func queryCmd(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires an expression", cli.ErrUsage)
	}
	input := args[0]
	return eachObjFile(cfg.MainConfig, cc, args[1:], func(_ string, e *sertree.Element) error {
		if cfg.Path != "" {
			return selectElements(cfg.MainConfig, cc.Out, e, cfg.Path, input)
		}
		return evalQuery(cc.Out, e, input)
	})
}

func evalQuery(w io.Writer, e *sertree.Element, input string) error {
	res, err := query.Eval(e, input)
	if err != nil {
		return err
	}
	d, err := json.Marshal(res)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", d)
	return err
}

func selectElements(cfg *MainConfig, w io.Writer, e *sertree.Element, path, where string) error {
	elts, err := query.Select(e, path, where)
	if err != nil {
		return err
	}
	res := sertree.New().ConsiderAsArray()
	for _, x := range elts {
		x.CloneTo(res.AddChild(""))
	}
	return writeTree(cfg, w, res)
}
