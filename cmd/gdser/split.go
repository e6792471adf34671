package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/gdevelop/gdser/format"
	"github.com/gdevelop/gdser/project"
)

func split(cfg *SplitConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Split.Parse(cc, args)
	if err != nil {
		cfg.Split.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: split requires 1 argument, a project file", cli.ErrUsage)
	}
	pc, err := cfg.projectConfig()
	if err != nil {
		return err
	}
	tree, err := getObjFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	store, err := project.Open(cfg.Dir, pc, cfg.logger())
	if err != nil {
		return err
	}
	res, err := store.Save(tree)
	if err != nil {
		return fmt.Errorf("error saving project in %s: %w", cfg.Dir, err)
	}
	return writeSaveResult(cc.Out, res)
}

func writeSaveResult(w io.Writer, res *project.SaveResult) error {
	for _, l := range []struct {
		prefix string
		files  []string
	}{
		{"wrote", res.Written},
		{"removed", res.Removed},
	} {
		for _, f := range l.files {
			if _, err := fmt.Fprintf(w, "%s %s\n", l.prefix, f); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%d unchanged\n", len(res.Unchanged))
	return err
}

func unsplit(cfg *UnsplitConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Unsplit.Parse(cc, args)
	if err != nil {
		cfg.Unsplit.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: unsplit requires 1 argument, a project directory", cli.ErrUsage)
	}
	pc := project.DefaultConfig()
	if cfg.Config != "" {
		pc, err = project.LoadConfig(cfg.Config)
		if err != nil {
			return err
		}
	}
	if cfg.Format != "" {
		pc.Format, err = format.ParseFormat(cfg.Format)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	store, err := project.Open(args[0], pc, cfg.logger())
	if err != nil {
		return err
	}
	tree, err := store.Load()
	if err != nil {
		return fmt.Errorf("error loading project in %s: %w", args[0], err)
	}
	return writeTree(cfg.MainConfig, cc.Out, tree)
}
