package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/gdevelop/gdser/encode"
	"github.com/gdevelop/gdser/format"
	"github.com/gdevelop/gdser/parse"
	"github.com/gdevelop/gdser/project"
)

type MainConfig struct {
	Color    bool `cli:"name=color desc='encode with color'"`
	Indent   int  `cli:"name=indent desc='spaces per indentation level, 0 for compact output'"`
	Compress bool `cli:"name=z desc='compress output with zstd'"`
	Strict   bool `cli:"name=strict desc='reject malformed JSON input'"`
	Verbose  bool `cli:"name=v desc='log diagnostics to stderr'"`

	J bool `cli:"name=j aliases=json desc='do i/o in json'"`
	X bool `cli:"name=x aliases=xml desc='do i/o in xml'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in yaml'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

// shortFormat returns the format selected by -j, -x or -y.
func (cfg *MainConfig) shortFormat() (format.Format, bool) {
	switch {
	case cfg.J:
		return format.JSONFormat, true
	case cfg.X:
		return format.XMLFormat, true
	case cfg.Y:
		return format.YAMLFormat, true
	}
	return 0, false
}

// parseOpts leaves the input format to detection unless one was given.
func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	var res []parse.ParseOption
	if f, ok := cfg.shortFormat(); ok {
		res = append(res, parse.ParseFormat(f))
	}
	if cfg.InFormat != nil {
		res = append(res, parse.ParseFormat(*cfg.InFormat))
	}
	if cfg.Strict {
		res = append(res, parse.ParseStrict())
	}
	return res
}

func (cfg *MainConfig) outFormat() format.Format {
	f, _ := cfg.shortFormat()
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return f
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeIndent(cfg.Indent),
		encode.EncodeCompress(cfg.Compress),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	if cfg.optSet("color") {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) && cfg.outFormat().IsText() && !cfg.Compress {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// optSet reports whether the main option name was given on the command
// line.
func (cfg *MainConfig) optSet(name string) bool {
	if cfg.Main == nil {
		return false
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

func (cfg *MainConfig) logger() *slog.Logger {
	level := slog.LevelError
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type GetConfig struct {
	*MainConfig

	List bool `cli:"name=l aliases=list desc='list every element matching the path'"`

	Get *cli.Command
}

type SplitConfig struct {
	*MainConfig

	Config string `cli:"name=c aliases=config desc='project config file'"`
	Dir    string `cli:"name=d aliases=dir desc='project directory'"`
	Prune  bool   `cli:"name=prune desc='remove stale fragment files'"`

	Split *cli.Command
}

// projectConfig loads the project configuration. The format of the
// project files follows -O when given.
func (cfg *SplitConfig) projectConfig() (*project.Config, error) {
	pc := project.DefaultConfig()
	if cfg.Config != "" {
		var err error
		pc, err = project.LoadConfig(cfg.Config)
		if err != nil {
			return nil, err
		}
	}
	if cfg.OutFormat != nil {
		pc.Format = *cfg.OutFormat
	} else if f, ok := cfg.shortFormat(); ok {
		pc.Format = f
	}
	if cfg.Prune {
		pc.Prune = true
	}
	if cfg.Compress {
		pc.Compress = true
	}
	return pc, nil
}

type UnsplitConfig struct {
	*MainConfig

	Config string `cli:"name=c aliases=config desc='project config file'"`
	Format string `cli:"name=f aliases=format desc='format of the project files'"`

	Unsplit *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Merge bool `cli:"name=merge desc='output a JSON merge patch'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig

	Merge bool `cli:"name=merge desc='the patch is a JSON merge patch'"`

	Patch *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Path string `cli:"name=p aliases=path desc='select elements at path where the expression holds'"`

	Query *cli.Command
}

type HashConfig struct {
	*MainConfig

	Tree bool `cli:"name=t aliases=tree desc='hash the parsed tree instead of the file bytes'"`

	Hash *cli.Command
}
