package project

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/zeebo/blake3"

	"github.com/gdevelop/gdser/debug"
	"github.com/gdevelop/gdser/encode"
	"github.com/gdevelop/gdser/parse"
	"github.com/gdevelop/gdser/sertree"
	"github.com/gdevelop/gdser/splitter"
)

// ErrFragmentConflict is returned by Save when two fragments map to the
// same file.
var ErrFragmentConflict = errors.New("fragments share a file")

// Store reads and writes a split project under a root directory.
type Store struct {
	root     string
	cfg      *Config
	splitter *splitter.Splitter
	logger   *slog.Logger
}

// Open opens a store rooted at root, creating the directory if needed.
// A nil cfg means DefaultConfig(). If logger is nil, slog.Default() will
// be used.
func Open(root string, cfg *Config, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		root:   root,
		cfg:    cfg,
		logger: logger,
		splitter: &splitter.Splitter{
			NameAttribute: cfg.NameAttribute,
			Logger:        logger,
		},
	}
	if err := s.mkdirAll(root); err != nil {
		return nil, err
	}
	return s, nil
}

// Root returns the root directory path.
func (s *Store) Root() string {
	return s.root
}

// Config returns the store configuration.
func (s *Store) Config() *Config {
	return s.cfg
}

// BaseFile returns the path of the base file relative to the root.
func (s *Store) BaseFile() string {
	return s.cfg.BaseName + s.cfg.Format.Suffix()
}

// FragmentFile returns the path relative to the root of the file holding
// the fragment name found at path.
func (s *Store) FragmentFile(path, name string) string {
	return splitter.FragmentFileName(path, name) + s.cfg.Format.Suffix()
}

func (s *Store) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

func (s *Store) mkdirAll(dir string) error {
	return os.MkdirAll(dir, 0o755&^os.FileMode(s.cfg.Umask))
}

// SaveResult lists the files touched by Save, relative to the root.
type SaveResult struct {
	Written   []string
	Unchanged []string
	Removed   []string
}

// Save writes tree as a base file and one file per fragment. tree itself
// is left untouched.
func (s *Store) Save(tree *sertree.Element) (*SaveResult, error) {
	work := tree.Clone()
	frags := s.splitter.Split(work, s.cfg.SplitPaths)

	res := &SaveResult{}
	seen := map[string]string{}
	for _, f := range frags {
		rel := f.FileName(s.cfg.Format.Suffix())
		if prev, ok := seen[rel]; ok {
			return res, fmt.Errorf("%w: %q and %q in %s", ErrFragmentConflict, prev, f.Name, rel)
		}
		seen[rel] = f.Name
		root := path.Base(f.Path)
		if err := s.write(res, rel, f.Element, root); err != nil {
			return res, err
		}
	}
	if err := s.write(res, s.BaseFile(), work, s.cfg.XMLRoot); err != nil {
		return res, err
	}
	if s.cfg.Prune {
		if err := s.prune(res, seen); err != nil {
			return res, err
		}
	}
	s.logger.Info("saved project", "root", s.root,
		"written", len(res.Written), "unchanged", len(res.Unchanged), "removed", len(res.Removed))
	return res, nil
}

func (s *Store) encode(e *sertree.Element, xmlRoot string) ([]byte, error) {
	buf := &bytes.Buffer{}
	err := encode.Encode(e, buf,
		encode.EncodeFormat(s.cfg.Format),
		encode.EncodeIndent(s.cfg.Indent),
		encode.EncodeXMLRoot(xmlRoot),
		encode.EncodeCompress(s.cfg.Compress))
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Store) write(res *SaveResult, rel string, e *sertree.Element, xmlRoot string) error {
	data, err := s.encode(e, xmlRoot)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", rel, err)
	}
	p := s.abs(rel)
	if same, err := sameContent(p, data); err != nil {
		return err
	} else if same {
		res.Unchanged = append(res.Unchanged, rel)
		return nil
	}
	if err := s.mkdirAll(filepath.Dir(p)); err != nil {
		return err
	}
	if err := atomic.WriteFile(p, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	if err := os.Chmod(p, 0o644&^os.FileMode(s.cfg.Umask)); err != nil {
		return err
	}
	if debug.Store() {
		debug.Logf("wrote %s (%d bytes)\n", rel, len(data))
	}
	res.Written = append(res.Written, rel)
	return nil
}

// sameContent reports whether the file at p already holds data.
func sameContent(p string, data []byte) (bool, error) {
	old, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return Hash(old) == Hash(data), nil
}

// prune removes fragment files under the split paths that were not
// written by this save.
func (s *Store) prune(res *SaveResult, kept map[string]string) error {
	suffix := s.cfg.Format.Suffix()
	for _, sp := range s.cfg.SplitPaths {
		pattern := s.abs(strings.TrimLeft(sp, "/") + "-*" + suffix)
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return err
		}
		for _, m := range matches {
			rel, err := filepath.Rel(s.root, m)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if _, ok := kept[rel]; ok {
				continue
			}
			if err := os.Remove(m); err != nil {
				return err
			}
			if debug.Store() {
				debug.Logf("removed %s\n", rel)
			}
			res.Removed = append(res.Removed, rel)
		}
	}
	slices.Sort(res.Removed)
	return nil
}

// Load reads the base file and reassembles the project from its fragment
// files. Missing or unreadable fragments are logged and loaded as empty
// elements.
func (s *Store) Load() (*sertree.Element, error) {
	tree, err := s.read(s.BaseFile())
	if err != nil {
		return nil, err
	}
	s.splitter.Unsplit(tree, func(path, name string) *sertree.Element {
		rel := s.FragmentFile(path, name)
		frag, err := s.read(rel)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("cannot read fragment", "file", rel, "error", err)
			}
			return nil
		}
		return frag
	})
	return tree, nil
}

func (s *Store) read(rel string) (*sertree.Element, error) {
	d, err := os.ReadFile(s.abs(rel))
	if err != nil {
		return nil, err
	}
	if debug.Store() {
		debug.Logf("read %s (%d bytes)\n", rel, len(d))
	}
	e, err := parse.Parse(d, parse.ParseFormat(s.cfg.Format))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rel, err)
	}
	return e, nil
}

// Hash returns the BLAKE3 digest of d.
func Hash(d []byte) [32]byte {
	return blake3.Sum256(d)
}
