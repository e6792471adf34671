package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdevelop/gdser/format"
	"github.com/gdevelop/gdser/parse"
	"github.com/gdevelop/gdser/project"
	"github.com/gdevelop/gdser/sertree"
)

func mustParse(t *testing.T, s string) *sertree.Element {
	t.Helper()
	e, err := parse.Parse([]byte(s))
	require.NoError(t, err)
	return e
}

func fmtPtr(f format.Format) *format.Format { return &f }

func TestWriteTree(t *testing.T) {
	e := mustParse(t, `{"name": "Hero", "hp": 100}`)

	buf := &bytes.Buffer{}
	require.NoError(t, writeTree(&MainConfig{}, buf, e))
	assert.Equal(t, "{\"name\": \"Hero\",\"hp\": 100}\n", buf.String())

	buf.Reset()
	require.NoError(t, writeTree(&MainConfig{OutFormat: fmtPtr(format.XMLFormat)}, buf, e))
	assert.True(t, strings.HasPrefix(buf.String(), "<?xml"))
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	buf.Reset()
	require.NoError(t, writeTree(&MainConfig{OutFormat: fmtPtr(format.BinaryFormat)}, buf, e))
	back, err := parse.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Hero", back.Child("name").StringValue())

	buf.Reset()
	e = mustParse(t, `{"tags": ["a", "b"]}`)
	require.NoError(t, writeTree(&MainConfig{}, buf, e))
	assert.Equal(t, "{\"tags\": [\"a\",\"b\"]}\n", buf.String())
}

func TestParseOpts(t *testing.T) {
	cfg := &MainConfig{}
	assert.Empty(t, cfg.parseOpts())
	assert.Equal(t, format.JSONFormat, cfg.outFormat())

	cfg = &MainConfig{Y: true, Strict: true}
	assert.Len(t, cfg.parseOpts(), 2)
	assert.Equal(t, format.YAMLFormat, cfg.outFormat())

	cfg.OutFormat = fmtPtr(format.XMLFormat)
	assert.Equal(t, format.XMLFormat, cfg.outFormat())
}

func TestGetPath(t *testing.T) {
	e := mustParse(t, `{"layouts": [{"name": "Main"}, {"name": "Menu"}]}`)

	got, err := getPath(e, "$.layouts[0][1].name", false)
	require.NoError(t, err)
	assert.Equal(t, "Menu", got.StringValue())

	got, err = getPath(e, "$..name", true)
	require.NoError(t, err)
	require.Len(t, got.Children(), 2)
	assert.True(t, got.IsArray())

	_, err = getPath(e, "$.nope", false)
	assert.ErrorIs(t, err, sertree.ErrNotFound)
}

func TestDiffTrees(t *testing.T) {
	a := mustParse(t, `{"hp": 100, "name": "Hero"}`)
	b := mustParse(t, `{"hp": 90, "name": "Hero"}`)

	buf := &bytes.Buffer{}
	differs, err := diffTrees(&DiffConfig{MainConfig: &MainConfig{}}, buf, a, a.Clone())
	require.NoError(t, err)
	assert.False(t, differs)
	assert.Empty(t, buf.String())

	differs, err = diffTrees(&DiffConfig{MainConfig: &MainConfig{}}, buf, a, b)
	require.NoError(t, err)
	assert.True(t, differs)
	assert.Equal(t, "~ $.hp: 100 -> 90\n", buf.String())

	buf.Reset()
	differs, err = diffTrees(&DiffConfig{MainConfig: &MainConfig{}, Merge: true}, buf, a, b)
	require.NoError(t, err)
	assert.True(t, differs)
	assert.JSONEq(t, `{"hp": 90}`, buf.String())
}

func TestApplyPatch(t *testing.T) {
	e := mustParse(t, `{"hp": 100}`)
	got, err := applyPatch(e, []byte(`[{"op": "replace", "path": "/hp", "value": 1}]`), false)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Child("hp").IntValue())

	got, err = applyPatch(e, []byte(`{"lives": 3}`), true)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Child("lives").IntValue())
	assert.Equal(t, 100, got.Child("hp").IntValue())
}

func TestEvalQuery(t *testing.T) {
	e := mustParse(t, `{"layouts": [{"name": "Main"}, {"name": "Menu"}]}`)
	buf := &bytes.Buffer{}
	require.NoError(t, evalQuery(buf, e, `map(layouts, .name)`))
	assert.Equal(t, "[\"Main\",\"Menu\"]\n", buf.String())

	buf.Reset()
	require.NoError(t, selectElements(&MainConfig{}, buf, e, "$.layouts[0][*]", `name == "Menu"`))
	assert.Equal(t, "[{\"name\": \"Menu\"}]\n", buf.String())
}

func TestWriteHash(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, writeHash(&HashConfig{MainConfig: &MainConfig{}}, buf, "a.json", []byte("{}")))
	fields := strings.Fields(buf.String())
	require.Len(t, fields, 2)
	assert.Len(t, fields[0], 64)
	assert.Equal(t, "a.json", fields[1])

	compact, pretty := &bytes.Buffer{}, &bytes.Buffer{}
	cfg := &HashConfig{MainConfig: &MainConfig{}, Tree: true}
	require.NoError(t, writeHash(cfg, compact, "x", []byte(`{"a":1}`)))
	require.NoError(t, writeHash(cfg, pretty, "x", []byte("{\n  \"a\": 1\n}\n")))
	assert.Equal(t, compact.String(), pretty.String())
}

func TestWriteSaveResult(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, writeSaveResult(buf, &project.SaveResult{
		Written:   []string{"game.json"},
		Removed:   []string{"layouts/layout-Old.json"},
		Unchanged: []string{"layouts/layout-Main.json"},
	}))
	assert.Equal(t, "wrote game.json\nremoved layouts/layout-Old.json\n1 unchanged\n", buf.String())
}

func TestSplitConfig(t *testing.T) {
	cfg := &SplitConfig{MainConfig: &MainConfig{X: true, Compress: true}, Prune: true}
	pc, err := cfg.projectConfig()
	require.NoError(t, err)
	assert.Equal(t, format.XMLFormat, pc.Format)
	assert.True(t, pc.Prune)
	assert.True(t, pc.Compress)
}
