package treediff

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gdevelop/gdser/parse"
	"github.com/gdevelop/gdser/sertree"
)

type change struct {
	Path string
	Kind Kind
}

func summarize(cs []Change) []change {
	res := []change{}
	for _, c := range cs {
		res = append(res, change{c.Path, c.Kind})
	}
	return res
}

func layouts(names ...string) *sertree.Element {
	root := sertree.New()
	ls := root.AddChild("layouts").ConsiderAsArrayOf("layout")
	for _, n := range names {
		l := ls.AddChild("layout")
		l.SetStringAttribute("name", n)
		l.SetDoubleAttribute("r", 0.5)
	}
	return root
}

func mustParse(t *testing.T, s string) *sertree.Element {
	t.Helper()
	e, err := parse.Parse([]byte(s), parse.ParseJSON(), parse.ParseStrict())
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name     string
		from, to func() *sertree.Element
		want     []change
	}{
		{
			name: "equal",
			from: func() *sertree.Element { return layouts("Main", "Menu") },
			to:   func() *sertree.Element { return layouts("Main", "Menu") },
			want: []change{},
		},
		{
			name: "attributes",
			from: func() *sertree.Element {
				e := sertree.New()
				e.SetIntAttribute("x", 1)
				e.SetIntAttribute("gone", 1)
				return e
			},
			to: func() *sertree.Element {
				e := sertree.New()
				e.SetIntAttribute("x", 2)
				e.SetStringAttribute("new", "v")
				return e
			},
			want: []change{
				{"$.x", Modified},
				{"$.gone", Removed},
				{"$.new", Added},
			},
		},
		{
			name: "own value",
			from: func() *sertree.Element {
				e := sertree.New()
				e.AddChild("a").SetIntValue(1)
				e.AddChild("b")
				e.AddChild("c").SetStringValue("x")
				return e
			},
			to: func() *sertree.Element {
				e := sertree.New()
				e.AddChild("a")
				e.AddChild("b").SetBoolValue(true)
				e.AddChild("c").SetStringValue("y")
				return e
			},
			want: []change{
				{"$.a", Removed},
				{"$.b", Added},
				{"$.c", Modified},
			},
		},
		{
			name: "insert in front",
			from: func() *sertree.Element { return layouts("Main", "Menu") },
			to: func() *sertree.Element {
				e := layouts("Intro", "Main", "Menu")
				e.Child("layouts").Item(2).SetDoubleAttribute("r", 1)
				return e
			},
			want: []change{
				{"$.layouts.layout[0]", Added},
				{"$.layouts.layout[2].r", Modified},
			},
		},
		{
			name: "remove",
			from: func() *sertree.Element { return layouts("Main", "Menu", "End") },
			to:   func() *sertree.Element { return layouts("Main", "End") },
			want: []change{
				{"$.layouts.layout[1]", Removed},
			},
		},
		{
			name: "rename",
			from: func() *sertree.Element { return layouts("Main", "Menu") },
			to:   func() *sertree.Element { return layouts("Start", "Menu") },
			want: []change{
				{"$.layouts.layout[0].name", Modified},
			},
		},
		{
			name: "unnamed children",
			from: func() *sertree.Element { return mustParse(t, `{"tags": [1, 2, 3]}`) },
			to:   func() *sertree.Element { return mustParse(t, `{"tags": [1, 5, 3, 4]}`) },
			want: []change{
				{"$.tags[0][1]", Modified},
				{"$.tags[0][3]", Added},
			},
		},
		{
			name: "replace child of another name",
			from: func() *sertree.Element { return mustParse(t, `{"a": 1}`) },
			to:   func() *sertree.Element { return mustParse(t, `{"b": 1}`) },
			want: []change{
				{"$.a", Removed},
				{"$.b", Added},
			},
		},
		{
			name: "quoted names",
			from: func() *sertree.Element { return mustParse(t, `{"a.b": 1}`) },
			to:   func() *sertree.Element { return mustParse(t, `{"a.b": 2}`) },
			want: []change{
				{"$.'a.b'", Modified},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := summarize(Diff(tc.from(), tc.to()))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiffPathsResolve(t *testing.T) {
	from := layouts("Main", "Menu")
	to := layouts("Intro", "Main", "Menu")
	to.Child("layouts").Item(2).SetDoubleAttribute("r", 1)
	to.Child("layouts").Item(0).AddChild("objects")

	for _, c := range Diff(from, to) {
		got, err := to.Lookup(c.Path)
		if err != nil {
			t.Fatalf("%s: %v", c.Path, err)
		}
		if !sertree.Equal(got, c.To) {
			t.Errorf("%s: lookup gives a different element", c.Path)
		}
	}
}

func TestDiffUnnamedPathsResolve(t *testing.T) {
	from := mustParse(t, `{"tags": [1, 2], "grid": [[1, 2], [3, 4]]}`)
	to := mustParse(t, `{"tags": [1, 5], "grid": [[1, 2], [3, 6]]}`)
	changes := Diff(from, to)
	want := []change{
		{"$.tags[0][1]", Modified},
		{"$.grid[0][1][1]", Modified},
	}
	if diff := cmp.Diff(want, summarize(changes)); diff != "" {
		t.Fatalf("Diff (-want +got):\n%s", diff)
	}
	for _, c := range changes {
		got, err := to.Lookup(c.Path)
		if err != nil {
			t.Fatalf("%s: %v", c.Path, err)
		}
		if !sertree.Equal(got, c.To) {
			t.Errorf("%s: lookup gives %s", c.Path, got.StringValue())
		}
	}
}

func TestChangeString(t *testing.T) {
	from := sertree.New()
	from.SetIntAttribute("hp", 100)
	from.SetStringAttribute("tag", "a")
	to := sertree.New()
	to.SetIntAttribute("hp", 90)
	to.SetBoolAttribute("boss", true)

	var got []string
	for _, c := range Diff(from, to) {
		got = append(got, c.String())
	}
	want := []string{
		`~ $.hp: 100 -> 90`,
		`- $.tag: "a"`,
		`+ $.boss: true`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("String (-want +got):\n%s", diff)
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{Added: "added", Removed: "removed", Modified: "modified", Kind(9): "<kind 9>"} {
		if got := k.String(); got != want {
			t.Errorf("%d: %q", int(k), got)
		}
	}
}
