package metatags

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtract(t *testing.T) {
	tests := map[string]struct {
		html string
		want []MetaTag
	}{
		"name property http-equiv": {
			html: `<html><head>
<meta name="description" content="A sample page">
<meta property="og:title" content="Sample Title">
<meta http-equiv="content-type" content="text/html; charset=UTF-8">
</head><body></body></html>`,
			want: []MetaTag{
				{Name: "description", Content: "A sample page"},
				{Name: "og:title", Content: "Sample Title"},
				{Name: "content-type", Content: "text/html; charset=UTF-8"},
			},
		},
		"name wins over property": {
			html: `<meta property="og:title" name="title" content="T">`,
			want: []MetaTag{{Name: "title", Content: "T"}},
		},
		"incomplete elements skipped": {
			html: `<meta charset="utf-8"><meta name="a"><meta content="b"><meta name="c" content="">`,
			want: []MetaTag{{Name: "c", Content: ""}},
		},
		"duplicates kept in order": {
			html: `<meta name="a" content="1"><body><meta name="a" content="2"></body>`,
			want: []MetaTag{{Name: "a", Content: "1"}, {Name: "a", Content: "2"}},
		},
		"entities decoded": {
			html: `<meta name="description" content="say &quot;hi&quot; &amp; bye">`,
			want: []MetaTag{{Name: "description", Content: `say "hi" & bye`}},
		},
		"empty":   {html: "", want: nil},
		"no meta": {html: "<p>hello</p>", want: nil},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Extract(test.html)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtract_generated(t *testing.T) {
	m := map[string]string{"description": `a "quoted" value`, "og:title": "T", "twitter:card": "summary"}
	tags, err := Extract(Generate(m).String())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m, ToMap(tags)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestToMap(t *testing.T) {
	got := ToMap([]MetaTag{{Name: "a", Content: "1"}, {Name: "b", Content: "2"}, {Name: "a", Content: "3"}})
	want := map[string]string{"a": "3", "b": "2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
