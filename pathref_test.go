package propcheck_test

import (
	"testing"

	propcheck "github.com/openregister/propcheck"
)

func TestPathRef_PointerConstruction(t *testing.T) {
	if got := propcheck.Root().Pointer(); got != "" {
		t.Fatalf("root pointer = %q, want empty", got)
	}

	p := propcheck.Root().Field("properties").Field("a").Field("items").Index(2)
	if got := p.Pointer(); got != "/properties/a/items/2" {
		t.Fatalf("pointer = %q", got)
	}
}

func TestPathRef_EscapesSpecialCharacters(t *testing.T) {
	p := propcheck.Root().Field("properties").Field("a/b~c")
	if got := p.Pointer(); got != "/properties/a~1b~0c" {
		t.Fatalf("pointer = %q", got)
	}
}

func TestPathRef_AtRoundTrip(t *testing.T) {
	for _, path := range []string{"", "/", "/properties/a", "/properties/a/items"} {
		p := propcheck.At(path)
		want := path
		if want == "/" {
			want = ""
		}
		if got := p.Pointer(); got != want {
			t.Fatalf("At(%q).Pointer() = %q, want %q", path, got, want)
		}
	}
}

func TestPathRef_IssueCarriesParams(t *testing.T) {
	it := propcheck.Root().Field("maxSize").Issue(propcheck.CodeInvalidMaxSize, "too big", "got", 200, "max", 100)
	if it.Path != "/maxSize" || it.Code != propcheck.CodeInvalidMaxSize {
		t.Fatalf("unexpected issue: %+v", it)
	}
	if it.Params["got"] != 200 || it.Params["max"] != 100 {
		t.Fatalf("params not captured: %+v", it.Params)
	}
}
