package propcheck_test

import (
	"strings"
	"testing"

	propcheck "github.com/openregister/propcheck"
)

func TestFileConstraints_AllowedTypes(t *testing.T) {
	v := propcheck.New()
	cases := []struct {
		name     string
		prop     map[string]any
		wantCode string
		wantPath string
	}{
		{"plus sign rejected", map[string]any{"type": "file", "allowedTypes": []any{"image/png", "application/pdf", "image/svg+xml"}}, propcheck.CodeInvalidMimeType, "/allowedTypes/2"},
		{"plain mimes ok", map[string]any{"type": "file", "allowedTypes": []any{"image/png", "application/vnd.ms-excel", "x-custom/x.y"}}, "", ""},
		{"bad element", map[string]any{"type": "file", "allowedTypes": []any{"image/png", "bad"}}, propcheck.CodeInvalidMimeType, "/allowedTypes/1"},
		{"non-string element", map[string]any{"type": "file", "allowedTypes": []any{42}}, propcheck.CodeInvalidMimeType, "/allowedTypes/0"},
		{"not a sequence", map[string]any{"type": "file", "allowedTypes": "image/png"}, propcheck.CodeInvalidMimeType, "/allowedTypes"},
		{"missing slash", map[string]any{"type": "file", "allowedTypes": []any{"imagepng"}}, propcheck.CodeInvalidMimeType, "/allowedTypes/0"},
		{"spaces rejected", map[string]any{"type": "file", "allowedTypes": []any{"image/p ng"}}, propcheck.CodeInvalidMimeType, "/allowedTypes/0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateProperty(tc.prop, "")
			if tc.wantCode == "" {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			it := firstIssue(t, err)
			if it.Code != tc.wantCode || it.Path != tc.wantPath {
				t.Fatalf("got %s at %q, want %s at %q", it.Code, it.Path, tc.wantCode, tc.wantPath)
			}
		})
	}
}

func TestFileConstraints_MaxSize(t *testing.T) {
	v := propcheck.New()
	cases := []struct {
		name  string
		size  any
		valid bool
	}{
		{"zero", 0, true},
		{"ceiling", 104857600, true},
		{"over ceiling", 104857601, false},
		{"negative", -1, false},
		{"not numeric", "big", false},
		{"float form", float64(1024), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateProperty(map[string]any{"type": "file", "maxSize": tc.size}, "")
			if tc.valid {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			it := firstIssue(t, err)
			if it.Code != propcheck.CodeInvalidMaxSize || it.Path != "/maxSize" {
				t.Fatalf("got %s at %q", it.Code, it.Path)
			}
		})
	}
}

func TestFileConstraints_Tags(t *testing.T) {
	v := propcheck.New()
	long := strings.Repeat("x", 51)
	cases := []struct {
		name     string
		prop     map[string]any
		wantPath string
	}{
		{"empty tag", map[string]any{"type": "file", "allowedTags": []any{""}}, "/allowedTags/0"},
		{"whitespace tag", map[string]any{"type": "file", "allowedTags": []any{"ok", "   "}}, "/allowedTags/1"},
		{"overlong tag", map[string]any{"type": "file", "autoTags": []any{long}}, "/autoTags/0"},
		{"non-string tag", map[string]any{"type": "file", "autoTags": []any{7}}, "/autoTags/0"},
		{"not a sequence", map[string]any{"type": "file", "allowedTags": "a,b"}, "/allowedTags"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it := firstIssue(t, v.ValidateProperty(tc.prop, ""))
			if it.Code != propcheck.CodeInvalidTag || it.Path != tc.wantPath {
				t.Fatalf("got %s at %q, want invalid_tag at %q", it.Code, it.Path, tc.wantPath)
			}
		})
	}

	ok := map[string]any{
		"type":        "file",
		"allowedTags": []any{"invoice", "contract"},
		"autoTags":    []any{strings.Repeat("y", 50)},
	}
	if err := v.ValidateProperty(ok, ""); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestFileConstraints_EvaluationOrder(t *testing.T) {
	prop := map[string]any{
		"type":         "file",
		"allowedTypes": []any{"bad"},
		"maxSize":      -1,
		"allowedTags":  []any{""},
		"autoTags":     []any{""},
	}

	// fail-fast reports the first failing check in the fixed order
	it := firstIssue(t, propcheck.New().ValidateProperty(prop, ""))
	if it.Code != propcheck.CodeInvalidMimeType {
		t.Fatalf("fail-fast should stop at allowedTypes, got %s", it.Code)
	}

	// collect mode walks every field category
	err := propcheck.New(propcheck.WithCollectAll()).ValidateProperty(prop, "")
	iss, _ := propcheck.AsIssues(err)
	if len(iss) != 4 {
		t.Fatalf("expected 4 issues, got %d: %v", len(iss), err)
	}
	wantCodes := []string{
		propcheck.CodeInvalidMimeType,
		propcheck.CodeInvalidMaxSize,
		propcheck.CodeInvalidTag,
		propcheck.CodeInvalidTag,
	}
	for i, want := range wantCodes {
		if iss[i].Code != want {
			t.Fatalf("issue %d = %s, want %s", i, iss[i].Code, want)
		}
	}
	if iss[2].Path != "/allowedTags/0" || iss[3].Path != "/autoTags/0" {
		t.Fatalf("tag lists must be checked independently: %q, %q", iss[2].Path, iss[3].Path)
	}
}

func TestFileConstraints_IgnoredForOtherTypes(t *testing.T) {
	v := propcheck.New()
	prop := map[string]any{"type": "string", "maxSize": -99, "allowedTypes": []any{"bad"}}
	if err := v.ValidateProperty(prop, ""); err != nil {
		t.Fatalf("file fields must be ignored for non-file types, got %v", err)
	}
}
