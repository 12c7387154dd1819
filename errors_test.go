package propcheck_test

import (
	"fmt"
	"strings"
	"testing"

	propcheck "github.com/openregister/propcheck"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := propcheck.Issues{
		{Path: "/a", Code: propcheck.CodeMissingType},
		{Path: "/b", Code: propcheck.CodeInvalidType},
		{Path: "/c", Code: propcheck.CodeInvalidEnum},
		{Path: "/d", Code: propcheck.CodeInvalidFlag},
	}
	s := iss.Error()
	if !strings.Contains(s, "missing_type at /a") {
		t.Fatalf("summary missing first issue: %q", s)
	}
	if !strings.Contains(s, "total 4") {
		t.Fatalf("summary should note the total count: %q", s)
	}
	if strings.Contains(s, "/d") {
		t.Fatalf("summary should truncate after three issues: %q", s)
	}

	if (propcheck.Issues{}).Error() != "" {
		t.Fatalf("empty issues must render empty")
	}
}

func TestAsIssues_UnwrapsWrappedErrors(t *testing.T) {
	iss := propcheck.Issues{{Path: "/x", Code: propcheck.CodeInvalidTag}}
	wrapped := fmt.Errorf("register schema: %w", error(iss))

	got, ok := propcheck.AsIssues(wrapped)
	if !ok || len(got) != 1 || got[0].Path != "/x" {
		t.Fatalf("expected unwrap to recover issues, got %v (%v)", got, ok)
	}

	if _, ok := propcheck.AsIssues(nil); ok {
		t.Fatalf("nil error must not yield issues")
	}
	if _, ok := propcheck.AsIssues(fmt.Errorf("plain")); ok {
		t.Fatalf("plain error must not yield issues")
	}
}

func TestAppendIssues_InitializesNil(t *testing.T) {
	out := propcheck.AppendIssues(nil, propcheck.Issue{Code: propcheck.CodeParseError})
	if len(out) != 1 {
		t.Fatalf("expected one issue, got %d", len(out))
	}
}
