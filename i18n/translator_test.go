package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("missing_type", nil); msg == "missing_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg == "invalid property type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code echo for unknown code, got %q", msg)
	}
}

type staticTranslator struct{}

func (staticTranslator) Message(code string, data map[string]string) string { return "x:" + code }

func TestTranslator_Replace(t *testing.T) {
	SetTranslator(staticTranslator{})
	if msg := T("invalid_tag", nil); msg != "x:invalid_tag" {
		t.Fatalf("custom translator not used, got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("invalid_tag", nil); msg == "x:invalid_tag" {
		t.Fatalf("expected reset to builtin translator")
	}
}
