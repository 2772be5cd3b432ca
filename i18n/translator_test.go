package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("enum", nil); msg != "must be equal to one of the allowed values" {
		t.Fatalf("unexpected english message: %q", msg)
	}
	if msg := T("required", map[string]string{"property": "$ref"}); msg != "must have required property '$ref'" {
		t.Fatalf("unexpected required message: %q", msg)
	}

	SetLanguage("ja")
	if msg := T("enum", nil); msg == "must be equal to one of the allowed values" {
		t.Fatalf("expected japanese message, got %q", msg)
	}
	// keywords without a japanese entry fall back to english
	if msg := T("minLength", map[string]string{"limit": "2"}); msg != "must NOT have fewer than 2 characters" {
		t.Fatalf("expected english fallback, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

type upperOneOf struct{}

func (upperOneOf) Message(keyword string, _ map[string]string) string {
	if keyword == "oneOf" {
		return "ONE OF"
	}
	return ""
}

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upperOneOf{})
	defer SetTranslator(nil)

	if msg := T("oneOf", nil); msg != "ONE OF" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	if msg := T("type", map[string]string{"type": "string"}); msg != "must be string" {
		t.Fatalf("fallback expected, got %q", msg)
	}

	SetTranslator(nil)
	if msg := T("oneOf", nil); msg != "must match exactly one schema in oneOf" {
		t.Fatalf("reset failed: %q", msg)
	}
}
