package i18n

import (
	"strings"
	"sync"
)

// Translator renders the message for a violated schema keyword.
// data carries keyword parameters (for example "property", "type" or "limit").
// Implementations return "" to fall back to the built-in dictionary.
type Translator interface {
	Message(keyword string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(keyword string, data map[string]string) string {
	switch t.lang {
	case "ja":
		if msg := japanese(keyword, data); msg != "" {
			return msg
		}
	}
	return english(keyword, data)
}

// english uses the wording common to JSON Schema validators.
func english(keyword string, data map[string]string) string {
	switch keyword {
	case "type":
		return "must be " + data["type"]
	case "enum":
		return "must be equal to one of the allowed values"
	case "const":
		return "must be equal to constant"
	case "required":
		return "must have required property '" + data["property"] + "'"
	case "additionalProperties":
		return "must NOT have additional properties"
	case "format":
		return `must match format "` + data["format"] + `"`
	case "pattern":
		return `must match pattern "` + data["pattern"] + `"`
	case "minimum":
		return "must be >= " + data["limit"]
	case "maximum":
		return "must be <= " + data["limit"]
	case "exclusiveMinimum":
		return "must be > " + data["limit"]
	case "exclusiveMaximum":
		return "must be < " + data["limit"]
	case "multipleOf":
		return "must be multiple of " + data["multipleOf"]
	case "minLength":
		return "must NOT have fewer than " + data["limit"] + " characters"
	case "maxLength":
		return "must NOT have more than " + data["limit"] + " characters"
	case "minItems":
		return "must NOT have fewer than " + data["limit"] + " items"
	case "maxItems":
		return "must NOT have more than " + data["limit"] + " items"
	case "additionalItems":
		return "must NOT have " + data["count"] + " additional item(s)"
	case "minProperties":
		return "must NOT have fewer than " + data["limit"] + " properties"
	case "maxProperties":
		return "must NOT have more than " + data["limit"] + " properties"
	case "uniqueItems":
		return "must NOT have duplicate items (items ## " + data["j"] + " and " + data["i"] + " are identical)"
	case "dependencies":
		return "must have property " + data["missing"] + " when property " + data["property"] + " is present"
	case "propertyNames":
		return "property name must be valid"
	case "contains":
		return "must contain at least 1 valid item(s)"
	case "oneOf":
		return "must match exactly one schema in oneOf"
	case "anyOf":
		return "must match a schema in anyOf"
	case "not":
		return "must NOT be valid"
	case "false schema":
		return "boolean schema is false"
	}
	return keyword
}

func japanese(keyword string, data map[string]string) string {
	switch keyword {
	case "type":
		return strings.ReplaceAll(data["type"], ",", "または") + " 型である必要があります"
	case "enum":
		return "許可された値のいずれかである必要があります"
	case "required":
		return "必須プロパティ '" + data["property"] + "' がありません"
	case "additionalProperties":
		return "追加のプロパティは許可されていません"
	case "format":
		return "フォーマット \"" + data["format"] + "\" に一致する必要があります"
	case "pattern":
		return "パターン \"" + data["pattern"] + "\" に一致する必要があります"
	case "oneOf":
		return "oneOf のスキーマのうち正確に 1 つに一致する必要があります"
	case "anyOf":
		return "anyOf のいずれかのスキーマに一致する必要があります"
	case "not":
		return "スキーマに一致してはいけません"
	}
	return ""
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). Keywords it has no message for fall back to English.
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches the message for keyword using the current Translator.
func T(keyword string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	if msg := tr.Message(keyword, data); msg != "" {
		return msg
	}
	return english(keyword, data)
}
