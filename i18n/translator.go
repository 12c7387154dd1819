package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "allowed").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "missing_type":
			return "type は必須です"
		case "invalid_type":
			return "型が不正です"
		case "invalid_format":
			return "フォーマットが不正です"
		case "invalid_bound":
			return "数値境界が不正です"
		case "invalid_enum":
			return "enum は空でない配列が必要です"
		case "invalid_flag":
			return "真偽値が必要です"
		case "invalid_property_shape":
			return "プロパティ定義はオブジェクトが必要です"
		case "invalid_mime_type":
			return "MIME タイプが不正です"
		case "invalid_max_size":
			return "maxSize が不正です"
		case "invalid_tag":
			return "タグが不正です"
		case "max_depth_exceeded":
			return "ネストが深すぎます"
		case "parse_error":
			return "解析エラー"
		}
	default: // "en"
		switch code {
		case "missing_type":
			return "property type is required"
		case "invalid_type":
			return "invalid property type"
		case "invalid_format":
			return "invalid string format"
		case "invalid_bound":
			return "invalid numeric bound"
		case "invalid_enum":
			return "enum must be a non-empty array"
		case "invalid_flag":
			return "expected a boolean flag"
		case "invalid_property_shape":
			return "property definition must be an object"
		case "invalid_mime_type":
			return "invalid mime type"
		case "invalid_max_size":
			return "invalid max size"
		case "invalid_tag":
			return "invalid tag"
		case "max_depth_exceeded":
			return "maximum nesting depth exceeded"
		case "parse_error":
			return "parse error"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
