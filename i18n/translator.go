package i18n

// Translator retrieves localized messages for Issue types.
// data provides optional metadata to embed in the message (for example,
// "expected" or "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "typeError":
			return "引数の型が不正です"
		case "required":
			return "必須の引数が不足しています"
		case "enum":
			return "許可されていない値です"
		case "pattern":
			return "形式が一致しません"
		}
	default: // "en"
		switch code {
		case "typeError":
			if e := data["expected"]; e != "" {
				if g := data["got"]; g != "" {
					return "expected " + e + ", got " + g
				}
				return "expected " + e
			}
			return "unexpected argument type"
		case "required":
			return "required argument missing"
		case "enum":
			return "value is not one of the allowed values"
		case "pattern":
			return "value does not match the required pattern"
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
