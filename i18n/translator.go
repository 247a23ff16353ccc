package i18n

import "strings"

// Translator retrieves localized messages for error codes.
// data provides optional values substituted into the message ("field",
// "expected", "got", ...), written as {name} placeholders.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var tmpl string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			tmpl = "{field}<{expected}> に {got} は設定できません。{expected} を使用してください"
		case "invalid_element":
			tmpl = "{field} の各要素は {expected} である必要があります。{got} が使われました"
		case "not_array":
			tmpl = "{field} に {got} は設定できません。配列を使用してください"
		case "required":
			tmpl = "必須フィールド {field} に値がありません"
		case "validator":
			tmpl = "{field} の検証に失敗しました"
		case "unknown_rule":
			tmpl = "{field} のルールが不正です"
		case "config":
			tmpl = "設定が不正です"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			tmpl = "you cannot set {field}<{expected}> to {got}; use {expected} instead"
		case "invalid_element":
			tmpl = "each element of {field} must match the type {expected}; you used {got}"
		case "not_array":
			tmpl = "you cannot set {field} value type {got}; use an array instead"
		case "required":
			tmpl = "{field} is required and cannot be null or undefined"
		case "validator":
			tmpl = "validation of {field} failed"
		case "unknown_rule":
			tmpl = "{field} has an unrecognized rule"
		case "config":
			tmpl = "invalid configuration"
		}
	}
	if tmpl == "" {
		return code
	}
	return expand(tmpl, data)
}

func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
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
