package mdxlai

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// LanguageNames maps service language codes to human-readable names for
// prompts and logs.
var LanguageNames = map[string]string{
	LangAuto:    "the source language",
	LangEnglish: "English",
	LangChinese: "Chinese (Simplified)",
	"zh":        "Chinese (Simplified)",
	"zh-TW":     "Chinese (Traditional)",
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(langCode string) string {
	if name, ok := LanguageNames[langCode]; ok {
		return name
	}
	return langCode
}

// ServiceLang returns the translation-service code for a locale.
func ServiceLang(locale Locale) string {
	switch locale {
	case LocaleZH:
		return LangChinese
	case LocaleEN:
		return LangEnglish
	default:
		return string(locale)
	}
}

// NormalizeLocale converts a language tag to a document locale
// (e.g., "zh-CN" → "zh", "en_US" → "en").
func NormalizeLocale(langCode string) Locale {
	base, _, _ := strings.Cut(strings.ReplaceAll(langCode, "_", "-"), "-")
	return Locale(strings.ToLower(base))
}

// isCJK reports whether r falls in the ideograph range used to detect
// Chinese-origin text (CJK Extension A through the Unified Ideographs).
func isCJK(r rune) bool {
	return r >= 0x3400 && r <= 0x9fff
}

var cjkPattern = regexp.MustCompile(`[\x{3400}-\x{9fff}]`)

// HasCJK reports whether text contains any CJK ideograph.
func HasCJK(text string) bool {
	return cjkPattern.MatchString(text)
}

// CJKRatio returns the share of CJK ideographs among all characters of text.
func CJKRatio(text string) float64 {
	total := utf8.RuneCountInString(text)
	if total == 0 {
		return 0
	}
	cjk := 0
	for _, r := range text {
		if isCJK(r) {
			cjk++
		}
	}
	return float64(cjk) / float64(total)
}
