package entity

import "strings"

// LanguageMode определяет, на каком языке показывать тексты пользователю
type LanguageMode string

const (
	LangRU   LanguageMode = "ru"
	LangEN   LanguageMode = "en"
	LangBoth LanguageMode = "both"
)

// DefaultLanguageMode — режим по умолчанию для новых пользователей
const DefaultLanguageMode = LangBoth

// ParseLanguageMode разбирает пользовательский ввод режима языка
func ParseLanguageMode(raw string) (LanguageMode, bool) {
	switch LanguageMode(strings.ToLower(strings.TrimSpace(raw))) {
	case LangRU:
		return LangRU, true
	case LangEN:
		return LangEN, true
	case LangBoth:
		return LangBoth, true
	}
	return "", false
}

// PickText выбирает вариант текста по режиму языка.
// Пустой EN-вариант всегда заменяется русским.
// В режиме both английский перевод добавляется отдельной строкой.
func PickText(ru, en string, mode LanguageMode) string {
	ru = strings.TrimSpace(ru)
	en = strings.TrimSpace(en)

	switch mode {
	case LangRU:
		return ru
	case LangEN:
		if en == "" {
			return ru
		}
		return en
	}

	// both
	if en == "" {
		return ru
	}
	return ru + "\n\nEN: " + en
}
