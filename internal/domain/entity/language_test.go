package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguageMode(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected LanguageMode
		ok       bool
	}{
		{name: "ru", raw: "ru", expected: LangRU, ok: true},
		{name: "en", raw: "en", expected: LangEN, ok: true},
		{name: "both", raw: "both", expected: LangBoth, ok: true},
		{name: "Регистр и пробелы не важны", raw: "  EN ", expected: LangEN, ok: true},
		{name: "Неизвестный режим", raw: "fr", ok: false},
		{name: "Пустой ввод", raw: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, ok := ParseLanguageMode(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, mode)
			}
		})
	}
}

func TestPickText_EmptyEnglishFallsBack(t *testing.T) {
	assert.Equal(t, "Привет", PickText("Привет", "", LangEN),
		"Пустой перевод всегда заменяется русским текстом")
	assert.Equal(t, "Привет", PickText("Привет", "   ", LangBoth),
		"Перевод из одних пробелов считается пустым")
}

func TestPickText_BothAppendsTranslation(t *testing.T) {
	assert.Equal(t, "Привет\n\nEN: Hello", PickText("Привет", "Hello", LangBoth))
}
