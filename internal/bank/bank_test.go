package bank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/sql-quiz-bot/internal/domain/entity"
)

func sampleQuestions() []entity.Question {
	return []entity.Question{
		{
			ID: 1, Difficulty: 1, TextRU: "Вопрос 1",
			Options: []entity.Option{{TextRU: "A", IsCorrect: true}, {TextRU: "B"}},
		},
		{
			ID: 2, Difficulty: 2, TextRU: "Вопрос 2",
			Options: []entity.Option{{TextRU: "A"}, {TextRU: "B", IsCorrect: true}, {TextRU: "C"}},
		},
		{
			ID: 3, Difficulty: 3, TextRU: "Вопрос 3",
			Options: []entity.Option{{TextRU: "A", IsCorrect: true}, {TextRU: "B"}},
		},
	}
}

func TestBank_ByDifficulty(t *testing.T) {
	b := New(sampleQuestions())

	assert.Equal(t, 3, b.Size())
	assert.Len(t, b.ByDifficulty(1), 1)
	assert.Len(t, b.ByDifficulty(2), 1)
	assert.Empty(t, b.ByDifficulty(99), "Неизвестный уровень дает пустой пул")
}

func TestBank_Validate_CleanBank(t *testing.T) {
	b := New(sampleQuestions())

	assert.Empty(t, b.Validate())
}

func TestBank_Validate_Warnings(t *testing.T) {
	b := New([]entity.Question{
		{
			// Нет правильного варианта
			ID: 1, Difficulty: 1,
			Options: []entity.Option{{TextRU: "A"}, {TextRU: "B"}},
		},
		{
			// Недопустимый уровень сложности
			ID: 2, Difficulty: 7,
			Options: []entity.Option{{TextRU: "A", IsCorrect: true}, {TextRU: "B"}},
		},
		{
			// Всего один вариант
			ID: 3, Difficulty: 1,
			Options: []entity.Option{{TextRU: "A", IsCorrect: true}},
		},
	})

	warnings := b.Validate()

	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "question 1 has no correct option")
	assert.Contains(t, warnings[1], "question 2 has unknown difficulty 7")
	assert.Contains(t, warnings[2], "question 3 has 1 options")
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.json")
	data := `[
		{
			"id": 1,
			"difficulty_level": 2,
			"question_ru": "Вопрос",
			"question_en": "Question",
			"options": [
				{"option_ru": "Да", "option_en": "Yes", "is_correct": true},
				{"option_ru": "Нет", "option_en": "No", "is_correct": false}
			]
		}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	b, err := LoadJSON(path)

	require.NoError(t, err)
	require.Equal(t, 1, b.Size())
	q := b.Questions()[0]
	assert.Equal(t, 2, q.Difficulty)
	assert.Equal(t, "Вопрос", q.TextRU)
	require.Len(t, q.Options, 2)
	assert.True(t, q.Options[0].IsCorrect)
	assert.Equal(t, "Yes", q.Options[0].TextEN)
}

func TestLoadJSON_MissingFile(t *testing.T) {
	b, err := LoadJSON(filepath.Join(t.TempDir(), "nope.json"))

	assert.Nil(t, b)
	assert.ErrorContains(t, err, "failed to read question bank")
}

func TestLoadJSON_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	b, err := LoadJSON(path)

	assert.Nil(t, b)
	assert.ErrorContains(t, err, "failed to parse question bank")
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	b, err := Load("questions.csv")

	assert.Nil(t, b)
	assert.ErrorContains(t, err, "unsupported question bank format")
}
