package bank

import (
	"github.com/yourusername/sql-quiz-bot/internal/domain/entity"
)

// Bank — неизменяемый банк вопросов, загружаемый один раз при старте процесса
type Bank struct {
	questions    []entity.Question
	byDifficulty map[int][]entity.Question
}

// New создает банк и строит разбиение по уровням сложности
func New(questions []entity.Question) *Bank {
	byDifficulty := make(map[int][]entity.Question)
	for _, q := range questions {
		byDifficulty[q.Difficulty] = append(byDifficulty[q.Difficulty], q)
	}
	return &Bank{
		questions:    questions,
		byDifficulty: byDifficulty,
	}
}

// Size возвращает общее количество вопросов в банке
func (b *Bank) Size() int {
	return len(b.questions)
}

// Questions возвращает все вопросы банка
func (b *Bank) Questions() []entity.Question {
	return b.questions
}

// ByDifficulty возвращает пул вопросов заданного уровня сложности
func (b *Bank) ByDifficulty(level int) []entity.Question {
	return b.byDifficulty[level]
}

// Validate возвращает список замечаний к данным банка: вопросы без
// правильного варианта, с недопустимым уровнем сложности или с числом
// вариантов вне 2..4. Замечания не фатальны: движок деградирует мягко.
func (b *Bank) Validate() []string {
	var warnings []string
	for _, q := range b.questions {
		if q.CorrectOption() == nil {
			warnings = append(warnings, warningf("question %d has no correct option", q.ID))
		}
		if q.Difficulty < entity.MinDifficulty || q.Difficulty > entity.MaxDifficulty {
			warnings = append(warnings, warningf("question %d has unknown difficulty %d", q.ID, q.Difficulty))
		}
		if len(q.Options) < 2 || len(q.Options) > 4 {
			warnings = append(warnings, warningf("question %d has %d options, expected 2..4", q.ID, len(q.Options)))
		}
	}
	return warnings
}
