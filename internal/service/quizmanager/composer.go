package quizmanager

import (
	"math/rand"

	"github.com/yourusername/sql-quiz-bot/internal/bank"
	"github.com/yourusername/sql-quiz-bot/internal/domain/entity"
)

// Composer собирает случайный тест из банка вопросов:
// стратифицированная выборка по уровням сложности с добором из всего
// банка, если какой-то пул оказался меньше целевого количества.
type Composer struct {
	config *Config
}

// NewComposer создает новый сборщик тестов
func NewComposer(config *Config) *Composer {
	return &Composer{config: config}
}

// Compose возвращает вопросы нового теста. Варианты каждого вопроса
// перемешаны независимо, итоговый список перемешан ещё раз, чтобы уровни
// сложности чередовались. Для пустого банка возвращает пустой список.
func (c *Composer) Compose(b *bank.Bank) []entity.Question {
	usedIDs := make(map[int]bool)
	selected := make([]entity.Question, 0, c.config.QuizSize)

	// Стратифицированная выборка: столько вопросов каждого уровня,
	// сколько задано настройками; меньший пул забирается целиком.
	for level := entity.MinDifficulty; level <= entity.MaxDifficulty; level++ {
		target := c.config.Setting(level).Count
		if target <= 0 {
			continue
		}
		pool := shuffled(b.ByDifficulty(level))
		for _, q := range pool {
			if target <= 0 {
				break
			}
			if usedIDs[q.ID] {
				continue
			}
			usedIDs[q.ID] = true
			selected = append(selected, withShuffledOptions(q))
			target--
		}
	}

	// Добор из всего банка, если стратифицированная выборка не добрала
	// до размера теста
	if len(selected) < c.config.QuizSize {
		for _, q := range shuffled(b.Questions()) {
			if len(selected) >= c.config.QuizSize {
				break
			}
			if usedIDs[q.ID] {
				continue
			}
			usedIDs[q.ID] = true
			selected = append(selected, withShuffledOptions(q))
		}
	}

	rand.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	if len(selected) > c.config.QuizSize {
		selected = selected[:c.config.QuizSize]
	}
	return selected
}

// MaxScore возвращает максимально возможный балл за набор вопросов
func (c *Composer) MaxScore(questions []entity.Question) int {
	sum := 0
	for _, q := range questions {
		sum += c.config.Points(q.Difficulty)
	}
	return sum
}

// shuffled возвращает перемешанную копию списка вопросов
func shuffled(questions []entity.Question) []entity.Question {
	cp := make([]entity.Question, len(questions))
	copy(cp, questions)
	rand.Shuffle(len(cp), func(i, j int) {
		cp[i], cp[j] = cp[j], cp[i]
	})
	return cp
}

// withShuffledOptions возвращает копию вопроса с независимо перемешанными
// вариантами. Флаг правильности остается привязан к своему варианту.
func withShuffledOptions(q entity.Question) entity.Question {
	options := make([]entity.Option, len(q.Options))
	copy(options, q.Options)
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	q.Options = options
	return q
}
