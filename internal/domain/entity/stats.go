package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// DifficultyStats хранит накопленную статистику по одному уровню сложности
type DifficultyStats struct {
	Asked          int `json:"asked"`
	Correct        int `json:"correct"`
	Points         int `json:"points"`
	PointsPossible int `json:"pointsPossible"`
}

// DifficultyMap — статистика по уровням сложности. Пользовательский тип
// для хранения в JSONB: Postgres-бэкенд пишет её одной колонкой.
type DifficultyMap map[int]*DifficultyStats

// Scan реализует интерфейс sql.Scanner для DifficultyMap
func (m *DifficultyMap) Scan(value interface{}) error {
	if value == nil {
		*m = DifficultyMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}
	if len(bytes) == 0 {
		*m = DifficultyMap{}
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Value реализует интерфейс driver.Valuer для DifficultyMap
func (m DifficultyMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// LastQuizResult — снимок последнего завершённого теста пользователя
type LastQuizResult struct {
	Total      int       `json:"total"`
	Correct    int       `json:"correct"`
	Score      int       `json:"score"`
	MaxScore   int       `json:"maxScore"`
	Passed     bool      `json:"passed"`
	FinishedAt time.Time `json:"finishedAt"`
	Reason     string    `json:"reason"`
}

// Scan реализует интерфейс sql.Scanner для LastQuizResult
func (l *LastQuizResult) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}
	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Value реализует интерфейс driver.Valuer для LastQuizResult
func (l *LastQuizResult) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// UserStats представляет накопленную статистику одного пользователя.
// JSON-теги совпадают с форматом файла stats.json, gorm-теги описывают
// таблицу user_stats для Postgres-бэкенда.
type UserStats struct {
	UserID              int64           `gorm:"primaryKey" json:"-"`
	TotalQuizzes        int             `gorm:"not null;default:0" json:"totalQuizzes"`
	TotalQuestions      int             `gorm:"not null;default:0" json:"totalQuestions"`
	CorrectAnswers      int             `gorm:"not null;default:0" json:"correctAnswers"`
	IncorrectAnswers    int             `gorm:"not null;default:0" json:"incorrectAnswers"`
	TotalPoints         int             `gorm:"not null;default:0" json:"totalPoints"`
	TotalPointsPossible int             `gorm:"not null;default:0" json:"totalPointsPossible"`
	PerDifficulty       DifficultyMap   `gorm:"type:jsonb;not null" json:"perDifficulty"`
	LastQuiz            *LastQuizResult `gorm:"type:jsonb" json:"lastQuiz"`
	UpdatedAt           time.Time       `json:"-"`
}

// TableName определяет имя таблицы для GORM
func (UserStats) TableName() string {
	return "user_stats"
}

// NewUserStats создает пустую запись статистики с нулевыми счетчиками
// по всем уровням сложности
func NewUserStats(userID int64) *UserStats {
	s := &UserStats{
		UserID:        userID,
		PerDifficulty: DifficultyMap{},
	}
	s.Normalize()
	return s
}

// Normalize восстанавливает отсутствующие корзины сложности.
// Записи, сохранённые старыми версиями, могли не иметь части полей.
func (s *UserStats) Normalize() {
	if s.PerDifficulty == nil {
		s.PerDifficulty = DifficultyMap{}
	}
	for level := MinDifficulty; level <= MaxDifficulty; level++ {
		if s.PerDifficulty[level] == nil {
			s.PerDifficulty[level] = &DifficultyStats{}
		}
	}
}

// Bucket возвращает корзину статистики для уровня сложности,
// создавая её при необходимости
func (s *UserStats) Bucket(level int) *DifficultyStats {
	if s.PerDifficulty == nil {
		s.PerDifficulty = DifficultyMap{}
	}
	if s.PerDifficulty[level] == nil {
		s.PerDifficulty[level] = &DifficultyStats{}
	}
	return s.PerDifficulty[level]
}

// Accuracy возвращает процент правильных ответов (0..100)
func (s *UserStats) Accuracy() int {
	if s.TotalQuestions == 0 {
		return 0
	}
	return int(float64(s.CorrectAnswers)/float64(s.TotalQuestions)*100 + 0.5)
}

// Clone возвращает глубокую копию записи. Используется, чтобы отдавать
// статистику наружу без гонок с записью.
func (s *UserStats) Clone() *UserStats {
	if s == nil {
		return nil
	}
	cp := *s
	cp.PerDifficulty = DifficultyMap{}
	for level, bucket := range s.PerDifficulty {
		if bucket != nil {
			b := *bucket
			cp.PerDifficulty[level] = &b
		}
	}
	if s.LastQuiz != nil {
		lq := *s.LastQuiz
		cp.LastQuiz = &lq
	}
	return &cp
}
