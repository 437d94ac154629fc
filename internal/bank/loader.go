package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/sql-quiz-bot/internal/domain/entity"
)

// LoadJSON загружает банк вопросов из JSON-файла
// (формат database_test_questions.json)
func LoadJSON(path string) (*Bank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank %s: %w", path, err)
	}

	var questions []entity.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("failed to parse question bank %s: %w", path, err)
	}

	return New(questions), nil
}

// Load загружает банк вопросов, определяя формат по расширению файла
func Load(path string) (*Bank, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".xlsx":
		return LoadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported question bank format: %s", filepath.Ext(path))
	}
}

func warningf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
