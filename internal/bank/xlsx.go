package bank

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/yourusername/sql-quiz-bot/internal/domain/entity"
)

// Колонки листа с вопросами:
//
//	A: id
//	B: difficulty_level (1..3)
//	C: question_ru
//	D: question_en
//	E: correct (номер правильного варианта, 1..4)
//	F..: пары option_ru / option_en (до 4 вариантов)
const xlsxFixedColumns = 5

// LoadXLSX загружает банк вопросов из Excel-файла.
// Банки вопросов ведутся методистами в Excel, поэтому поддерживаем
// загрузку напрямую, без промежуточной конвертации.
func LoadXLSX(path string) (*Bank, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open question bank %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	var questions []entity.Question
	for i, row := range rows {
		// Первая строка — заголовки
		if i == 0 {
			continue
		}
		q, err := parseXLSXRow(row)
		if err != nil {
			log.Printf("[Bank] Строка %d пропущена: %v", i+1, err)
			continue
		}
		questions = append(questions, *q)
	}

	return New(questions), nil
}

func parseXLSXRow(row []string) (*entity.Question, error) {
	if len(row) < xlsxFixedColumns+2 {
		return nil, fmt.Errorf("row has %d columns, expected at least %d", len(row), xlsxFixedColumns+2)
	}

	id, err := strconv.Atoi(strings.TrimSpace(row[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid question id %q", row[0])
	}

	difficulty, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid difficulty %q", row[1])
	}

	correct, err := strconv.Atoi(strings.TrimSpace(row[4]))
	if err != nil {
		return nil, fmt.Errorf("invalid correct option index %q", row[4])
	}

	var options []entity.Option
	for col := xlsxFixedColumns; col < len(row); col += 2 {
		ru := strings.TrimSpace(row[col])
		en := ""
		if col+1 < len(row) {
			en = strings.TrimSpace(row[col+1])
		}
		if ru == "" {
			continue
		}
		options = append(options, entity.Option{
			TextRU:    ru,
			TextEN:    en,
			IsCorrect: len(options)+1 == correct,
		})
	}

	if len(options) == 0 {
		return nil, fmt.Errorf("question %d has no options", id)
	}

	return &entity.Question{
		ID:         id,
		Difficulty: difficulty,
		TextRU:     strings.TrimSpace(row[2]),
		TextEN:     strings.TrimSpace(row[3]),
		Options:    options,
	}, nil
}
