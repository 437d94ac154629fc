package entity

// Уровни сложности вопросов (легкий..сложный)
const (
	MinDifficulty = 1
	MaxDifficulty = 3
)

// Option представляет вариант ответа на вопрос
type Option struct {
	TextRU    string `json:"option_ru"`
	TextEN    string `json:"option_en"`
	IsCorrect bool   `json:"is_correct"`
}

// Text возвращает текст варианта для заданного режима языка
func (o *Option) Text(mode LanguageMode) string {
	return PickText(o.TextRU, o.TextEN, mode)
}

// Question представляет вопрос викторины.
// Банк вопросов неизменяем после загрузки; движок доверяет данным
// (ровно один правильный вариант не проверяется).
type Question struct {
	ID         int      `json:"id"`
	Difficulty int      `json:"difficulty_level"`
	TextRU     string   `json:"question_ru"`
	TextEN     string   `json:"question_en"`
	Options    []Option `json:"options"`
}

// Text возвращает текст вопроса для заданного режима языка
func (q *Question) Text(mode LanguageMode) string {
	return PickText(q.TextRU, q.TextEN, mode)
}

// IsValidOption проверяет, является ли выбранный вариант допустимым
func (q *Question) IsValidOption(selectedOption int) bool {
	return selectedOption >= 0 && selectedOption < len(q.Options)
}

// IsCorrect проверяет, является ли выбранный вариант правильным.
// Для недопустимого индекса возвращает false.
func (q *Question) IsCorrect(selectedOption int) bool {
	if !q.IsValidOption(selectedOption) {
		return false
	}
	return q.Options[selectedOption].IsCorrect
}

// CorrectOption возвращает первый помеченный правильным вариант.
// Возвращает nil для вопроса без правильного варианта (пробел в данных,
// такой вопрос засчитывается как отвеченный неверно).
func (q *Question) CorrectOption() *Option {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// OptionsCount возвращает количество вариантов ответа
func (q *Question) OptionsCount() int {
	return len(q.Options)
}
