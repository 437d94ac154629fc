package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNoActiveSession используется, когда у пользователя нет запущенного теста.
	ErrNoActiveSession = errors.New("no active session")

	// ErrStaleAnswer используется при ответе на уже пройденный вопрос
	// (в том числе при повторном нажатии на кнопку варианта).
	ErrStaleAnswer = errors.New("stale answer")

	// ErrInvalidOption используется при выборе несуществующего варианта ответа.
	ErrInvalidOption = errors.New("invalid option")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")
)
