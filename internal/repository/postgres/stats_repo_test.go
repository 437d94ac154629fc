package postgres

import (
	"testing"
)

// TestStatsRepo_Save_UpdateWritesZeroFields — после конфликта 23505
// обновление должно переписать ВСЕ колонки, включая нулевые (Select("*")):
// запись, у которой счётчик стал нулём, обязана сохраниться целиком,
// а не частично.
func TestStatsRepo_Save_UpdateWritesZeroFields(t *testing.T) {
	t.Skip("Save требует живую PostgreSQL, рекомендуется интеграционный тест")
}

// TestStatsRepo_SaveAll_Transactional — SaveAll пишет весь набор в одной
// транзакции: падение на одной записи откатывает остальные.
func TestStatsRepo_SaveAll_Transactional(t *testing.T) {
	t.Skip("SaveAll требует живую PostgreSQL, рекомендуется интеграционный тест")
}
