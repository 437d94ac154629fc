package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/sql-quiz-bot/internal/service"
)

// StatsHandler обрабатывает административные HTTP-запросы к статистике
type StatsHandler struct {
	quiz *service.QuizService
}

// NewStatsHandler создает новый обработчик статистики
func NewStatsHandler(quiz *service.QuizService) *StatsHandler {
	return &StatsHandler{quiz: quiz}
}

// Health обрабатывает запрос проверки живости
func (h *StatsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetStats возвращает статистику одного пользователя
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	stats := h.quiz.GetStats(userID)
	if stats == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no stats for user"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ResetStats удаляет статистику одного пользователя
func (h *StatsHandler) ResetStats(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.quiz.ResetStats(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
