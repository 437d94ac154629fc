package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yourusername/sql-quiz-bot/internal/bank"
	"github.com/yourusername/sql-quiz-bot/internal/config"
	"github.com/yourusername/sql-quiz-bot/internal/domain/repository"
	"github.com/yourusername/sql-quiz-bot/internal/handler"
	fileRepo "github.com/yourusername/sql-quiz-bot/internal/repository/file"
	pgRepo "github.com/yourusername/sql-quiz-bot/internal/repository/postgres"
	redisRepo "github.com/yourusername/sql-quiz-bot/internal/repository/redis"
	"github.com/yourusername/sql-quiz-bot/internal/service"
	"github.com/yourusername/sql-quiz-bot/internal/service/quizmanager"
	"github.com/yourusername/sql-quiz-bot/internal/telegram"
	"github.com/yourusername/sql-quiz-bot/pkg/database"
)

func main() {
	// .env для локальной разработки; отсутствие файла — не ошибка
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используются переменные окружения")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Банк вопросов загружается один раз при старте
	questionBank, err := bank.Load(cfg.Bank.Path)
	if err != nil {
		log.Printf("Failed to load question bank: %v", err)
		os.Exit(1)
	}
	log.Printf("Банк вопросов загружен: %d вопросов", questionBank.Size())
	for _, warning := range questionBank.Validate() {
		log.Printf("[Bank] Предупреждение: %s", warning)
	}

	statsRepo, err := newStatsRepository(cfg)
	if err != nil {
		log.Printf("Failed to initialize stats repository: %v", err)
		os.Exit(1)
	}

	statsService, err := service.NewStatsService(statsRepo)
	if err != nil {
		log.Printf("Failed to initialize stats service: %v", err)
		os.Exit(1)
	}

	// Конфигурация движка: фиксированные уровни сложности, размер и
	// длительность из конфига
	quizConfig := quizmanager.DefaultConfig()
	quizConfig.QuizSize = cfg.Quiz.Size
	quizConfig.Duration = time.Duration(cfg.Quiz.DurationMinutes) * time.Minute
	quizConfig.PassingScore = cfg.Quiz.PassingScore

	deps := &quizmanager.Dependencies{
		Bank:  questionBank,
		Stats: statsService,
	}
	engine := quizmanager.NewEngine(quizConfig, deps)
	quizService := service.NewQuizService(engine, statsService)

	bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.Debug, cfg.Telegram.PollTimeout, quizService, quizConfig)
	if err != nil {
		log.Printf("Failed to create telegram bot: %v", err)
		os.Exit(1)
	}
	// Бот доставляет вопросы и итоги; движку он нужен как Notifier
	deps.Notifier = bot

	// Административный HTTP-сервер: здоровье и чтение статистики
	router := gin.Default()
	router.Use(cors.Default())

	statsHandler := handler.NewStatsHandler(quizService)
	router.GET("/health", statsHandler.Health)
	api := router.Group("/api")
	{
		api.GET("/stats/:user_id", statsHandler.GetStats)
		api.POST("/stats/:user_id/reset", statsHandler.ResetStats)
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Административный сервер запущен на порту %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	go bot.Start()
	log.Println("Бот запущен")

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Завершение работы...")

	bot.Stop()
	quizService.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Ошибка остановки HTTP сервера: %v", err)
	}

	log.Println("Бот остановлен")
}

// newStatsRepository выбирает бэкенд хранилища статистики по конфигурации
func newStatsRepository(cfg *config.Config) (repository.StatsRepository, error) {
	switch cfg.Stats.Backend {
	case "postgres":
		db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
		if err != nil {
			return nil, err
		}
		if err := database.MigrateDB(db); err != nil {
			return nil, err
		}
		return pgRepo.NewStatsRepo(db), nil

	case "redis":
		client, err := database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return redisRepo.NewStatsRepo(client)

	default:
		return fileRepo.NewStatsRepo(cfg.Stats.FilePath)
	}
}
