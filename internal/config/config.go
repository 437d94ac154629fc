package config

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server   ServerConfig
	Telegram TelegramConfig
	Quiz     QuizConfig
	Bank     BankConfig
	Stats    StatsConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

// ServerConfig содержит настройки административного HTTP сервера
type ServerConfig struct {
	Port string

	// ReadTimeout/WriteTimeout — таймауты HTTP сервера в секундах
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// TelegramConfig содержит настройки Telegram-бота
type TelegramConfig struct {
	Token string
	Debug bool
	// PollTimeout — таймаут long polling в секундах
	PollTimeout int `mapstructure:"poll_timeout"`
}

// QuizConfig содержит настройки теста
type QuizConfig struct {
	Size            int `mapstructure:"size"`
	DurationMinutes int `mapstructure:"duration_minutes"`
	PassingScore    int `mapstructure:"passing_score"`
}

// BankConfig содержит настройки банка вопросов
type BankConfig struct {
	// Path — путь к файлу банка (.json или .xlsx)
	Path string
}

// StatsConfig содержит настройки хранилища статистики
type StatsConfig struct {
	// Backend: "file", "postgres" или "redis". По умолчанию "file".
	Backend string

	// FilePath — путь к stats.json для файлового бэкенда
	FilePath string `mapstructure:"file_path"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single'.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	// MaxRetries: Максимальное количество попыток переподключения
	MaxRetries int `mapstructure:"max_retries"`

	// MinRetryBackoff: Минимальный интервал между попытками (мс)
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`

	// MaxRetryBackoff: Максимальный интервал между попытками (мс)
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Новый экземпляр Viper, чтобы избежать глобального состояния

	// 1. Значения по умолчанию
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 10)
	vip.SetDefault("server.write_timeout", 10)
	vip.SetDefault("telegram.poll_timeout", 60)
	vip.SetDefault("quiz.size", 20)
	vip.SetDefault("quiz.duration_minutes", 60)
	vip.SetDefault("quiz.passing_score", 50)
	vip.SetDefault("bank.path", "data/database_test_questions.json")
	vip.SetDefault("stats.backend", "file")
	vip.SetDefault("stats.file_path", "data/stats.json")

	// 2. Привязываем переменные окружения ЯВНО
	vip.BindEnv("telegram.token", "BOT_TOKEN")
	vip.BindEnv("telegram.debug", "BOT_DEBUG")

	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	vip.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")

	vip.BindEnv("quiz.size", "QUIZ_SIZE")
	vip.BindEnv("quiz.duration_minutes", "QUIZ_DURATION_MINUTES")
	vip.BindEnv("quiz.passing_score", "QUIZ_PASSING_SCORE")

	vip.BindEnv("bank.path", "BANK_PATH")

	vip.BindEnv("stats.backend", "STATS_BACKEND")
	vip.BindEnv("stats.file_path", "STATS_FILE_PATH")

	// Привязка для секции Database
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")

	// Привязка для секции Redis
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	// 3. Файл конфигурации (не страшно, если его нет: есть BindEnv)
	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	// 4. Анмаршалим конфигурацию
	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Логирование конфигурации (без секретов)
	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Telegram Token Set: %t", cfg.Telegram.Token != "")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Quiz Size: %d", cfg.Quiz.Size)
		log.Printf("Quiz Duration (min): %d", cfg.Quiz.DurationMinutes)
		log.Printf("Quiz Passing Score: %d", cfg.Quiz.PassingScore)
		log.Printf("Bank Path: %s", cfg.Bank.Path)
		log.Printf("Stats Backend: %s", cfg.Stats.Backend)
		log.Printf("-----------------------------------------")
	}

	// 6. Проверка обязательных параметров
	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram bot token is required in config (check BOT_TOKEN env var)")
	}
	switch cfg.Stats.Backend {
	case "file":
		if cfg.Stats.FilePath == "" {
			return nil, fmt.Errorf("stats file path is required for the file backend (check STATS_FILE_PATH env var)")
		}
	case "postgres":
		if cfg.Database.Host == "" || cfg.Database.DBName == "" || cfg.Database.User == "" {
			return nil, fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
		}
	case "redis":
		if len(cfg.Redis.Addrs) == 0 && cfg.Redis.Addr == "" {
			return nil, fmt.Errorf("redis configuration (addr or addrs) is required for the redis backend (check REDIS_ADDR env var)")
		}
	default:
		return nil, fmt.Errorf("unsupported stats backend: %s", cfg.Stats.Backend)
	}
	if cfg.Quiz.Size <= 0 || cfg.Quiz.DurationMinutes <= 0 {
		return nil, fmt.Errorf("quiz size and duration must be positive")
	}

	return &cfg, nil
}
