package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/yourusername/sql-quiz-bot/internal/bank"
)

// Конвертер банка вопросов: xlsx методистов -> json, который читает бот
func main() {
	in := flag.String("in", "", "путь к xlsx-файлу с вопросами")
	out := flag.String("out", "data/database_test_questions.json", "путь к итоговому json")
	flag.Parse()

	if *in == "" {
		log.Println("Использование: import-questions -in questions.xlsx [-out data/database_test_questions.json]")
		os.Exit(1)
	}

	b, err := bank.LoadXLSX(*in)
	if err != nil {
		log.Printf("Ошибка загрузки %s: %v", *in, err)
		os.Exit(1)
	}

	log.Printf("Загружено вопросов: %d", b.Size())
	for _, warning := range b.Validate() {
		log.Printf("Предупреждение: %s", warning)
	}

	data, err := json.MarshalIndent(b.Questions(), "", "  ")
	if err != nil {
		log.Printf("Ошибка сериализации: %v", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Printf("Ошибка записи %s: %v", *out, err)
		os.Exit(1)
	}

	log.Printf("Банк вопросов записан в %s", *out)
}
