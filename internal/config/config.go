package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

type Config struct {
	Port          string
	Environment   string
	Storage       string // file | postgres
	DBFile        string // путь к JSON-документу для file-хранилища
	DBDSN         string // DSN для postgres-хранилища
	TelegramToken string // токен бота: проверка initData + уведомления
	AdminChatID   int64  // чат для уведомлений о бронированиях (0 = выкл)
	InitDataCache int    // размер LRU-кэша проверенных initData
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		Port:          os.Getenv("PORT"),
		Environment:   os.Getenv("ENV"),
		Storage:       os.Getenv("STORAGE"),
		DBFile:        os.Getenv("DB_FILE"),
		DBDSN:         os.Getenv("DB_DSN"),
		TelegramToken: os.Getenv("TG_BOT_TOKEN"),
	}

	// Дефолтные значения
	if cfg.Port == "" {
		cfg.Port = "4000"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Storage == "" {
		cfg.Storage = StorageFile
	}
	if cfg.DBFile == "" {
		cfg.DBFile = "db.json"
	}

	if raw := os.Getenv("ADMIN_CHAT_ID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("ADMIN_CHAT_ID must be an integer: %w", err)
		}
		cfg.AdminChatID = id
	}

	cfg.InitDataCache = 256
	if raw := os.Getenv("INITDATA_CACHE_SIZE"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("INITDATA_CACHE_SIZE must be a positive integer")
		}
		cfg.InitDataCache = size
	}

	// Проверяем обязательные поля
	switch cfg.Storage {
	case StorageFile:
	case StoragePostgres:
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required when STORAGE=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE %q (expected file or postgres)", cfg.Storage)
	}

	return cfg, nil
}
