package config

import (
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// DefaultTimeSlots каталог слотов по умолчанию
var DefaultTimeSlots = []string{
	"08:00 - 10:00",
	"10:00 - 12:00",
	"12:00 - 14:00",
	"14:00 - 16:00",
	"16:00 - 18:00",
	"18:00 - 20:00",
	"20:00 - 22:00",
	"22:00 - 00:00",
	"Dia Inteiro (08:00 - 00:00)",
}

const (
	defaultFullDaySlot    = "Dia Inteiro (08:00 - 00:00)"
	defaultMigrationsPath = "migrations"
	defaultCacheTTL       = 5 * time.Minute
)

type Config struct {
	TelegramToken  string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN          string `mapstructure:"DB_DSN"`
	Environment    string `mapstructure:"ENV"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`

	Location     *time.Location `mapstructure:"TIMEZONE"`
	FirstWeekday time.Weekday   `mapstructure:"FIRST_WEEKDAY"`
	TimeSlots    []string       `mapstructure:"TIME_SLOTS"`
	FullDaySlot  string         `mapstructure:"FULL_DAY_SLOT"`
	SlotPolicy   string         `mapstructure:"SLOT_POLICY"`

	AdminTelegramIDs []int64 `mapstructure:"ADMIN_TELEGRAM_IDS"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из функции чтения переменных
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DBDSN:          getenv("DB_DSN"),
		TelegramToken:  getenv("TELEGRAM_TOKEN"),
		Environment:    getenv("ENV"),
		LogLevel:       getenv("LOG_LEVEL"),
		MigrationsPath: getenv("MIGRATIONS_PATH"),
		RedisAddr:      getenv("REDIS_ADDR"),
		RedisPassword:  getenv("REDIS_PASSWORD"),
		FullDaySlot:    getenv("FULL_DAY_SLOT"),
		SlotPolicy:     getenv("SLOT_POLICY"),
		CacheTTL:       defaultCacheTTL,
		Location:       time.Local,
		FirstWeekday:   time.Sunday,
		TimeSlots:      DefaultTimeSlots,
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = defaultMigrationsPath
	}
	if cfg.FullDaySlot == "" {
		cfg.FullDaySlot = defaultFullDaySlot
	}
	if cfg.SlotPolicy == "" {
		cfg.SlotPolicy = "exact"
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}

	if v := getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if v := getenv("CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = ttl
	}

	if v := getenv("TIMEZONE"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return nil, fmt.Errorf("parse TIMEZONE: %w", err)
		}
		cfg.Location = loc
	}

	if v := getenv("FIRST_WEEKDAY"); v != "" {
		wd, err := parseWeekday(v)
		if err != nil {
			return nil, err
		}
		cfg.FirstWeekday = wd
	}

	if v := getenv("TIME_SLOTS"); v != "" {
		cfg.TimeSlots = splitList(v, ";")
		if len(cfg.TimeSlots) == 0 {
			return nil, fmt.Errorf("TIME_SLOTS has no labels")
		}
	}

	if v := getenv("ADMIN_TELEGRAM_IDS"); v != "" {
		for _, raw := range splitList(v, ",") {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse ADMIN_TELEGRAM_IDS %q: %w", raw, err)
			}
			cfg.AdminTelegramIDs = append(cfg.AdminTelegramIDs, id)
		}
	}

	// при full_day_exclusive метка "весь день" обязана быть в каталоге
	if strings.EqualFold(strings.TrimSpace(cfg.SlotPolicy), "full_day_exclusive") &&
		!slices.Contains(cfg.TimeSlots, cfg.FullDaySlot) {
		return nil, fmt.Errorf("FULL_DAY_SLOT %q is not in TIME_SLOTS", cfg.FullDaySlot)
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// IsAdminTelegramID входит ли пользователь в список администраторов из окружения
func (c *Config) IsAdminTelegramID(telegramID int64) bool {
	for _, id := range c.AdminTelegramIDs {
		if id == telegramID {
			return true
		}
	}
	return false
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday", "sun", "0":
		return time.Sunday, nil
	case "monday", "mon", "1":
		return time.Monday, nil
	default:
		return 0, fmt.Errorf("FIRST_WEEKDAY must be sunday or monday, got %q", s)
	}
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
