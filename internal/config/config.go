package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"budgetbot/internal/schedule"
)

type Config struct {
	// HTTP server (liveness + webhook)
	Port string

	// Chat transport
	BotToken   string
	BotAPIBase string

	// Recipient lists. AllowedSenders may submit records and commands;
	// ReportRecipients receive the scheduled reports. They may differ.
	AllowedSenders   []int64
	ReportRecipients []int64

	// Ledger backend selection
	DataBackend         string
	GoogleSpreadsheetID string
	SQLiteDBPath        string

	// Category rules (optional file; built-in defaults otherwise)
	CategoryRulesFile string

	// AMQP mirror pipeline (optional; empty URL disables it)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Report schedule
	DailyReportAt    string
	WeeklyReportAt   string
	WeeklyReportDay  string
	MonthEndReportAt string

	// Keep-warm self ping (optional; empty URL disables it)
	SelfPingURL      string
	SelfPingInterval time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		BotToken:   getEnv("TELEGRAM_TOKEN", ""),
		BotAPIBase: getEnv("BOT_API_BASE", ""),

		AllowedSenders:   getEnvInt64List("ALLOWED_CHAT_IDS", nil),
		ReportRecipients: getEnvInt64List("REPORT_CHAT_IDS", nil),

		DataBackend:         getEnv("DATA_BACKEND", "sheets"),
		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		SQLiteDBPath:        getEnv("SQLITE_DB_PATH", "./data/budgetbot.db"),

		CategoryRulesFile: getEnv("CATEGORY_RULES_FILE", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "budgetbot"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "mirror_records"),

		DailyReportAt:    getEnv("DAILY_REPORT_AT", "22:00"),
		WeeklyReportAt:   getEnv("WEEKLY_REPORT_AT", "22:30"),
		WeeklyReportDay:  getEnv("WEEKLY_REPORT_DAY", "Sunday"),
		MonthEndReportAt: getEnv("MONTH_END_REPORT_AT", "23:59"),

		SelfPingURL:      getEnv("SELF_PING_URL", ""),
		SelfPingInterval: getEnvDuration("SELF_PING_INTERVAL", 10*time.Minute),
	}

	// Report recipients default to the allowed senders.
	if len(cfg.ReportRecipients) == 0 {
		cfg.ReportRecipients = append([]int64(nil), cfg.AllowedSenders...)
	}

	return cfg
}

// Validate checks the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if strings.TrimSpace(c.BotToken) == "" {
		errs = append(errs, "TELEGRAM_TOKEN is required")
	}
	if len(c.AllowedSenders) == 0 {
		errs = append(errs, "ALLOWED_CHAT_IDS must list at least one chat id")
	}

	switch c.DataBackend {
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			errs = append(errs, "GOOGLE_SPREADSHEET_ID is required when using sheets backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	case "memory":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [sheets sqlite memory]", c.DataBackend))
	}

	if c.CategoryRulesFile != "" {
		if _, err := os.Stat(c.CategoryRulesFile); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("category rules file does not exist: %s", c.CategoryRulesFile))
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if _, err := c.ScheduleTimes(); err != nil {
		errs = append(errs, err.Error())
	}

	if c.SelfPingURL != "" {
		if c.SelfPingInterval < time.Minute {
			errs = append(errs, fmt.Sprintf("invalid self ping interval %v: must be at least 1 minute", c.SelfPingInterval))
		}
		if parsedURL, err := url.Parse(c.SelfPingURL); err != nil || parsedURL.Scheme == "" {
			errs = append(errs, fmt.Sprintf("invalid self ping URL '%s'", c.SelfPingURL))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// ScheduleTimes parses the report schedule into slot times.
func (c *Config) ScheduleTimes() (schedule.Times, error) {
	daily, err := schedule.ParseTimeOfDay(c.DailyReportAt)
	if err != nil {
		return schedule.Times{}, fmt.Errorf("DAILY_REPORT_AT: %w", err)
	}
	weekly, err := schedule.ParseTimeOfDay(c.WeeklyReportAt)
	if err != nil {
		return schedule.Times{}, fmt.Errorf("WEEKLY_REPORT_AT: %w", err)
	}
	day, err := parseWeekday(c.WeeklyReportDay)
	if err != nil {
		return schedule.Times{}, fmt.Errorf("WEEKLY_REPORT_DAY: %w", err)
	}
	monthEnd, err := schedule.ParseTimeOfDay(c.MonthEndReportAt)
	if err != nil {
		return schedule.Times{}, fmt.Errorf("MONTH_END_REPORT_AT: %w", err)
	}
	return schedule.Times{
		Daily:     daily,
		WeeklyDay: day,
		Weekly:    weekly,
		MonthEnd:  monthEnd,
	}, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", s)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvInt64List(key string, defaultValue []int64) []int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []int64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return defaultValue
		}
		out = append(out, id)
	}
	return out
}
