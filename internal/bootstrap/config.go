package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ali-aqib/blog/internal/infra/setup"
)

// Config 结构体用于存储从环境变量或 .env 文件加载的配置
type Config struct {
	SecretKey       string
	DBURI           string
	MailUser        string // 发件和收件邮箱
	MailPassword    string
	SMTPHost        string
	SMTPPort        int
	MailTimeout     time.Duration
	RedisAddr       string // 为空时联系邮件同步发送
	RedisPassword   string
	RedisDB         int
	KeyPrefix       string
	ServerPort      string
	LogLevel        string
	AppEnv          string // development / production
	SessionTTLHours int
	CookieSecure    bool
}

// LoadConfig 从环境变量加载配置
func LoadConfig() (*Config, error) {
	// 优先加载 .env 文件 (如果存在)
	_ = godotenv.Load()

	cfg := &Config{
		SecretKey:     os.Getenv("SECRET_KEY"),
		DBURI:         os.Getenv("DB_URI"),
		MailUser:      os.Getenv("MY_EMAIL"),
		MailPassword:  os.Getenv("PASSWORD"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		KeyPrefix:     os.Getenv("REDIS_KEY_PREFIX"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		AppEnv:        os.Getenv("APP_ENV"),
	}

	cfg.RedisDB, _ = strconv.Atoi(os.Getenv("REDIS_DB")) // 忽略错误，默认为 0
	cfg.SMTPPort = envInt("SMTP_PORT", 587)
	cfg.SessionTTLHours = envInt("SESSION_TTL_HOURS", 720)
	cfg.MailTimeout = 10 * time.Second
	if raw := os.Getenv("MAIL_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid MAIL_TIMEOUT %q", raw)
		}
		cfg.MailTimeout = d
	}

	// --- 默认值和必要检查 ---
	if cfg.DBURI == "" {
		cfg.DBURI = setup.DefaultDBURI
	}
	if cfg.SMTPHost == "" {
		cfg.SMTPHost = "smtp.gmail.com"
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "5000"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "blog:"
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("environment variable SECRET_KEY must be set")
	}
	cfg.CookieSecure = envBool("COOKIE_SECURE", cfg.AppEnv == "production")

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return def
	}
}
