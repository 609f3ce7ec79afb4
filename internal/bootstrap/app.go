package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "github.com/ali-aqib/blog/internal/handler/http"
	gormpersistence "github.com/ali-aqib/blog/internal/infra/persistence/gorm"
	"github.com/ali-aqib/blog/internal/infra/setup"
	redisstate "github.com/ali-aqib/blog/internal/infra/state/redis"
	"github.com/ali-aqib/blog/internal/middleware"
	"github.com/ali-aqib/blog/internal/notify"
	"github.com/ali-aqib/blog/internal/repository"
	"github.com/ali-aqib/blog/internal/service"
	"github.com/ali-aqib/blog/internal/worker"
)

// App 结构体包含应用的所有组件和配置
type App struct {
	Config      *Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client        // 未配置 Redis 时为 nil
	AsynqClient *asynq.Client        // 同上
	AsynqServer *worker.WorkerServer // 同上
	HttpServer  *http.Server
}

// NewApp 创建并初始化应用的所有组件
func NewApp() (*App, error) {
	// 1. 加载配置
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	// 2. 初始化 Logger
	log := NewLogger(cfg)
	log.Info("Configuration loaded successfully")

	// 3. 初始化数据库
	db, err := setup.InitDB(cfg.DBURI)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	if err := setup.MigrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	log.Info("Database initialized and migrated")

	app := &App{Config: cfg, Log: log, DB: db}

	// 4. 联系邮件投递：配置了 Redis 时走队列，否则同步发送
	mailer := notify.NewSMTPMailer(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.MailUser,
		Password: cfg.MailPassword,
		Timeout:  cfg.MailTimeout,
	})
	var (
		dispatcher notify.Dispatcher
		statusRepo repository.DeliveryStatusRepository
	)
	if cfg.RedisAddr != "" {
		redisClient, err := setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
		redisClientOpt := asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}
		statusRepo = redisstate.NewRedisDeliveryStatusRepository(redisClient, cfg.KeyPrefix)
		app.RedisClient = redisClient
		app.AsynqClient = asynq.NewClient(redisClientOpt)
		app.AsynqServer = worker.NewWorkerServer(redisClientOpt, mailer, statusRepo, cfg.MailTimeout, log)
		dispatcher = notify.NewQueueDispatcher(app.AsynqClient, statusRepo)
		log.Info("Contact mail will be delivered through the task queue")
	} else {
		dispatcher = notify.NewInlineDispatcher(mailer, cfg.MailTimeout)
		log.Info("REDIS_ADDR not set, contact mail will be sent inline")
	}

	// 5. Repositories 和 Services
	userRepo := gormpersistence.NewGormUserRepository(db)
	postRepo := gormpersistence.NewGormPostRepository(db)
	commentRepo := gormpersistence.NewGormCommentRepository(db)

	authService, err := service.NewAuthService(userRepo, cfg.SecretKey, cfg.SessionTTLHours)
	if err != nil {
		return nil, fmt.Errorf("failed to create AuthService: %w", err)
	}
	postService := service.NewPostService(postRepo)
	commentService := service.NewCommentService(commentRepo)
	contactService := service.NewContactService(dispatcher, statusRepo)
	log.Info("Services initialized")

	// 6. Gin Engine 和路由
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router, err := NewRouter(log, authService, cfg.CookieSecure, httpHandler.Handlers{
		Auth:     httpHandler.NewAuthHandler(authService, cfg.CookieSecure),
		Posts:    httpHandler.NewPostHandler(postService, commentService),
		Comments: httpHandler.NewCommentHandler(commentService),
		Pages:    httpHandler.NewPageHandler(contactService),
	})
	if err != nil {
		return nil, err
	}
	log.Info("Router setup complete")

	app.HttpServer = &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return app, nil
}

// NewLogger 按环境选择日志格式
func NewLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	level, _ := logrus.ParseLevel(cfg.LogLevel) // LoadConfig 已校验
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	// 各层使用 logrus 的包级函数记录日志，与 App 的 logger 保持一致
	logrus.SetFormatter(log.Formatter)
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stdout)
	return log
}

// NewRouter 组装 Gin Engine：恢复、访问日志、会话解析、模板和全部路由
func NewRouter(log *logrus.Logger, sessions middleware.SessionResolver, cookieSecure bool, h httpHandler.Handlers) (*gin.Engine, error) {
	tmpl, err := httpHandler.LoadTemplates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log))
	router.Use(middleware.Session(sessions, cookieSecure))
	httpHandler.RegisterRoutes(router, h)
	return router, nil
}

// Start 启动后台 Worker 和 HTTP 服务器
func (a *App) Start() {
	if a.AsynqServer != nil {
		go a.AsynqServer.Start()
		a.Log.Info("Asynq worker server routine started")
	}

	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

// Shutdown 优雅地关闭应用
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	// 1. 先停止接收新请求
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	// 2. 等待正在发送的邮件任务
	if a.AsynqServer != nil {
		a.AsynqServer.Shutdown()
	}

	if a.AsynqClient != nil {
		if err := a.AsynqClient.Close(); err != nil {
			a.Log.Errorf("Error closing Asynq client: %v", err)
		}
	}
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}

	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.Log.Errorf("Error closing database connection: %v", err)
		}
	}

	a.Log.Info("Application shutdown complete.")
}

// LoggerMiddleware 创建一个 Gin 中间件用于记录请求日志
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
		})

		if msg := c.Errors.ByType(gin.ErrorTypePrivate).String(); msg != "" {
			entry.Error(msg)
			return
		}
		switch {
		case statusCode >= 500:
			entry.Error("Server error")
		case statusCode >= 400:
			entry.Warn("Client error")
		default:
			entry.Info("Request handled")
		}
	}
}
