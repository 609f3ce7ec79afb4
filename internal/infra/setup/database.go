package setup

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultDBURI 是未配置 DB_URI 时使用的本地文件数据库。
const DefaultDBURI = "sqlite://posts.db"

const sqliteForeignKeysPragma = "_pragma=foreign_keys(1)"

// InitDB 根据连接串前缀选择驱动并打开数据库连接。
// 支持 sqlite://<path>、postgres://<dsn> / postgresql://<dsn> 和 mysql://<dsn>。
func InitDB(dbURI string) (*gorm.DB, error) {
	if dbURI == "" {
		dbURI = DefaultDBURI
		logrus.Warnf("DB_URI not set, defaulting to '%s'", DefaultDBURI)
	}

	dialector, isSQLite, err := dialectorFor(dbURI)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true, // 唯一约束冲突翻译为 gorm.ErrDuplicatedKey (驱动支持时)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if isSQLite {
		// SQLite 只允许单个写连接，串行化写入
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	logrus.Info("Database connection established")
	return db, nil
}

// dialectorFor 解析 DB_URI 并返回对应的 GORM Dialector
func dialectorFor(dbURI string) (gorm.Dialector, bool, error) {
	switch {
	case strings.HasPrefix(dbURI, "sqlite://"):
		dsn := sqliteDSN(strings.TrimPrefix(dbURI, "sqlite://"))
		logrus.WithField("dsn", dsn).Info("Connecting to SQLite database")
		return sqlite.Open(dsn), true, nil
	case strings.HasPrefix(dbURI, "postgres://"), strings.HasPrefix(dbURI, "postgresql://"):
		logrus.Info("Connecting to PostgreSQL database")
		return postgres.Open(dbURI), false, nil
	case strings.HasPrefix(dbURI, "mysql://"):
		logrus.Info("Connecting to MySQL database")
		return mysql.Open(strings.TrimPrefix(dbURI, "mysql://")), false, nil
	default:
		return nil, false, fmt.Errorf("invalid DB_URI '%s': must start with sqlite://, postgres:// or mysql://", dbURI)
	}
}

// sqliteDSN 为 SQLite 连接打开外键约束
func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = "posts.db"
	}
	if strings.Contains(dsn, "_pragma=foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&" + sqliteForeignKeysPragma
	}
	return dsn + "?" + sqliteForeignKeysPragma
}
