package utils

import (
	"context"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// SlowQueryLogger 自定义 GORM 日志器：只打印慢查询和真实错误
type SlowQueryLogger struct {
	SlowThreshold time.Duration // 慢查询阈值
}

func (l *SlowQueryLogger) LogMode(level logger.LogLevel) logger.Interface {
	return l
}

func (l *SlowQueryLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	// 不打印 Info 日志
}

func (l *SlowQueryLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	// 不打印 Warn 日志
}

func (l *SlowQueryLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	// 忽略 "record not found"，这是正常业务路径
	if msg != "record not found" {
		log.Printf("[GORM Error] "+msg, data...)
	}
}

func (l *SlowQueryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && err.Error() != "record not found" {
		log.Printf("[GORM Error] %s [%v] [rows:%d] %s", err, elapsed, rows, sql)
	} else if elapsed >= l.SlowThreshold {
		log.Printf("[SLOW SQL] [%v] [rows:%d] %s", elapsed, rows, sql)
	}
}

// InitDB 初始化数据库连接
// TranslateError 必须开启：唯一索引冲突要以 gorm.ErrDuplicatedKey 的形式
// 进入服务层，作为并发重复创建的最终裁决信号
func InitDB(databaseURL string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
		Logger: &SlowQueryLogger{
			SlowThreshold: 100 * time.Millisecond,
		},
	})
	if err != nil {
		return err
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 连接池配置
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)

	log.Println("Database connected")
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}

// CloseDB 关闭数据库连接
func CloseDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
