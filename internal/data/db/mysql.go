package db

import (
	"fmt"
	stdlog "log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/andescargo/manifiesto-backend/internal/platform/envutil"
	"github.com/andescargo/manifiesto-backend/internal/platform/logger"
)

type MySQLService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMySQLService(logg *logger.Logger) (*MySQLService, error) {
	serviceLog := logg.With("service", "MySQLService")

	mysqlHost := envutil.GetEnv("MYSQL_HOST", "localhost", logg)
	mysqlPort := envutil.GetEnv("MYSQL_PORT", "3306", logg)
	mysqlUser := envutil.GetEnv("MYSQL_USER", "root", logg)
	mysqlPassword := envutil.GetEnv("MYSQL_PASSWORD", "", logg)
	mysqlName := envutil.GetEnv("MYSQL_NAME", "manifiestos", logg)

	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		mysqlUser,
		mysqlPassword,
		mysqlHost,
		mysqlPort,
		mysqlName,
	)

	gormLog := gormLogger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}

	return &MySQLService{db: gdb, log: serviceLog}, nil
}

func (s *MySQLService) DB() *gorm.DB { return s.db }

func (s *MySQLService) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}
