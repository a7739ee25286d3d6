package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotelchain-backend/models"
	"hotelchain-backend/utils"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "hotelchain_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens the MySQL connection, migrates the schema and seeds
// the bootstrap admin.
func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	gormLogLevel := logger.Warn
	if utils.EnvOrDefault("DB_LOG_QUERIES", "false") == "true" {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return err
	}
	DB = db

	if err := Migrate(DB); err != nil {
		return err
	}
	SeedDatabase(DB)
	return nil
}

// Migrate runs schema migration in parent-to-child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Hotel{},
		&models.User{},
		&models.RoomType{},
		&models.Room{},
		&models.Guest{},
		&models.Reservation{},
		&models.ReservationRoom{},
		&models.Charge{},
		&models.Transaction{},
		&models.Report{},
	)
}

// SeedDatabase creates the bootstrap SUPER_ADMIN when the users table is
// empty. Credentials come from env so deployments never ship the default.
func SeedDatabase(db *gorm.DB) {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount > 0 {
		return
	}

	email := strings.ToLower(utils.EnvOrDefault("SEED_ADMIN_EMAIL", "admin@hotelchain.local"))
	password := utils.EnvOrDefault("SEED_ADMIN_PASSWORD", "admin123")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Warn().Err(err).Msg("failed to hash seed admin password")
		return
	}

	now := time.Now()
	admin := models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "System",
		LastName:  "Admin",
		Role:      models.RoleSuperAdmin,
		IsActive:  true,
		LastLogin: &now,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Warn().Err(err).Msg("failed to seed admin user")
		return
	}
	log.Info().Str("email", email).Msg("seeded bootstrap admin")
}
