package database

import (
	"database/sql"
	"log"
	"net/url"
	"strings"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/pinkbears/internal/config"
	"github.com/example/pinkbears/internal/models"
	"github.com/example/pinkbears/internal/utils"
)

var db *gorm.DB

// Connect initializes the database connection, runs migrations and seeds
// reference data (admin account, sample products).
func Connect(cfg *config.Config) *gorm.DB {
	if db != nil {
		return db
	}

	if err := ensureDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("failed to ensure database: %v", err)
	}

	conn, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	if err := seed(conn, cfg); err != nil {
		log.Fatalf("database seeding failed: %v", err)
	}

	db = conn
	return db
}

// DB exposes the initialized gorm.DB instance.
func DB() *gorm.DB {
	return db
}

// Migrate creates or updates all tables.
func Migrate(conn *gorm.DB) error {
	migrations := []interface{}{
		&models.Product{},
		&models.ContactMessage{},
		&models.Order{},
		&models.TrackingEvent{},
		&models.ChatMessage{},
		&models.Admin{},
	}

	for _, migration := range migrations {
		if err := conn.AutoMigrate(migration); err != nil {
			return err
		}
	}

	return nil
}

func seed(conn *gorm.DB, cfg *config.Config) error {
	if cfg.AdminPassword != "" {
		if err := seedAdmin(conn, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return err
		}
	}

	if cfg.SeedProducts {
		if err := seedProducts(conn); err != nil {
			return err
		}
	}

	return nil
}

func seedAdmin(conn *gorm.DB, username, password string) error {
	var existing models.Admin
	err := conn.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	return conn.Create(&models.Admin{Username: username, PasswordHash: hash}).Error
}

func seedProducts(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []models.Product{
		{Name: "Rose Gold Necklace", Price: 4599, Category: "Jewelry", Image: "https://picsum.photos/300/300?random=1", Description: "Elegant rose gold necklace with crystal pendant", Featured: true},
		{Name: "Lavender Scented Candle", Price: 2499, Category: "Candles", Image: "https://picsum.photos/300/300?random=2", Description: "Hand-poured soy candle with lavender essence", Featured: true},
		{Name: "Custom Photo Frame", Price: 3250, Category: "Home Decor", Image: "https://picsum.photos/300/300?random=3", Description: "Personalized wooden photo frame", Featured: false},
		{Name: "Artisan Notebook Set", Price: 1899, Category: "Stationery", Image: "https://picsum.photos/300/300?random=4", Description: "Set of 3 handmade notebooks", Featured: true},
		{Name: "Mini Succulent Garden", Price: 2999, Category: "Plants", Image: "https://picsum.photos/300/300?random=5", Description: "Beautiful arrangement of small succulents", Featured: false},
		{Name: "Birthday Gift Basket", Price: 6500, Category: "Gift Sets", Image: "https://picsum.photos/300/300?random=6", Description: "Curated birthday surprise package", Featured: true},
	}

	return conn.Create(&samples).Error
}

func ensureDatabase(dsn string) error {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	masterDSN := parsed.String()

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
