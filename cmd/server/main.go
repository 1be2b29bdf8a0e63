// @title           Janasampark API
// @version         1.0
// @description     Ward-level constituent survey collection and administration service

// @contact.name   API Support

// @license.name  MIT

// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/jashanpj/janasampark/internal/app/routes"
	"github.com/jashanpj/janasampark/internal/domain/models"
	"github.com/jashanpj/janasampark/internal/infrastructure/config"
	"github.com/jashanpj/janasampark/internal/infrastructure/database"
	"github.com/jashanpj/janasampark/pkg/logger"
	"github.com/jashanpj/janasampark/utils"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	if err := logger.SetupLogger(); err != nil {
		fmt.Printf("failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		// Environment variables may already be set by the deployment.
		logger.Warning("could not load .env file: %v", err)
	} else {
		logger.Info("loaded .env file")
	}

	cfg := config.GetConfig()

	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		log.Fatalf("failed to create database connection pool: %v", err)
	}
	db := pool.GetDB()

	if err := autoMigrate(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	ensureSuperAdminExists(db, cfg)

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})

	r := routes.SetupRouter(db, cfg, redisClient)

	printSystemInfo(pool)

	port := cfg.ServerPort
	logger.Info("server listening on http://0.0.0.0:%s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		logger.Error("server failed: %v", err)
		os.Exit(1)
	}
}

// autoMigrate migrates all models. It only adds new columns and tables.
func autoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Survey{},
	); err != nil {
		return err
	}

	logger.Info("database migration completed")
	return nil
}

// ensureSuperAdminExists seeds the super admin account on first boot so the
// approval chain has a root.
func ensureSuperAdminExists(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleSuperAdmin).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := utils.HashPassword(cfg.SuperAdminPassword)
	if err != nil {
		log.Fatalf("failed to hash super admin password: %v", err)
	}

	superAdmin := models.User{
		Name:       "Super Admin",
		Username:   cfg.SuperAdminUsername,
		Password:   hashed,
		Phone:      "0000000000",
		Role:       models.RoleSuperAdmin,
		IsApproved: true,
		WardNumber: 1,
		LocalBody:  models.LocalBodies[0],
	}

	if err := db.Create(&superAdmin).Error; err != nil {
		log.Fatalf("failed to create super admin account: %v", err)
	}

	logger.Info("created super admin account %q", superAdmin.Username)
}

// printSystemInfo logs pool and runtime stats at startup.
func printSystemInfo(pool *database.ConnectionPool) {
	if stats, err := pool.Stats(); err == nil {
		log.Printf("database connection pool: %+v", stats)
	}

	log.Printf("cpu cores: %d", runtime.NumCPU())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Printf("memory: Alloc=%v MiB, Sys=%v MiB", m.Alloc/1024/1024, m.Sys/1024/1024)
}
