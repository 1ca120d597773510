package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"eventapi/config"
	"eventapi/db"
	"eventapi/middlewares"
	"eventapi/models"
	"eventapi/routes"
	"eventapi/services"
	"eventapi/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config error:", err)
	}

	utils.ConfigureTokens(cfg.JWTSecret, cfg.TokenTTL)

	sqldb, err := db.Open(cfg.SQLitePath)
	if err != nil {
		log.Fatal("database error:", err)
	}
	defer sqldb.Close()
	if err := db.CreateTables(sqldb); err != nil {
		log.Fatal("schema error:", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal("upload dir error:", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	inv := utils.NewCacheInvalidator(rdb)

	events := models.NewSQLEventRepository(sqldb)
	regs := models.NewSQLRegistrationRepository(sqldb)
	users := models.NewSQLUserRepository(sqldb)
	svc := services.NewEventService(events, regs)

	server := gin.Default()
	server.Use(middlewares.ResponseCache(rdb, cfg.CacheTTL))
	server.Static("/images", cfg.UploadDir)

	routes.RegisterRoutes(server, svc, users, rdb, inv, routes.Options{
		UploadDir:  cfg.UploadDir,
		DailyQuota: cfg.DailyQuota,
	})

	if err := server.Run(cfg.Addr); err != nil {
		log.Fatal("gin.Run error:", err)
	}
}
