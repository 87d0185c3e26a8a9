package main

import (
	"barangay-egov/internal/app"
	"barangay-egov/pkg/cache"
	"barangay-egov/pkg/config"
	"barangay-egov/pkg/database"
	"barangay-egov/pkg/logger"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	app.Run(cfg, log, db, redisClient)
}
