package main

import (
	"log"
	"strings"

	"katalog-backend/internal/catalog"
	"katalog-backend/internal/config"
	"katalog-backend/internal/database"
	"katalog-backend/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalln(err)
	}
	defer zlog.Sync()

	loader := catalog.NewGormRecordLoader(database.DB, zlog)
	engine := catalog.NewEngine(loader, zlog)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			zlog.Error("Beklenmeyen hata", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,OPTIONS",
	}))

	api := app.Group("/api")

	api.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Salt okunur katalog uçları; yazma yolu ayrı bir serviste
	api.Get("/catalog/products", catalog.BrowseProductsHandler(engine))
	api.Get("/catalog/category-counts", catalog.CategoryCountsHandler(engine))

	zlog.Info("Sunucu çalışıyor", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		zlog.Fatal("Sunucu durdu", zap.Error(err))
	}
}
