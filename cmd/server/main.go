package main

import (
	"log"
	"strings"

	"stoktakip-backend/internal/alerts"
	"stoktakip-backend/internal/analytics"
	"stoktakip-backend/internal/audit"
	"stoktakip-backend/internal/config"
	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/deduction"
	"stoktakip-backend/internal/inventory"
	"stoktakip-backend/internal/recipes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}

	inventorySvc := inventory.NewService(db)
	recipeSvc := recipes.NewService(db)
	alertSvc := alerts.NewService(db)
	deductionSvc := deduction.NewService(db)
	analyticsSvc := analytics.NewService(db)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
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
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Stok defteri (operatör CRUD)
	api.Post("/inventory-items", inventory.CreateItemHandler(inventorySvc))
	api.Get("/inventory-items", inventory.ListItemsHandler(inventorySvc))
	api.Get("/inventory-items/low-stock", inventory.ListLowStockHandler(inventorySvc))
	api.Post("/inventory-items/import", inventory.ImportItemsHandler(inventorySvc))
	api.Get("/inventory-items/:id", inventory.GetItemHandler(inventorySvc))
	api.Put("/inventory-items/:id", inventory.UpdateItemHandler(inventorySvc))
	api.Delete("/inventory-items/:id", inventory.DeleteItemHandler(inventorySvc))
	api.Post("/inventory-items/:id/restock", inventory.RestockHandler(inventorySvc))

	// Reçeteler (menü yönetimi çağırır)
	api.Get("/recipes/:menuItemId", recipes.GetRecipeHandler(recipeSvc))
	api.Put("/recipes/:menuItemId", recipes.UpsertRecipeHandler(recipeSvc))

	// Sipariş düşümü (sipariş servisi ödeme onayından sonra çağırır)
	api.Post("/orders/deduct", deduction.ApplyHandler(deductionSvc))

	// Stok uyarıları
	api.Get("/stock-alerts", alerts.ListAllAlertsHandler(alertSvc))
	api.Get("/stock-alerts/active", alerts.ListActiveAlertsHandler(alertSvc))
	api.Post("/stock-alerts/:id/dismiss", alerts.DismissAlertHandler(alertSvc))

	// Analiz
	api.Get("/inventory-analytics", analytics.GetAnalyticsHandler(analyticsSvc))

	// Denetim kayıtları
	api.Get("/audit-logs", audit.ListAuditLogsHandler(db))

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
