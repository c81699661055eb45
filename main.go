package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	orderControllers "github.com/nadimo15/pakomi-packaging/controllers/order"
	"github.com/nadimo15/pakomi-packaging/models"
	"github.com/nadimo15/pakomi-packaging/notify"
	"github.com/nadimo15/pakomi-packaging/repository"
	"github.com/nadimo15/pakomi-packaging/routes"
	"github.com/nadimo15/pakomi-packaging/service"
	"github.com/nadimo15/pakomi-packaging/shipping"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("Starting packaging API...")

	// Load environment variables
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.Product{},
		&models.ProductColor{},
		&models.ProductSize{},
		&models.PriceTier{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderLineItem{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	seedCatalog(db)

	// Wire collaborators
	catalog := repository.NewGormCatalog(db)
	carts := repository.NewGormCart(db)
	orders := repository.NewGormOrders(db, orderControllers.BroadcastOrderEvent)

	notifier := notify.NewLogNotifier(logger)
	if os.Getenv("SMTP_HOST") != "" {
		notifier = notify.NewSMTPNotifier(logger)
	}
	shipper := shipping.NewMockClient(logger)

	orderService := service.NewOrderService(orders, carts, notifier, shipper, logger)

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-API-KEY", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup routes
	routes.SetupRoutes(r, routes.Deps{
		Catalog: catalog,
		Carts:   carts,
		Orders:  orders,
		Service: orderService,
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect DB: %v", err)
	}
	return db
}

// seedCatalog loads the default products when the catalog is empty.
func seedCatalog(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	defaults := []models.Product{
		{
			ID:   "cartonBox",
			Name: "Carton Box",
			Colors: []models.ProductColor{
				{Name: "Kraft", Value: "#C8A165"},
				{Name: "White", Value: "#FFFFFF"},
				{Name: "Black", Value: "#1F1F1F"},
			},
			Sizes: []models.ProductSize{
				{
					ID: "box-15x10x5", Width: 15, Height: 10, Depth: 5, Weight: 50,
					Pricing: []models.PriceTier{
						{MinQuantity: 50, Price: 1.2},
						{MinQuantity: 200, Price: 1.0},
					},
				},
				{
					ID: "box-25x20x10", Width: 25, Height: 20, Depth: 10, Weight: 110,
					Pricing: []models.PriceTier{
						{MinQuantity: 50, Price: 2.1},
						{MinQuantity: 200, Price: 1.8},
						{MinQuantity: 500, Price: 1.5},
					},
				},
			},
		},
		{
			ID:   "paperBag",
			Name: "Paper Bag",
			Colors: []models.ProductColor{
				{Name: "Kraft", Value: "#C8A165"},
				{Name: "White", Value: "#FFFFFF"},
			},
			Sizes: []models.ProductSize{
				{
					ID: "bag-30x40", Width: 30, Height: 40, Weight: 25,
					Pricing: []models.PriceTier{
						{MinQuantity: 50, Price: 1.0},
						{MinQuantity: 150, Price: 0.8},
						{MinQuantity: 500, Price: 0.6},
					},
				},
			},
		},
		{
			ID:   "mailer",
			Name: "Mailer Box",
			Colors: []models.ProductColor{
				{Name: "White", Value: "#FFFFFF"},
			},
			Sizes: []models.ProductSize{
				{
					ID: "mailer-22x16x6", Width: 22, Height: 16, Depth: 6, Weight: 80,
					Pricing: []models.PriceTier{
						{MinQuantity: 100, Price: 2.5},
						{MinQuantity: 400, Price: 2.0},
					},
				},
			},
		},
		{
			ID:   "card",
			Name: "Thank You Card",
			Sizes: []models.ProductSize{
				{
					ID: "card-9x5", Width: 9, Height: 5, Weight: 3,
					Pricing: []models.PriceTier{
						{MinQuantity: 100, Price: 0.15},
						{MinQuantity: 1000, Price: 0.1},
					},
				},
			},
		},
	}

	if err := db.Create(&defaults).Error; err != nil {
		log.Printf("Failed to seed catalog: %v", err)
	}
}
