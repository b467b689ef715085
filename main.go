package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/mailer"
	"backend/internal/middleware"
	"backend/internal/storage"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURL)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}
	if err := database.EnsureCartIndexes(db); err != nil {
		log.Printf("⚠️ cart index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}

	if err := database.SeedAdminUser(db, config.AppEnv.AdminEmail, config.AppEnv.AdminPassword); err != nil {
		log.Printf("⚠️ admin seed warning: %v", err)
	}

	store := newUploader()
	otpSender := mailer.NewSMTPSender(
		config.AppEnv.SMTPHost,
		config.AppEnv.SMTPPort,
		config.AppEnv.EmailUser,
		config.AppEnv.EmailPass,
	)

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(config.AppEnv.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = config.AppEnv.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.Static("/assets", "./"+config.AppEnv.AssetsDir)

	r.GET("/", func(c *gin.Context) {
		c.String(200, "API is running...")
	})

	secret := config.AppEnv.JWTSecret

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", handlers.Signup(db, otpSender, config.AppEnv.OTPTTL))
		auth.POST("/verify-otp", handlers.VerifyOTP(db, secret, config.AppEnv.TokenTTL))
		auth.POST("/login", handlers.Login(db, secret, config.AppEnv.TokenTTL))
	}

	products := r.Group("/api/products")
	{
		products.GET("", handlers.GetProducts(db))
		products.GET("/category/:category", handlers.GetProducts(db))
		products.GET("/:id", handlers.GetProductByID(db))

		products.POST("", middleware.AdminAuth(db, secret), handlers.CreateProduct(db, store))
		products.PUT("/:id", middleware.AdminAuth(db, secret), handlers.UpdateProduct(db, store))
		products.DELETE("/:id", middleware.AdminAuth(db, secret), handlers.DeleteProduct(db, store))
	}

	cart := r.Group("/api/cart")
	cart.Use(middleware.UserAuth(db, secret))
	{
		cart.GET("", handlers.GetCart(db))
		cart.POST("", handlers.SaveCart(db))
		cart.DELETE("", handlers.ClearCart(db))
		cart.POST("/add", handlers.AddCartItem(db))
		cart.DELETE("/item/:productId", handlers.RemoveCartItem(db))
	}

	orders := r.Group("/api/orders")
	{
		orders.POST("", handlers.CreateOrder(db, secret))
		orders.GET("/all", middleware.AdminAuth(db, secret), handlers.GetAllOrders(db))
		orders.GET("/user/:userId", middleware.UserAuth(db, secret), handlers.GetUserOrders(db))
		orders.GET("/:id", middleware.UserAuth(db, secret), handlers.GetOrderByID(db))
		orders.PATCH("/:id/status", middleware.AdminAuth(db, secret), handlers.UpdateOrderStatus(db))
		orders.PATCH("/:id/payment-status", middleware.AdminAuth(db, secret), handlers.UpdatePaymentStatus(db))
	}

	users := r.Group("/api/users")
	users.Use(middleware.AdminAuth(db, secret))
	{
		users.GET("", handlers.GetUsers(db))
		users.GET("/stats/overview", handlers.GetUserStats(db))
		users.GET("/:id", handlers.GetUserByID(db))
	}

	log.Println("[SERVER] [INFO] listening on port", config.AppEnv.Port)
	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}

// newUploader picks the product image backend from UPLOAD_DRIVER. Local disk
// is the default so development needs no bucket credentials.
func newUploader() storage.Uploader {
	if config.AppEnv.UploadDriver == "r2" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		r2, err := storage.NewR2(ctx, storage.R2Config{
			Bucket:       config.AppEnv.R2Bucket,
			AccessKeyID:  config.AppEnv.R2AccessKeyID,
			SecretKey:    config.AppEnv.R2SecretKey,
			Endpoint:     config.AppEnv.R2Endpoint,
			PublicDomain: config.AppEnv.R2PublicDomain,
		})
		if err != nil {
			log.Fatal("storage:", err)
		}
		return r2
	}
	return storage.NewLocalDisk(config.AppEnv.AssetsDir)
}
