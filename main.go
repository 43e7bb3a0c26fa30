package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/lonestar/statuary-server/controllers"
	"github.com/lonestar/statuary-server/database"
	"github.com/lonestar/statuary-server/identity"
	"github.com/lonestar/statuary-server/middleware"
	"github.com/lonestar/statuary-server/repository"
	"github.com/lonestar/statuary-server/services"
	"github.com/lonestar/statuary-server/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	ctx := context.Background()

	productsCol := database.OpenCollection("products")
	if err := database.EnsureProductIndexes(ctx, productsCol); err != nil {
		log.Fatal("product indexes: ", err)
	}

	if err := utils.EnsureUploadDirs(); err != nil {
		log.Fatal(err)
	}

	usersCol := database.OpenCollection("users")
	if err := utils.SeedAdminUser(ctx, usersCol); err != nil {
		log.Fatal(err)
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	stripeKey := os.Getenv("STRIPE_SECRET_KEY")
	if stripeKey == "" {
		log.Fatal("STRIPE_SECRET_KEY must be set")
	}
	mirror := services.NewStripeMirror(stripeKey)
	repo := repository.NewProductRepository(productsCol)
	productSvc := services.NewProductService(repo, mirror)

	idp := identity.NewManagementClient(
		os.Getenv("IDENTITY_DOMAIN"),
		os.Getenv("IDENTITY_MANAGEMENT_CLIENT_ID"),
		os.Getenv("IDENTITY_MANAGEMENT_CLIENT_SECRET"),
	)

	v := utils.NewPDFOrImageValidator()

	r := gin.New()
	r.Use(middleware.RequestID())

	origins := os.Getenv("ALLOWED_ORIGINS")
	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	// Public
	r.GET("/api/health", controllers.Health())
	r.GET("/api/products", controllers.GetProducts(productSvc))
	r.GET("/api/products/:id", controllers.GetProductByID(productSvc))
	r.Static("/uploads", utils.BaseUploadDir())

	r.POST("/auth/login", controllers.Login())
	r.POST("/auth/refresh", controllers.Refresh())
	r.POST("/auth/logout", controllers.Logout())

	// Admin
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/products", controllers.CreateProduct(productSvc))
		api.PATCH("/products/:id", controllers.UpdateProduct(productSvc))
		api.DELETE("/products/:id", controllers.DeleteProduct(productSvc))
		api.DELETE("/products/:id/hard", controllers.HardDeleteProduct(productSvc))

		api.GET("/users/roles", controllers.GetUserRoles(idp))
		api.GET("/admin/health", controllers.AdminHealth(idp))
		api.POST("/users", controllers.CreateUser())
		api.POST("/users/me/password", controllers.ChangeMyPassword())

		api.POST("/files/:dir/upload", controllers.UploadFile(v))
		api.GET("/files/:dir", controllers.ListFiles())
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Server running on port", port)
	r.Run(":" + port)
}
