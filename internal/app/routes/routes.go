package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campusreuse/restore/internal/app/controllers"
	"github.com/campusreuse/restore/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	fridgeController *controllers.FridgeController,
	verificationController *controllers.VerificationController,
	donorController *controllers.DonorController,
	categoryController *controllers.CategoryController,
	productController *controllers.ProductController,
	importController *controllers.ImportController,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Fridge lending routes. The static /stats and /checkout segments must
	// be registered alongside /:id; gin resolves them by precedence.
	fridges := v1.Group("/fridges")
	{
		fridges.GET("", fridgeController.ListFridges)
		fridges.GET("/stats", fridgeController.GetFridgeStats)
		fridges.GET("/:id", fridgeController.GetFridgeByID)
		fridges.POST("", fridgeController.CreateFridge)
		fridges.POST("/checkout", fridgeController.CheckoutFridge)
		fridges.PATCH("/checkout/:id/return", fridgeController.ReturnFridge)
		fridges.PATCH("/:id", fridgeController.PatchFridge)
		fridges.DELETE("/:id", fridgeController.DeleteFridge)
	}

	// Donation verification routes
	verification := v1.Group("/verification")
	{
		verification.POST("/checkouts", verificationController.CreateCheckout)
		verification.GET("/checkouts", verificationController.ListCheckouts)
		verification.GET("/checkouts/:id", verificationController.GetCheckoutByID)
		verification.PATCH("/checkouts/:id", verificationController.UpdateCheckoutStatus)
		verification.PATCH("/items/:id", verificationController.UpdateItemStatus)
	}

	// Donor CSV ingestion routes
	importGroup := v1.Group("/import")
	{
		importGroup.POST("/donors", importController.ImportDonors)
		importGroup.POST("/donors/preview", importController.PreviewDonors)
	}

	// Donor routes
	donors := v1.Group("/donors")
	{
		donors.POST("", donorController.CreateDonor)
		donors.GET("/search", donorController.SearchDonors)
		donors.GET("/:id", donorController.GetDonorByID)
	}

	// Category routes
	categories := v1.Group("/categories")
	{
		categories.POST("", categoryController.CreateCategory)
		categories.GET("", categoryController.GetAllCategories)
		categories.GET("/:id", categoryController.GetCategoryByID)
	}

	// Product routes
	products := v1.Group("/products")
	{
		products.POST("", productController.CreateProduct)
		products.GET("", productController.GetAllProducts)
		products.GET("/:id", productController.GetProductByID)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
