package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/EnzoDelpy/tunerate-api/internal/auth"
	"github.com/EnzoDelpy/tunerate-api/internal/catalog"
	"github.com/EnzoDelpy/tunerate-api/internal/database"
	"github.com/EnzoDelpy/tunerate-api/internal/music"
	"github.com/EnzoDelpy/tunerate-api/internal/reviews"
	"github.com/EnzoDelpy/tunerate-api/internal/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info(".env not loaded, continuing with environment variables")
	}

	if m := os.Getenv("GIN_MODE"); m != "" {
		gin.SetMode(m)
	}

	if err := database.Connect(); err != nil {
		log.Fatal("failed to connect to database", "err", err)
	}

	if err := database.Migrate(&users.User{}, &music.Artist{}, &music.Album{}, &reviews.Review{}); err != nil {
		log.Fatal("migrations failed", "err", err)
	}

	catalogClient := catalog.NewClient(catalog.NewConfig())
	resolver := music.NewResolver(database.DB, catalogClient)
	musicCtl := music.NewController(resolver, catalogClient)
	reviewCtl := reviews.NewController(reviews.NewManager(database.DB), resolver)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth routes
	r.POST("/login", auth.LoginHandler)
	r.POST("/register", users.RegisterHandler)
	r.GET("/users/:id", users.GetUserHandler)
	r.GET("/me", auth.RequireAuth(), auth.MeHandler)

	// Catalog search
	r.GET("/search/artists", musicCtl.SearchArtistsHandler)
	r.GET("/search/albums", musicCtl.SearchAlbumsHandler)

	// Artists and albums (numeric local id or external catalog id)
	r.GET("/artists/:id", musicCtl.GetArtistHandler)
	r.GET("/artists/:id/albums", musicCtl.GetArtistAlbumsHandler)
	r.GET("/albums/:id", musicCtl.GetAlbumHandler)

	// Reviews and ratings
	r.GET("/reviews", reviewCtl.ListHandler)
	r.GET("/albums/:id/reviews", reviewCtl.ListByAlbumHandler)
	r.GET("/albums/:id/rating", reviewCtl.GetRatingHandler)
	r.GET("/users/:id/reviews", reviewCtl.ListByUserHandler)
	r.POST("/albums/:id/reviews", auth.RequireAuth(), reviewCtl.CreateHandler)
	r.PATCH("/reviews/:id", auth.RequireAuth(), reviewCtl.UpdateHandler)
	r.DELETE("/reviews/:id", auth.RequireAuth(), reviewCtl.DeleteHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("server stopped", "err", err)
	}
}
