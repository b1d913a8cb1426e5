package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"recipefinder/internal/api"
	"recipefinder/internal/favorite"
	"recipefinder/internal/platform/mealdb"
	"recipefinder/internal/recipe"
	"recipefinder/internal/user"
)

// Config represents the application configuration.
type Config struct {
	DatabaseURL    string   `json:"DATABASE_URL"`
	JWTSecret      string   `json:"jwt_secret"`
	Port           string   `json:"port"`
	MealDBBaseURL  string   `json:"mealdb_base_url"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// loadConfig reads config.json if present, then applies environment
// overrides. A .env file is honored via godotenv.
func loadConfig() (Config, error) {
	var config Config

	configData, err := os.ReadFile("config.json")
	if err == nil {
		if err := json.Unmarshal(configData, &config); err != nil {
			return config, fmt.Errorf("failed to unmarshal config.json: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return config, fmt.Errorf("failed to read config.json: %w", err)
	}

	_ = godotenv.Load()

	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.DatabaseURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.JWTSecret = v
	}
	if v := os.Getenv("PORT"); v != "" {
		config.Port = v
	}
	if v := os.Getenv("MEALDB_BASE_URL"); v != "" {
		config.MealDBBaseURL = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		config.AllowedOrigins = strings.Split(v, ",")
	}

	if config.DatabaseURL == "" {
		return config, fmt.Errorf("DATABASE_URL is required")
	}
	if config.JWTSecret == "" {
		return config, fmt.Errorf("jwt secret is required")
	}
	if config.Port == "" {
		config.Port = "8080"
	}
	if len(config.AllowedOrigins) == 0 {
		config.AllowedOrigins = []string{"http://localhost:8081"}
	}

	return config, nil
}

func main() {
	config, err := loadConfig()
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}

	userStore, err := user.NewPostgresStore(config.DatabaseURL)
	if err != nil {
		panic(fmt.Errorf("error creating user store: %w", err))
	}

	favoriteStore, err := favorite.NewPostgresStore(config.DatabaseURL)
	if err != nil {
		panic(fmt.Errorf("error creating favorite store: %w", err))
	}

	mealClient := mealdb.NewClient(config.MealDBBaseURL)
	recipeService := recipe.NewService(mealClient)
	tokens := user.NewTokenManager(config.JWTSecret)

	handler := api.NewHandler(recipeService, userStore, tokens, favoriteStore)

	r := gin.Default()

	// Configure CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	root := r.Group("/api")
	root.GET("/health", handler.Health)
	root.POST("/auth/register", handler.Register)
	root.POST("/auth/login", handler.Login)
	root.GET("/recipes/search", handler.SearchRecipes)
	root.GET("/recipes/random", handler.RandomRecipe)
	root.GET("/recipes/:id", handler.GetRecipe)
	root.POST("/recipes/by-ingredients", handler.SearchByIngredients)

	favorites := root.Group("/favorites", api.RequireAuth(tokens))
	favorites.GET("", handler.ListFavorites)
	favorites.POST("", handler.AddFavorite)
	favorites.DELETE("/:recipeId", handler.RemoveFavorite)

	r.Run(":" + config.Port)
}
