package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"recipefinder/internal/favorite"
	"recipefinder/internal/recipe"
	"recipefinder/internal/user"
)

// RecipeService defines the recipe operations the gateway exposes.
type RecipeService interface {
	Search(ctx context.Context, query, category, area string) ([]recipe.Summary, error)
	SearchByIngredients(ctx context.Context, ingredients, exclude []string) ([]recipe.Summary, error)
	Get(ctx context.Context, id string) (*recipe.Recipe, error)
	Random(ctx context.Context) (*recipe.Recipe, error)
}

// UserStore defines the account operations the gateway depends on.
type UserStore interface {
	Register(ctx context.Context, email, password string) (*user.User, error)
	Authenticate(ctx context.Context, email, password string) (*user.User, error)
}

// TokenManager defines session token issuing and verification.
type TokenManager interface {
	Issue(u *user.User) (string, error)
	Verify(token string) (*user.Claims, error)
}

// FavoriteStore defines the favorite operations the gateway depends on.
type FavoriteStore interface {
	List(ctx context.Context, userID int64) ([]favorite.Favorite, error)
	Add(ctx context.Context, userID int64, fav favorite.Favorite) (*favorite.Favorite, error)
	Remove(ctx context.Context, userID int64, recipeID string) (int64, error)
}

// Handler handles HTTP requests. It holds no state beyond its collaborators.
type Handler struct {
	Recipes   RecipeService
	Users     UserStore
	Tokens    TokenManager
	Favorites FavoriteStore
}

// NewHandler creates a new Handler.
func NewHandler(recipes RecipeService, users UserStore, tokens TokenManager, favorites FavoriteStore) *Handler {
	return &Handler{Recipes: recipes, Users: users, Tokens: tokens, Favorites: favorites}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account.
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	u, err := h.Users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"message": "email already registered"})
			return
		}
		log.Printf("register failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": u.ID, "email": u.Email})
}

// Login verifies credentials and issues a session token.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
		return
	}

	u, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid email or password"})
			return
		}
		log.Printf("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to log in"})
		return
	}

	token, err := h.Tokens.Issue(u)
	if err != nil {
		log.Printf("token issue failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": u.ID, "email": u.Email},
	})
}

// SearchRecipes handles free-text and category/area filtered search.
func (h *Handler) SearchRecipes(c *gin.Context) {
	query := c.Query("q")
	category := c.Query("category")
	area := c.Query("area")

	results, err := h.Recipes.Search(c.Request.Context(), query, category, area)
	if err != nil {
		log.Printf("recipe search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, results)
}

// RandomRecipe returns one random full recipe.
func (h *Handler) RandomRecipe(c *gin.Context) {
	r, err := h.Recipes.Random(c.Request.Context())
	if err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "no recipe found"})
			return
		}
		log.Printf("random recipe failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, r)
}

// GetRecipe returns one full recipe by its upstream id.
func (h *Handler) GetRecipe(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "recipe id is required"})
		return
	}

	r, err := h.Recipes.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "recipe not found"})
			return
		}
		log.Printf("recipe lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch recipe details"})
		return
	}

	c.JSON(http.StatusOK, r)
}

type byIngredientsRequest struct {
	Ingredients []string `json:"ingredients"`
	Exclude     []string `json:"exclude"`
}

// SearchByIngredients handles ingredient-based search with an exclusion
// list. An empty ingredient list is a valid request yielding an empty
// result.
func (h *Handler) SearchByIngredients(c *gin.Context) {
	var req byIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	results, err := h.Recipes.SearchByIngredients(c.Request.Context(), req.Ingredients, req.Exclude)
	if err != nil {
		log.Printf("ingredient search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to search by ingredients"})
		return
	}

	c.JSON(http.StatusOK, results)
}

// ListFavorites returns the authenticated user's favorites, newest first.
func (h *Handler) ListFavorites(c *gin.Context) {
	claims := currentClaims(c)

	favorites, err := h.Favorites.List(c.Request.Context(), claims.UserID)
	if err != nil {
		log.Printf("list favorites failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch favorites"})
		return
	}

	c.JSON(http.StatusOK, favorites)
}

type addFavoriteRequest struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Area     string `json:"area"`
}

// AddFavorite saves a recipe snapshot to the authenticated user's
// favorites.
func (h *Handler) AddFavorite(c *gin.Context) {
	claims := currentClaims(c)

	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	fav, err := h.Favorites.Add(c.Request.Context(), claims.UserID, favorite.Favorite{
		RecipeID: req.ID,
		Title:    req.Title,
		Image:    req.Image,
		Category: req.Category,
		Area:     req.Area,
	})
	if err != nil {
		if errors.Is(err, favorite.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "recipe id and title are required"})
			return
		}
		log.Printf("add favorite failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to add favorite"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "favorite added", "favoriteId": fav.ID})
}

// RemoveFavorite deletes the authenticated user's favorites for a recipe
// and reports the count. A zero count is not an error.
func (h *Handler) RemoveFavorite(c *gin.Context) {
	claims := currentClaims(c)
	recipeID := c.Param("recipeId")

	deleted, err := h.Favorites.Remove(c.Request.Context(), claims.UserID, recipeID)
	if err != nil {
		log.Printf("remove favorite failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to remove favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "favorite removed", "deleted": deleted})
}
