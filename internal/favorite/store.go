package favorite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// ErrMissingFields indicates an add attempt without a recipe id or title.
var ErrMissingFields = errors.New("recipe id and title are required")

// Favorite is a user-owned saved reference to a recipe, with a denormalized
// display snapshot captured at favoriting time. The same recipe may appear
// more than once for a user; the store does not deduplicate.
type Favorite struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"-" db:"user_id"`
	RecipeID  string    `json:"recipeId" db:"recipe_id"`
	Title     string    `json:"title" db:"title"`
	Image     string    `json:"image" db:"image"`
	Category  string    `json:"category" db:"category"`
	Area      string    `json:"area" db:"area"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Store defines the interface for favorite operations. Every call is scoped
// to a single verified user.
type Store interface {
	List(ctx context.Context, userID int64) ([]Favorite, error)
	Add(ctx context.Context, userID int64, fav Favorite) (*Favorite, error)
	Remove(ctx context.Context, userID int64, recipeID string) (int64, error)
}

// PostgresStore implements the Store interface for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to the database and ensures the favorites table
// exists.
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS favorites (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		recipe_id TEXT NOT NULL,
		title TEXT NOT NULL,
		image TEXT,
		category TEXT,
		area TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create favorites table: %w", err)
	}

	return NewStore(db), nil
}

// NewStore wraps an existing database handle.
func NewStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// List returns the user's favorites, most recently created first.
func (s *PostgresStore) List(ctx context.Context, userID int64) ([]Favorite, error) {
	favorites := []Favorite{}
	err := s.db.SelectContext(ctx, &favorites,
		"SELECT id, user_id, recipe_id, title, image, category, area, created_at FROM favorites WHERE user_id = $1 ORDER BY created_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

// Add saves a new favorite for the user. Duplicate (user, recipe) pairs are
// tolerated and show up twice in listings.
func (s *PostgresStore) Add(ctx context.Context, userID int64, fav Favorite) (*Favorite, error) {
	if strings.TrimSpace(fav.RecipeID) == "" || strings.TrimSpace(fav.Title) == "" {
		return nil, ErrMissingFields
	}

	fav.UserID = userID
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO favorites (user_id, recipe_id, title, image, category, area) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at",
		userID, fav.RecipeID, fav.Title, fav.Image, fav.Category, fav.Area,
	).Scan(&fav.ID, &fav.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert favorite: %w", err)
	}

	return &fav, nil
}

// Remove deletes every favorite the user has for the recipe and reports how
// many rows went away. Removing a recipe that was never favorited is not an
// error; the count is zero.
func (s *PostgresStore) Remove(ctx context.Context, userID int64, recipeID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = $1 AND recipe_id = $2",
		userID, recipeID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete favorites: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted favorites: %w", err)
	}

	return deleted, nil
}
