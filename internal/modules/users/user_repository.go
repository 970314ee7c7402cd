package users

import (
	"context"
	"errors"
	"fmt"

	"roadside-dispatch/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the identity storage operations.
type RepositoryInterface interface {
	FindUserByID(ctx context.Context, userID int) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, username, passwordHash, role string) (*models.User, error)
	FindDispatcherByID(ctx context.Context, dispatcherID int) (*models.Dispatcher, error)
	FindDispatcherByUserID(ctx context.Context, userID int) (*models.Dispatcher, error)
	CreateDispatcher(ctx context.Context, userID, areaID int) error
}

// Repository implements RepositoryInterface on PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new user repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

func (r *Repository) FindUserByID(ctx context.Context, userID int) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, username, password_hash, role FROM users WHERE id = $1`
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindUserByID: %w", err)
	}
	return user, nil
}

func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, username, password_hash, role FROM users WHERE username = $1`
	err := r.db.QueryRow(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindUserByUsername: %w", err)
	}
	return user, nil
}

func (r *Repository) CreateUser(ctx context.Context, username, passwordHash, role string) (*models.User, error) {
	user := &models.User{Username: username, Role: role}
	query := `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id`
	err := r.db.QueryRow(ctx, query, username, passwordHash, role).Scan(&user.ID)
	if err != nil {
		return nil, fmt.Errorf("repository.CreateUser: %w", err)
	}
	return user, nil
}

func (r *Repository) FindDispatcherByID(ctx context.Context, dispatcherID int) (*models.Dispatcher, error) {
	dispatcher := &models.Dispatcher{}
	query := `SELECT id, user_id, area_id FROM dispatchers WHERE id = $1`
	err := r.db.QueryRow(ctx, query, dispatcherID).Scan(
		&dispatcher.ID, &dispatcher.UserID, &dispatcher.AreaID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindDispatcherByID: %w", err)
	}
	return dispatcher, nil
}

func (r *Repository) FindDispatcherByUserID(ctx context.Context, userID int) (*models.Dispatcher, error) {
	dispatcher := &models.Dispatcher{}
	query := `SELECT id, user_id, area_id FROM dispatchers WHERE user_id = $1`
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&dispatcher.ID, &dispatcher.UserID, &dispatcher.AreaID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindDispatcherByUserID: %w", err)
	}
	return dispatcher, nil
}

func (r *Repository) CreateDispatcher(ctx context.Context, userID, areaID int) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO dispatchers (user_id, area_id) VALUES ($1, $2)`,
		userID, areaID)
	if err != nil {
		return fmt.Errorf("repository.CreateDispatcher: %w", err)
	}
	return nil
}
