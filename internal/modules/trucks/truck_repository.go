package trucks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"roadside-dispatch/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the tow-truck storage operations. A truck's
// location is append-only history: UpdateLocation inserts a new timestamped
// row and reads always join the latest one.
type RepositoryInterface interface {
	List(ctx context.Context, page, pageSize int, status *string, areaID *int) ([]models.TowTruck, error)
	FindByID(ctx context.Context, truckID int) (*models.TowTruck, error)
	UpdateLocation(ctx context.Context, truckID, nodeID int) error
	UpdateStatus(ctx context.Context, truckID int, status string) error
	// ClaimForDispatch flips an available truck to busy in one conditional
	// update. Returns ErrConflict when the truck was not available, so a
	// concurrent dispatch can never be assumed to have succeeded.
	ClaimForDispatch(ctx context.Context, truckID int) error
}

// Repository implements RepositoryInterface on PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new tow-truck repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const truckColumns = `
	SELECT tt.id, tt.driver_id, u.username AS driver_username, tt.status, tt.area_id, l.node_id
	FROM tow_trucks tt
	JOIN users u ON tt.driver_id = u.id
	JOIN LATERAL (
		SELECT node_id FROM locations
		WHERE tow_truck_id = tt.id
		ORDER BY reported_at DESC
		LIMIT 1
	) l ON true`

// List retrieves trucks with optional status and area filters. A pageSize of
// -1 disables pagination, which the dispatch flow uses to see every
// available truck in an area.
func (r *Repository) List(ctx context.Context, page, pageSize int, status *string, areaID *int) ([]models.TowTruck, error) {
	var whereClauses []string
	var args []interface{}
	argIdx := 1

	if status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("tt.status = $%d", argIdx))
		args = append(args, *status)
		argIdx++
	}
	if areaID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("tt.area_id = $%d", argIdx))
		args = append(args, *areaID)
		argIdx++
	}

	query := truckColumns
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += " ORDER BY tt.id ASC"
	if pageSize != -1 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, pageSize, page*pageSize)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository.List: %w", err)
	}
	defer rows.Close()

	var trucks []models.TowTruck
	for rows.Next() {
		var t models.TowTruck
		if err := rows.Scan(&t.ID, &t.DriverID, &t.DriverUsername, &t.Status, &t.AreaID, &t.NodeID); err != nil {
			return nil, fmt.Errorf("repository.List scan: %w", err)
		}
		trucks = append(trucks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.List rows: %w", err)
	}
	return trucks, nil
}

func (r *Repository) FindByID(ctx context.Context, truckID int) (*models.TowTruck, error) {
	query := truckColumns + " WHERE tt.id = $1"
	var t models.TowTruck
	err := r.db.QueryRow(ctx, query, truckID).Scan(
		&t.ID, &t.DriverID, &t.DriverUsername, &t.Status, &t.AreaID, &t.NodeID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return &t, nil
}

func (r *Repository) UpdateLocation(ctx context.Context, truckID, nodeID int) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO locations (tow_truck_id, node_id) VALUES ($1, $2)`,
		truckID, nodeID)
	if err != nil {
		return fmt.Errorf("repository.UpdateLocation: %w", err)
	}
	return nil
}

func (r *Repository) UpdateStatus(ctx context.Context, truckID int, status string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE tow_trucks SET status = $1 WHERE id = $2`,
		status, truckID)
	if err != nil {
		return fmt.Errorf("repository.UpdateStatus: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *Repository) ClaimForDispatch(ctx context.Context, truckID int) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE tow_trucks SET status = $1 WHERE id = $2 AND status = $3`,
		models.TruckBusy, truckID, models.TruckAvailable)
	if err != nil {
		return fmt.Errorf("repository.ClaimForDispatch: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrConflict
	}
	return nil
}
