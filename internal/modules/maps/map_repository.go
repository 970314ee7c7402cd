package maps

import (
	"context"
	"errors"
	"fmt"

	"roadside-dispatch/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryInterface defines the map storage operations the graph and the
// dispatch flow depend on.
type RepositoryInterface interface {
	// ListNodes returns all nodes, or only one area's nodes when areaID is set.
	ListNodes(ctx context.Context, areaID *int) ([]models.Node, error)
	// ListEdges returns all edges, or only edges whose A-node lies in the area.
	ListEdges(ctx context.Context, areaID *int) ([]models.Edge, error)
	// AreaIDForNode resolves the area a node belongs to.
	AreaIDForNode(ctx context.Context, nodeID int) (int, error)
	// UpdateEdge sets a new weight on an existing edge.
	UpdateEdge(ctx context.Context, nodeAID, nodeBID, weight int) error
}

// Repository implements RepositoryInterface on PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new map repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

func (r *Repository) ListNodes(ctx context.Context, areaID *int) ([]models.Node, error) {
	query := `SELECT id, x, y, area_id FROM nodes ORDER BY id`
	var rows pgx.Rows
	var err error
	if areaID != nil {
		query = `SELECT id, x, y, area_id FROM nodes WHERE area_id = $1 ORDER BY id`
		rows, err = r.db.Query(ctx, query, *areaID)
	} else {
		rows, err = r.db.Query(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("repository.ListNodes: %w", err)
	}
	defer rows.Close()

	var nodes []models.Node
	for rows.Next() {
		var n models.Node
		if err := rows.Scan(&n.ID, &n.X, &n.Y, &n.AreaID); err != nil {
			return nil, fmt.Errorf("repository.ListNodes scan: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListNodes rows: %w", err)
	}
	return nodes, nil
}

func (r *Repository) ListEdges(ctx context.Context, areaID *int) ([]models.Edge, error) {
	query := `SELECT e.node_a_id, e.node_b_id, e.weight FROM edges e`
	var rows pgx.Rows
	var err error
	if areaID != nil {
		query += ` JOIN nodes n ON e.node_a_id = n.id WHERE n.area_id = $1`
		rows, err = r.db.Query(ctx, query, *areaID)
	} else {
		rows, err = r.db.Query(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("repository.ListEdges: %w", err)
	}
	defer rows.Close()

	var edges []models.Edge
	for rows.Next() {
		var e models.Edge
		if err := rows.Scan(&e.NodeAID, &e.NodeBID, &e.Weight); err != nil {
			return nil, fmt.Errorf("repository.ListEdges scan: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository.ListEdges rows: %w", err)
	}
	return edges, nil
}

func (r *Repository) AreaIDForNode(ctx context.Context, nodeID int) (int, error) {
	var areaID int
	err := r.db.QueryRow(ctx, `SELECT area_id FROM nodes WHERE id = $1`, nodeID).Scan(&areaID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, models.ErrNotFound
		}
		return 0, fmt.Errorf("repository.AreaIDForNode: %w", err)
	}
	return areaID, nil
}

func (r *Repository) UpdateEdge(ctx context.Context, nodeAID, nodeBID, weight int) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE edges SET weight = $1 WHERE node_a_id = $2 AND node_b_id = $3`,
		weight, nodeAID, nodeBID)
	if err != nil {
		return fmt.Errorf("repository.UpdateEdge: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
