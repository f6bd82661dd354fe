package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domainerrors "github.com/openlot/auction-exchange-backend/internal/domain/errors"
	"github.com/openlot/auction-exchange-backend/internal/domain/listing"
)

// CategoryRepository resolves category tree nodes.
type CategoryRepository struct {
	db DBTX
}

func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// GetCategory fetches a category and all its ancestors in one
// recursive query and links them leaf-up.
func (r *CategoryRepository) GetCategory(ctx context.Context, id uuid.UUID) (*listing.Category, error) {
	query := `
		WITH RECURSIVE chain AS (
			SELECT id, name, parent_id, 0 AS depth FROM categories WHERE id = $1
			UNION ALL
			SELECT c.id, c.name, c.parent_id, chain.depth + 1
			FROM categories c JOIN chain ON c.id = chain.parent_id
		)
		SELECT id, name FROM chain ORDER BY depth
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query category chain: %w", err)
	}
	defer rows.Close()

	var head, tail *listing.Category
	for rows.Next() {
		node := new(listing.Category)
		if err := rows.Scan(&node.ID, &node.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		if head == nil {
			head = node
		} else {
			tail.Parent = node
		}
		tail = node
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if head == nil {
		return nil, domainerrors.NewNotFoundError("category")
	}

	return head, nil
}

// Store inserts a category node.
func (r *CategoryRepository) Store(ctx context.Context, c *listing.Category) error {
	var parentID interface{}
	if c.Parent != nil {
		parentID = c.Parent.ID
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, parent_id) VALUES ($1, $2, $3)`,
		c.ID, c.Name, parentID,
	)
	if err != nil {
		return fmt.Errorf("failed to store category: %w", err)
	}

	return nil
}
