package listing

import (
	"fmt"

	"github.com/google/uuid"
)

// Category is a node in the shared category tree. Parent is nil for
// root categories; subtrees are shared between listings by reference.
type Category struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Parent *Category `json:"-"`
}

func NewCategory(name string, parent *Category) (*Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name cannot be empty")
	}

	c := &Category{
		ID:     uuid.New(),
		Name:   name,
		Parent: parent,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate walks the parent chain and rejects empty names and cycles.
func (c *Category) Validate() error {
	if c == nil {
		return fmt.Errorf("category is nil")
	}

	seen := make(map[uuid.UUID]struct{})
	for node := c; node != nil; node = node.Parent {
		if node.ID == uuid.Nil {
			return fmt.Errorf("category ID is required")
		}
		if node.Name == "" {
			return fmt.Errorf("category name cannot be empty")
		}
		if _, ok := seen[node.ID]; ok {
			return fmt.Errorf("category chain contains a cycle at %s", node.Name)
		}
		seen[node.ID] = struct{}{}
	}

	return nil
}

// Path returns the category names from root to this node.
func (c *Category) Path() []string {
	var reversed []string
	for node := c; node != nil; node = node.Parent {
		reversed = append(reversed, node.Name)
	}

	path := make([]string, len(reversed))
	for i, name := range reversed {
		path[len(path)-1-i] = name
	}
	return path
}
