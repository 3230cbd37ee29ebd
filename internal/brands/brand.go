// Package brands implements the brand domain for Beacon. A brand is the
// subject being tracked: its name and keyword aliases drive the classifier,
// and its competitor list drives the competitor scan.
package brands

import (
	"time"

	"github.com/google/uuid"
)

// Brand represents a tracked brand or product.
type Brand struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Domain      string    `json:"domain"`
	Description string    `json:"description"`
	Keywords    []string  `json:"keywords"`
	Competitors []string  `json:"competitors"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new brand.
type CreateCommand struct {
	Name        string   `json:"name"`
	Domain      string   `json:"domain"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Competitors []string `json:"competitors"`
}

// UpdateCommand carries replacement values for an existing brand.
type UpdateCommand struct {
	Name        string   `json:"name"`
	Domain      string   `json:"domain"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Competitors []string `json:"competitors"`
}
