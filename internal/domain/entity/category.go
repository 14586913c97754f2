package entity

import "time"

// Category representa una categoría de productos. No es dueña del ciclo de
// vida de sus productos: no puede eliminarse mientras alguno la referencie.
type Category struct {
	ID          string
	Name        string // único
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
