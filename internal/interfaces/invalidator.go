package interfaces

import "go-reactpad-cache/internal/models"

//go:generate mockgen -package=mock -source=invalidator.go -destination=mock/invalidator.go

// Invalidator drops cached state after a confirmed write
type Invalidator interface {
	Invalidate(inv models.Invalidation)
}
