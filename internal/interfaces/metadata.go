package interfaces

import (
	"context"

	"go-reactpad-cache/internal/models"
)

//go:generate mockgen -package=mock -source=metadata.go -destination=mock/metadata.go

// MetadataSource reads off-chain presale descriptions
type MetadataSource interface {
	PresaleMetadata(ctx context.Context, address string) (*models.PresaleMetadata, error)
}
