package interfaces

import (
	"context"
	"math/big"

	"go-reactpad-cache/internal/models"
)

//go:generate mockgen -package=mock -source=reader.go -destination=mock/reader.go

// ChainReader fetches launchpad resources from the active chain
type ChainReader interface {
	UserTokens(ctx context.Context, owner string) ([]models.TokenInfo, error)
	UserLocks(ctx context.Context, owner string) ([]models.LockRecord, error)
	Lock(ctx context.Context, id *big.Int) (models.LockRecord, error)
	Markets(ctx context.Context) ([]models.Market, error)
	PresaleAddresses(ctx context.Context) ([]string, error)
	Presale(ctx context.Context, address string) (models.PresaleInfo, error)
	// IsWhitelisted and Contribution are advisory per-account reads, never cached
	IsWhitelisted(ctx context.Context, presale, account string) (bool, error)
	Contribution(ctx context.Context, presale, account string) (*big.Int, error)
}
