package client

import (
	"context"

	"github.com/dmitrijs2005/cropcare/internal/client/models"
)

// Client is the contract of the crop recommendation backend.
type Client interface {
	Ping(ctx context.Context) error
	Recommend(ctx context.Context, sample models.SoilSample) (*models.Recommendation, error)
	Close() error
}
