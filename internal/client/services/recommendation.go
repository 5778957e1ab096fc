package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/cropcare/internal/client/client"
	"github.com/dmitrijs2005/cropcare/internal/client/models"
	"github.com/dmitrijs2005/cropcare/internal/common"
	"github.com/dmitrijs2005/cropcare/internal/logging"
)

// RecommendationService asks the prediction backend which crops suit a soil
// sample. Only a logged-in user may ask.
type RecommendationService interface {
	Recommend(ctx context.Context, sample models.SoilSample) (*models.Recommendation, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type recommendationService struct {
	client  client.Client
	session SessionService
	logger  logging.Logger
}

// NewRecommendationService binds the backend client to the session store.
func NewRecommendationService(c client.Client, session SessionService, logger logging.Logger) RecommendationService {
	return &recommendationService{
		client:  c,
		session: session,
		logger:  logger.With("component", "recommendation"),
	}
}

// Recommend validates sample locally before calling the backend.
func (r *recommendationService) Recommend(ctx context.Context, sample models.SoilSample) (*models.Recommendation, error) {
	user := r.session.CurrentUser()
	if user == nil {
		return nil, common.ErrNoActiveSession
	}
	if err := sample.Validate(); err != nil {
		return nil, err
	}

	rec, err := r.client.Recommend(ctx, sample)
	if err != nil {
		r.logger.Warn(ctx, "recommendation failed", "account_id", user.ID, "error", err)
		return nil, fmt.Errorf("recommendation error: %w", err)
	}

	r.logger.Info(ctx, "recommendation received",
		"account_id", user.ID,
		"soil_type", sample.SoilType,
		"crop", rec.Primary.Crop,
		"confidence", rec.Primary.Confidence,
	)
	return rec, nil
}

// Ping proxies a liveness check to the underlying client.
func (r *recommendationService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (r *recommendationService) Close(ctx context.Context) error {
	return r.client.Close()
}
