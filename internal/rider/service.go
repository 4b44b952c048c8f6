package rider

import (
	"context"
	"fmt"

	"github.com/richxcame/ride-hailing-web/internal/graphql"
	"github.com/richxcame/ride-hailing-web/pkg/common"
)

// Executor runs GraphQL documents; *graphql.Client satisfies it
type Executor interface {
	Do(ctx context.Context, doc graphql.Document, variables map[string]interface{}, out interface{}) error
}

// Service updates rider state through the GraphQL API
type Service struct {
	client Executor
}

// NewService creates a rider service
func NewService(client Executor) *Service {
	return &Service{client: client}
}

// UpdateLocation sends the rider's position
func (s *Service) UpdateLocation(ctx context.Context, input *UpdateLocationInput) (*Location, error) {
	var out struct {
		UpdateRiderLocation *Location `json:"updateRiderLocation"`
	}
	if err := s.client.Do(ctx, UpdateRiderLocationMutation, map[string]interface{}{"input": input}, &out); err != nil {
		return nil, graphql.AppError(err, "failed to update location")
	}
	if out.UpdateRiderLocation == nil {
		return nil, common.NewBadGatewayError("failed to update location", fmt.Errorf("updateRiderLocation returned null"))
	}
	return out.UpdateRiderLocation, nil
}
