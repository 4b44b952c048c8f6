package payments

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/richxcame/ride-hailing-web/internal/graphql"
	"github.com/richxcame/ride-hailing-web/pkg/common"
	"github.com/richxcame/ride-hailing-web/pkg/logger"
)

// Executor runs GraphQL documents; *graphql.Client satisfies it
type Executor interface {
	Do(ctx context.Context, doc graphql.Document, variables map[string]interface{}, out interface{}) error
}

// Service creates payments through the GraphQL API
type Service struct {
	client Executor
}

// NewService creates a payments service
func NewService(client Executor) *Service {
	return &Service{client: client}
}

// CreatePayment sends CreatePayment once; it is never retried so a rider
// cannot be charged twice by this service.
func (s *Service) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*Payment, error) {
	var out struct {
		CreatePayment *Payment `json:"createPayment"`
	}
	if err := s.client.Do(ctx, CreatePaymentMutation, map[string]interface{}{"input": input}, &out); err != nil {
		logger.WithContext(ctx).Warn("create payment failed",
			zap.String("ride_id", input.RideID),
			zap.String("method", input.Method),
			zap.Error(err),
		)
		return nil, graphql.AppError(err, "failed to create payment")
	}
	if out.CreatePayment == nil {
		return nil, common.NewBadGatewayError("failed to create payment", fmt.Errorf("createPayment returned null"))
	}

	logger.WithContext(ctx).Info("payment created",
		zap.String("payment_id", out.CreatePayment.ID),
		zap.String("ride_id", input.RideID),
		zap.String("status", out.CreatePayment.Status),
	)
	return out.CreatePayment, nil
}
