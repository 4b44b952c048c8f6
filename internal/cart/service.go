package cart

import (
	"context"

	"github.com/richxcame/ride-hailing-web/internal/graphql"
)

// Executor runs GraphQL documents; *graphql.Client satisfies it
type Executor interface {
	Do(ctx context.Context, doc graphql.Document, variables map[string]interface{}, out interface{}) error
}

// Service loads carts from the GraphQL API
type Service struct {
	client Executor
}

// NewService creates a cart service
func NewService(client Executor) *Service {
	return &Service{client: client}
}

// MyCart returns the caller's cart. A rider without a cart gets an empty one.
func (s *Service) MyCart(ctx context.Context) (*Cart, error) {
	var out struct {
		MyCart *Cart `json:"myCart"`
	}
	if err := s.client.Do(ctx, MyCartQuery, nil, &out); err != nil {
		return nil, graphql.AppError(err, "failed to load cart")
	}
	if out.MyCart == nil {
		return &Cart{Items: []Item{}}, nil
	}
	if out.MyCart.Items == nil {
		out.MyCart.Items = []Item{}
	}
	for i := range out.MyCart.Items {
		out.MyCart.Items[i].Currency = out.MyCart.Currency
	}
	return out.MyCart, nil
}
