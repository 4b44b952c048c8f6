package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/richxcame/ride-hailing-web/internal/graphql"
)

// MockExecutor is a mock GraphQL client. Expectations match on the
// operation name rather than the whole document.
type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Do(ctx context.Context, doc graphql.Document, variables map[string]interface{}, out interface{}) error {
	args := m.Called(ctx, doc.Name, variables, out)
	return args.Error(0)
}

func (m *MockExecutor) Upload(ctx context.Context, doc graphql.Document, variables map[string]interface{}, out interface{}) error {
	args := m.Called(ctx, doc.Name, variables, out)
	return args.Error(0)
}

// RespondWith returns a Run hook that decodes data, the JSON "data" member
// of a GraphQL response, into the out argument.
func RespondWith(data string) func(args mock.Arguments) {
	return func(args mock.Arguments) {
		if err := json.Unmarshal([]byte(data), args.Get(3)); err != nil {
			panic(err)
		}
	}
}
