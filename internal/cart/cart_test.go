package cart

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/richxcame/ride-hailing-web/internal/graphql"
	"github.com/richxcame/ride-hailing-web/internal/layout"
	"github.com/richxcame/ride-hailing-web/pkg/common"
	"github.com/richxcame/ride-hailing-web/pkg/resilience"
	"github.com/richxcame/ride-hailing-web/test/helpers"
	"github.com/richxcame/ride-hailing-web/test/mocks"
)

const cartData = `{"myCart":{"id":"c1","totalItems":3,"totalPrice":27.5,"currency":"EUR","items":[
	{"id":"i1","quantity":2,"price":10,"product":{"id":"p1","name":"Airport transfer","imageUrl":"https://img/p1.png"}},
	{"id":"i2","quantity":1,"price":7.5,"product":{"id":"p2","name":"Child seat","imageUrl":""}}]}}`

func TestMyCartQuery_Structure(t *testing.T) {
	assert.Equal(t, "MyCart", MyCartQuery.Name)
	assert.Equal(t, graphql.KindQuery, MyCartQuery.Kind)

	vars, err := graphql.Variables(MyCartQuery)
	require.NoError(t, err)
	assert.Empty(t, vars)

	sel, err := graphql.Selection(MyCartQuery)
	require.NoError(t, err)
	want := []graphql.Field{{Name: "myCart", Children: []graphql.Field{
		{Name: "id"},
		{Name: "totalItems"},
		{Name: "totalPrice"},
		{Name: "currency"},
		{Name: "items", Children: []graphql.Field{
			{Name: "id"},
			{Name: "quantity"},
			{Name: "price"},
			{Name: "product", Children: []graphql.Field{
				{Name: "id"},
				{Name: "name"},
				{Name: "imageUrl"},
			}},
		}},
	}}}
	if diff := cmp.Diff(want, sel); diff != "" {
		t.Errorf("MyCart selection mismatch (-want +got):\n%s", diff)
	}
}

func TestService_MyCart(t *testing.T) {
	client := new(mocks.MockExecutor)
	client.On("Do", mock.Anything, "MyCart", map[string]interface{}(nil), mock.Anything).
		Run(mocks.RespondWith(cartData)).Return(nil)

	cart, err := NewService(client).MyCart(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "c1", cart.ID)
	assert.Equal(t, 3, cart.TotalItems)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, "Airport transfer", cart.Items[0].Product.Name)
	assert.Equal(t, 20.0, cart.Items[0].LineTotal())
	assert.Equal(t, "EUR", cart.Items[1].Currency)
	client.AssertExpectations(t)
}

func TestService_MyCart_NoCart(t *testing.T) {
	client := new(mocks.MockExecutor)
	client.On("Do", mock.Anything, "MyCart", mock.Anything, mock.Anything).
		Run(mocks.RespondWith(`{"myCart":null}`)).Return(nil)

	cart, err := NewService(client).MyCart(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}

func TestService_MyCart_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unauthenticated", &graphql.Errors{Operation: "MyCart", List: []graphql.Error{{Message: "no", Extensions: map[string]interface{}{"code": "UNAUTHENTICATED"}}}}, http.StatusUnauthorized},
		{"breaker open", resilience.ErrCircuitOpen, http.StatusServiceUnavailable},
		{"transport", errors.New("connection refused"), http.StatusBadGateway},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := new(mocks.MockExecutor)
			client.On("Do", mock.Anything, "MyCart", mock.Anything, mock.Anything).Return(tc.err)

			_, err := NewService(client).MyCart(context.Background())
			var appErr *common.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tc.status, appErr.Code)
		})
	}
}

func TestHandler_GetCart(t *testing.T) {
	client := new(mocks.MockExecutor)
	client.On("Do", mock.Anything, "MyCart", mock.Anything, mock.Anything).
		Run(mocks.RespondWith(cartData)).Return(nil)

	router := helpers.NewTestRouter()
	NewHandler(NewService(client)).RegisterRoutes(router.Group("/api/v1"))

	w := helpers.PerformRequest(router, http.MethodGet, "/api/v1/cart", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var cart Cart
	resp := helpers.DecodeResponse(t, w, &cart)
	assert.True(t, resp.Success)
	assert.Equal(t, 27.5, cart.TotalPrice)
}

func TestHandler_GetCart_Unavailable(t *testing.T) {
	client := new(mocks.MockExecutor)
	client.On("Do", mock.Anything, "MyCart", mock.Anything, mock.Anything).Return(resilience.ErrCircuitOpen)

	router := helpers.NewTestRouter()
	NewHandler(NewService(client)).RegisterRoutes(router.Group("/api/v1"))

	w := helpers.PerformRequest(router, http.MethodGet, "/api/v1/cart", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := helpers.DecodeResponse(t, w, nil)
	assert.False(t, resp.Success)
}

func TestHandler_CartPage(t *testing.T) {
	client := new(mocks.MockExecutor)
	client.On("Do", mock.Anything, "MyCart", mock.Anything, mock.Anything).
		Run(mocks.RespondWith(cartData)).Return(nil)

	pages, err := layout.NewRenderer(func() string { return "light" })
	require.NoError(t, err)

	router := helpers.NewTestRouter()
	NewHandler(NewService(client)).RegisterPages(router, pages)

	w := helpers.PerformRequest(router, http.MethodGet, "/cart", "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `data-theme="light"`)
	assert.Contains(t, body, "Airport transfer")
	assert.Contains(t, body, "2 x €10.00 = €20.00")
	assert.Contains(t, body, "1 x €7.50 = €7.50")
	assert.Contains(t, body, "Child seat")
}
