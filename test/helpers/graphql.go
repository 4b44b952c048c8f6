package helpers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// GraphQLRequest is one operation received by a FakeGraphQL server
type GraphQLRequest struct {
	OperationName string
	Variables     map[string]interface{}
	Authorization string
	Multipart     bool
}

// FakeGraphQL is an httptest GraphQL API answering by operation name
type FakeGraphQL struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]string
	requests  []GraphQLRequest
}

// NewFakeGraphQL starts a fake API. responses maps operation names to the
// full JSON response body; unknown operations get a GraphQL error.
func NewFakeGraphQL(t *testing.T, responses map[string]string) *FakeGraphQL {
	f := &FakeGraphQL{responses: responses}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

// Requests returns the operations received so far
func (f *FakeGraphQL) Requests() []GraphQLRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]GraphQLRequest(nil), f.requests...)
}

func (f *FakeGraphQL) serve(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	multipart := strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/")
	if multipart {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_ = json.Unmarshal([]byte(r.FormValue("operations")), &body)
	} else {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, GraphQLRequest{
		OperationName: body.OperationName,
		Variables:     body.Variables,
		Authorization: r.Header.Get("Authorization"),
		Multipart:     multipart,
	})
	resp, ok := f.responses[body.OperationName]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		_, _ = io.WriteString(w, `{"errors":[{"message":"unknown operation `+body.OperationName+`"}]}`)
		return
	}
	_, _ = io.WriteString(w, resp)
}
