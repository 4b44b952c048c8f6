//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/richxcame/ride-hailing-web/internal/edge"
	"github.com/richxcame/ride-hailing-web/internal/graphql"
	"github.com/richxcame/ride-hailing-web/internal/server"
	"github.com/richxcame/ride-hailing-web/internal/theme"
	"github.com/richxcame/ride-hailing-web/pkg/config"
	"github.com/richxcame/ride-hailing-web/pkg/resilience"
	"github.com/richxcame/ride-hailing-web/test/helpers"
)

var apiResponses = map[string]string{
	"MyCart": `{"data":{"myCart":{"id":"c1","totalItems":1,"totalPrice":9.5,"items":[
	  {"id":"i1","quantity":1,"price":9.5,"product":{"id":"p1","name":"Child seat","imageUrl":""}}]}}}`,
	"CreatePayment": `{"data":{"createPayment":{"id":"pay_1","amount":18.4,"currency":"USD","status":"PENDING",
	  "method":"card","transactionId":"tx_1","createdAt":"2026-10-18T10:00:00Z"}}}`,
	"SingleUpload": `{"data":{"singleUpload":{"filename":"receipt.pdf","mimetype":"application/pdf","encoding":"7bit",
	  "url":"https://files.example.com/receipt.pdf"}}}`,
}

// EdgeFlowTestSuite drives requests through the edge into the web frontend,
// which talks to a fake GraphQL API.
type EdgeFlowTestSuite struct {
	suite.Suite

	api      *helpers.FakeGraphQL
	stateDir string
	web      *httptest.Server
	edge     *httptest.Server
}

func TestEdgeFlowSuite(t *testing.T) {
	suite.Run(t, new(EdgeFlowTestSuite))
}

func (s *EdgeFlowTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	t := s.T()

	s.api = helpers.NewFakeGraphQL(t, apiResponses)
	s.stateDir = t.TempDir()
	s.web = httptest.NewServer(s.newWebRouter())
	t.Cleanup(s.web.Close)

	origin, err := url.Parse(s.web.URL)
	require.NoError(t, err)
	s.edge = httptest.NewServer(edge.NewRouter(edge.NewHandler(origin, nil), "edge"))
	t.Cleanup(s.edge.Close)
}

func (s *EdgeFlowTestSuite) newWebRouter() http.Handler {
	storage, err := theme.NewFileStorage(s.stateDir)
	s.Require().NoError(err)

	breaker := resilience.NewCircuitBreaker(
		graphql.BreakerSettings(resilience.BuildSettings("graphql-it", 0, 0, 0, 0)),
		resilience.GracefulDegradation("graphql"),
	)
	client := graphql.NewClient(s.api.URL, graphql.WithBreaker(breaker))

	router, err := server.NewWebRouter(server.WebDeps{
		Server:  config.ServerConfig{ServiceName: "web", Environment: "test", RequestTimeout: 5},
		Version: "it",
		GraphQL: client,
		Theme:   theme.NewStore(context.Background(), storage),
	})
	s.Require().NoError(err)
	return router
}

func (s *EdgeFlowTestSuite) do(req *http.Request) (*http.Response, string) {
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, string(body)
}

func (s *EdgeFlowTestSuite) TestHelloIsAnsweredAtTheEdge() {
	req, _ := http.NewRequest(http.MethodGet, s.edge.URL+"/api/hello", nil)
	resp, body := s.do(req)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("text/plain", resp.Header.Get("Content-Type"))
	s.Equal("Hello from API!", body)
	s.Empty(s.api.Requests())
}

func (s *EdgeFlowTestSuite) TestCartPageThroughEdge() {
	req, _ := http.NewRequest(http.MethodGet, s.edge.URL+"/cart", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "rider-1"})
	resp, body := s.do(req)

	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(body, "Child seat")
	s.Contains(body, `data-theme="dark"`)
	s.NotEmpty(resp.Header.Get("X-Request-ID"))

	requests := s.api.Requests()
	s.Require().Len(requests, 1)
	s.Equal("Bearer rider-1", requests[0].Authorization)
}

func (s *EdgeFlowTestSuite) TestThemeTogglePersistsAcrossRestart() {
	req, _ := http.NewRequest(http.MethodPost, s.edge.URL+"/api/v1/theme/toggle", nil)
	resp, body := s.do(req)
	s.Require().Equal(http.StatusOK, resp.StatusCode, body)
	s.Contains(body, `"theme":"light"`)

	raw, err := os.ReadFile(filepath.Join(s.stateDir, theme.StorageKey+".json"))
	s.Require().NoError(err)
	s.JSONEq(`{"state":{"theme":"light"},"version":0}`, string(raw))

	// a fresh frontend over the same state directory starts in light mode
	restarted := httptest.NewServer(s.newWebRouter())
	defer restarted.Close()

	req, _ = http.NewRequest(http.MethodGet, restarted.URL+"/api/v1/theme", nil)
	_, body = s.do(req)
	s.Contains(body, `"theme":"light"`)
}

func (s *EdgeFlowTestSuite) TestCreatePaymentThroughEdge() {
	payload := `{"rideId":"r1","amount":18.4,"currency":"USD","method":"card"}`
	req, _ := http.NewRequest(http.MethodPost, s.edge.URL+"/api/v1/payments", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer rider-1")
	resp, body := s.do(req)

	s.Equal(http.StatusCreated, resp.StatusCode, body)
	s.Contains(body, `"transactionId":"tx_1"`)

	requests := s.api.Requests()
	s.Require().Len(requests, 1)
	s.Equal("CreatePayment", requests[0].OperationName)
	input, ok := requests[0].Variables["input"].(map[string]interface{})
	s.Require().True(ok)
	s.Equal("r1", input["rideId"])
	s.Equal(18.4, input["amount"])
}

func (s *EdgeFlowTestSuite) TestSingleUploadThroughEdge() {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "receipt.pdf")
	s.Require().NoError(err)
	_, _ = part.Write([]byte("%PDF-1.7"))
	s.Require().NoError(mw.Close())

	req, _ := http.NewRequest(http.MethodPost, s.edge.URL+"/api/v1/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, body := s.do(req)

	s.Equal(http.StatusCreated, resp.StatusCode, body)
	var envelope struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal([]byte(body), &envelope))
	s.Equal("https://files.example.com/receipt.pdf", envelope.Data.URL)

	requests := s.api.Requests()
	s.Require().Len(requests, 1)
	s.True(requests[0].Multipart)
	s.Equal("SingleUpload", requests[0].OperationName)
}

func (s *EdgeFlowTestSuite) TestUnknownPathIsForwardedVerbatim() {
	req, _ := http.NewRequest(http.MethodGet, s.edge.URL+"/api/hello/world", nil)
	resp, _ := s.do(req)

	// the frontend has no such route, so its 404 comes back through the edge
	s.Equal(http.StatusNotFound, resp.StatusCode)
	s.Empty(s.api.Requests())
}
