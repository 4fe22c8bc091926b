package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const shapeSource = `package shapes

//thin::object
type Shape interface {
	Area() float64
}
`

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func generateBody(t *testing.T, req GenerateRequest) string {
	t.Helper()
	b, err := json.Marshal(req)
	require.NoError(t, err)
	return string(b)
}

func TestHealth(t *testing.T) {
	s := New(DefaultConfig(), "v1.2.3")
	rec := do(t, s, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","version":"v1.2.3"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestGenerate(t *testing.T) {
	s := New(DefaultConfig(), "dev")
	rec := do(t, s, http.MethodPost, "/v1/generate", generateBody(t, GenerateRequest{
		Filename: "shapes.go",
		Source:   shapeSource,
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "shapes_thin.go", resp.Path)
	assert.Equal(t, []string{"Shape"}, resp.Interfaces)
	assert.Contains(t, resp.Content, "type BoxedShape struct")
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), resp.RequestID)
}

func TestGenerateWithoutAnnotations(t *testing.T) {
	s := New(DefaultConfig(), "dev")
	rec := do(t, s, http.MethodPost, "/v1/generate", generateBody(t, GenerateRequest{
		Source: "package shapes\n\ntype Plain interface{ Do() }\n",
	}))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Path)
	assert.Empty(t, resp.Interfaces)
}

func TestGenerateRejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		message string
		code    string
		line    int
	}{
		{
			name:    "invalid json",
			body:    "{",
			status:  http.StatusBadRequest,
			message: "request body must be a JSON object",
		},
		{
			name:    "empty source",
			body:    generateBody(t, GenerateRequest{}),
			status:  http.StatusBadRequest,
			message: "source is required",
		},
		{
			name:    "bad filename",
			body:    generateBody(t, GenerateRequest{Filename: "shapes.txt", Source: shapeSource}),
			status:  http.StatusBadRequest,
			message: "filename must end in .go",
		},
		{
			name:    "syntax error",
			body:    generateBody(t, GenerateRequest{Source: "package shapes\n\ntype X interface {"}),
			status:  http.StatusUnprocessableEntity,
			message: "source does not parse",
			code:    "SyntaxError",
		},
		{
			name: "value receiver",
			body: generateBody(t, GenerateRequest{Source: `package shapes

//thin::object
type Shape interface {
	//thin::method(receiver = value)
	Area() float64
}
`}),
			status:  http.StatusUnprocessableEntity,
			message: "generation failed",
			code:    "MissingReceiver",
			line:    5,
		},
		{
			name: "inheritance needs the gate",
			body: generateBody(t, GenerateRequest{Source: `package shapes

//thin::object(inheritance(possible_super_trait = true))
type Shape interface {
	Area() float64
}
`, ExperimentalInheritance: new(bool)}),
			status:  http.StatusUnprocessableEntity,
			message: "generation failed",
			code:    "InheritanceNotEnabled",
			line:    3,
		},
	}
	s := New(DefaultConfig(), "dev")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/generate", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var he HttpError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &he))
			assert.Equal(t, tt.message, he.Message)
			assert.Equal(t, tt.status, he.StatusCode)
			assert.NotEmpty(t, he.RequestID)
			if tt.code != "" {
				require.NotEmpty(t, he.Diagnostics)
				assert.Equal(t, tt.code, he.Diagnostics[0].Code)
			}
			if tt.line > 0 {
				assert.Equal(t, tt.line, he.Diagnostics[0].Line)
			}
		})
	}
}

func TestGenerateInheritanceOverride(t *testing.T) {
	source := `package shapes

//thin::object(inheritance(possible_super_trait = true))
type Shape interface {
	Area() float64
}
`
	enabled := true
	s := New(DefaultConfig(), "dev")
	rec := do(t, s, http.MethodPost, "/v1/generate", generateBody(t, GenerateRequest{
		Source:                  source,
		ExperimentalInheritance: &enabled,
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "ThinImplementsShape")

	cfg := DefaultConfig()
	cfg.ExperimentalInheritance = true
	rec = do(t, New(cfg, "dev"), http.MethodPost, "/v1/generate", generateBody(t, GenerateRequest{Source: source}))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGenerateRemoteSuperIsWarning(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExperimentalInheritance = true
	s := New(cfg, "dev")
	rec := do(t, s, http.MethodPost, "/v1/generate", generateBody(t, GenerateRequest{Source: `package shapes

import "example.com/geo"

//thin::object(inheritance(extends(geo.Shape)))
type Circle interface {
	geo.Shape
	Radius() float64
}
`}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Warnings)
	assert.Contains(t, resp.Warnings[0].Message, "does not load package example.com/geo")
}

func TestSourceLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSourceBytes = 16
	s := New(cfg, "dev")

	tests := []struct {
		name string
		body string
	}{
		{name: "source over limit", body: generateBody(t, GenerateRequest{Source: shapeSource})},
		{name: "body over limit", body: generateBody(t, GenerateRequest{
			Source:     "package p\n",
			ImportPath: strings.Repeat("x", 128<<10),
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/v1/generate", tt.body)
			assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

			var he HttpError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &he))
			assert.Equal(t, http.StatusRequestEntityTooLarge, he.StatusCode)
			assert.NotEmpty(t, he.RequestID)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	assert.Equal(t, "65632B", bodyLimit(16))
}

func TestRequestsAreLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	do(t, New(DefaultConfig(), "dev"), http.MethodGet, "/healthz", "")

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/healthz", fields["uri"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
}

func TestUnknownRouteIsJSON(t *testing.T) {
	rec := do(t, New(DefaultConfig(), "dev"), http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var he HttpError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &he))
	assert.Equal(t, http.StatusNotFound, he.StatusCode)
}
