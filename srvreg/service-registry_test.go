package srvreg

import (
	"context"
	"net/http"
	"testing"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdwd40/sorstar-cli-sub000/engine"
)

func TestMatchPath(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		match   bool
	}{
		{"/market/:planetId", "/market/3", true},
		{"/market/:planetId", "/market/3/fuel", false},
		{"/market/:planetId/fuel", "/market/3/fuel", true},
		{"/game/travel/cost/:planetId", "/game/travel/cost/7", true},
		{"/game/travel/cost/:planetId", "/game/travel/cost", false},
		{"/planets", "/planets", true},
		{"/planets", "/ships", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.match, matchPath(tt.pattern, tt.path),
			"pattern %s vs path %s", tt.pattern, tt.path)
	}
}

func TestGetHandlerForPath(t *testing.T) {
	sr := NewServiceRegistry(nil, cmtlog.NewNopLogger())
	called := ""
	sr.RegisterHandler("GET", "/planets", true, func(ctx context.Context, req *Request) (*Response, error) {
		called = "exact"
		return &Response{StatusCode: http.StatusOK}, nil
	})
	sr.RegisterHandler("GET", "/market/:planetId", false, func(ctx context.Context, req *Request) (*Response, error) {
		called = "pattern"
		return &Response{StatusCode: http.StatusOK}, nil
	})

	handler, found := sr.GetHandlerForPath("GET", "/planets")
	require.True(t, found)
	handler(context.Background(), &Request{})
	assert.Equal(t, "exact", called)

	handler, found = sr.GetHandlerForPath("get", "/market/42")
	require.True(t, found)
	handler(context.Background(), &Request{})
	assert.Equal(t, "pattern", called)

	_, found = sr.GetHandlerForPath("POST", "/planets")
	assert.False(t, found)
	_, found = sr.GetHandlerForPath("GET", "/nowhere")
	assert.False(t, found)
}

func TestGenerateResponseUnknownRoute(t *testing.T) {
	sr := NewServiceRegistry(nil, cmtlog.NewNopLogger())
	req := &Request{Method: "GET", Path: "/nowhere"}

	resp, err := req.GenerateResponse(context.Background(), sr)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{engine.ErrCodeValidation, http.StatusBadRequest},
		{engine.ErrCodeNotFound, http.StatusNotFound},
		{engine.ErrCodeInsufficientFunds, http.StatusConflict},
		{engine.ErrCodeInsufficientSpace, http.StatusConflict},
		{engine.ErrCodeInsufficientCargo, http.StatusConflict},
		{engine.ErrCodeInsufficientFuel, http.StatusConflict},
		{engine.ErrCodeFuelCapacity, http.StatusConflict},
		{engine.ErrCodeAlreadyThere, http.StatusConflict},
		{engine.ErrCodeGameExists, http.StatusConflict},
		{engine.ErrCodeDatabase, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, statusFor(tt.code), "code %s", tt.code)
	}
}

func TestErrorResponseHidesInternalDetail(t *testing.T) {
	resp, err := errorResponse(&engine.Error{
		Code:    engine.ErrCodeDatabase,
		Message: "a database error occurred",
		Detail:  "connection refused",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, `{"error":"Internal server error"}`, resp.Body)

	resp, err = errorResponse(&engine.Error{
		Code:    engine.ErrCodeInsufficientFunds,
		Message: "Not enough credits",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, `{"error":"Not enough credits"}`, resp.Body)
}
