// Package srvreg maps HTTP requests onto engine operations. Routes are
// registered against a method/path table with :param segments; handlers
// receive a plain Request and produce a plain Response, keeping the engine
// free of net/http types.
package srvreg

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"encoding/json"
	"fmt"
	"time"

	cmtlog "github.com/cometbft/cometbft/libs/log"

	"github.com/jdwd40/sorstar-cli-sub000/engine"
)

// Request represents the client's original HTTP request.
type Request struct {
	Method     string            `json:"method"`
	Path       string            `json:"path"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
	RemoteAddr string            `json:"remote_addr"`
	RequestID  string            `json:"request_id"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Response represents the computed response for a request.
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// ServiceHandler is a function type for service handlers.
type ServiceHandler func(ctx context.Context, req *Request) (*Response, error)

// RouteKey is used to uniquely identify a route.
type RouteKey struct {
	Method string
	Path   string
}

// ServiceRegistry manages all service handlers.
type ServiceRegistry struct {
	handlers    map[RouteKey]ServiceHandler
	exactRoutes map[RouteKey]bool // Whether a route is exact or pattern-based
	mu          sync.RWMutex
	engine      *engine.Engine
	logger      cmtlog.Logger
}

// ConvertHTTPRequest converts an http.Request to a Request.
func ConvertHTTPRequest(r *http.Request, requestID string) (*Request, error) {
	headers := make(map[string]string)
	for name, values := range r.Header {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}

	body := ""
	if r.Body != nil {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		body = compactJSON(strings.TrimSpace(string(bodyBytes)))
	}

	return &Request{
		Method:     r.Method,
		Path:       r.URL.Path,
		Headers:    headers,
		Body:       body,
		RemoteAddr: r.RemoteAddr,
		RequestID:  requestID,
		Timestamp:  time.Now(),
	}, nil
}

// NewServiceRegistry creates a new service registry.
func NewServiceRegistry(engine *engine.Engine, logger cmtlog.Logger) *ServiceRegistry {
	return &ServiceRegistry{
		handlers:    make(map[RouteKey]ServiceHandler),
		exactRoutes: make(map[RouteKey]bool),
		engine:      engine,
		logger:      logger,
	}
}

// RegisterHandler registers a new service handler.
func (sr *ServiceRegistry) RegisterHandler(method, path string, isExactPath bool, handler ServiceHandler) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	key := RouteKey{Method: strings.ToUpper(method), Path: path}
	sr.handlers[key] = handler
	sr.exactRoutes[key] = isExactPath
}

// GetHandlerForPath finds the appropriate handler for a given path and a
// boolean of whether or not the handler was found.
func (sr *ServiceRegistry) GetHandlerForPath(method, path string) (ServiceHandler, bool) {
	sr.mu.RLock()
	defer sr.mu.RUnlock()

	// Try exact match first
	key := RouteKey{Method: strings.ToUpper(method), Path: path}
	if handler, ok := sr.handlers[key]; ok {
		if sr.exactRoutes[key] {
			return handler, true
		}
	}

	// Try pattern matching
	for routeKey, handler := range sr.handlers {
		if routeKey.Method != strings.ToUpper(method) {
			continue
		}
		if sr.exactRoutes[routeKey] {
			continue
		}
		if matchPath(routeKey.Path, path) {
			return handler, true
		}
	}

	return nil, false
}

// matchPath does simple pattern matching for routes.
// It supports patterns like "/market/:id" matching "/market/123".
func matchPath(pattern, path string) bool {
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")

	if len(patternParts) != len(pathParts) {
		return false
	}

	for i := range len(patternParts) {
		if strings.HasPrefix(patternParts[i], ":") {
			// This is a parameter part, it matches anything
			continue
		}
		if patternParts[i] != pathParts[i] {
			return false
		}
	}

	return true
}

// RegisterDefaultServices sets up the game's endpoints.
func (sr *ServiceRegistry) RegisterDefaultServices() {
	// Session lifecycle
	sr.RegisterHandler("POST", "/game/start", true, sr.StartGameHandler)
	sr.RegisterHandler("GET", "/game", true, sr.GameStateHandler)
	sr.RegisterHandler("GET", "/game/transactions", true, sr.HistoryHandler)
	// Commodity trade
	sr.RegisterHandler("POST", "/buy", true, sr.BuyHandler)
	sr.RegisterHandler("POST", "/sell", true, sr.SellHandler)
	// Travel
	sr.RegisterHandler("POST", "/game/travel", true, sr.TravelHandler)
	sr.RegisterHandler("GET", "/game/travel/cost/:planetId", false, sr.TravelCostHandler)
	// Fuel
	sr.RegisterHandler("GET", "/game/fuel", true, sr.FuelStatusHandler)
	sr.RegisterHandler("POST", "/game/fuel/buy", true, sr.PurchaseFuelHandler)
	// Reference data
	sr.RegisterHandler("GET", "/market/:planetId", false, sr.MarketHandler)
	sr.RegisterHandler("GET", "/market/:planetId/fuel", false, sr.MarketFuelHandler)
	sr.RegisterHandler("GET", "/planets", true, sr.PlanetsHandler)
	sr.RegisterHandler("GET", "/ships", true, sr.ShipsHandler)
}

// GenerateResponse executes the request and generates a response.
func (req *Request) GenerateResponse(ctx context.Context, services *ServiceRegistry) (*Response, error) {
	handler, found := services.GetHandlerForPath(req.Method, req.Path)
	if !found {
		return &Response{
			StatusCode: http.StatusNotFound,
			Headers:    map[string]string{"Content-Type": "text/plain"},
			Body:       fmt.Sprintf("Service not found for %s %s", req.Method, req.Path),
		}, nil
	}

	return handler(ctx, req)
}

func compactJSON(body string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(body)); err != nil {
		// If it's not JSON, return trimmed original
		return strings.TrimSpace(body)
	}
	return buf.String()
}
