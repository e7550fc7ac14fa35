// Package server exposes the game engine over HTTP. Requests are converted to
// registry requests, dispatched through the service registry, and the computed
// response is written back as JSON.
package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/jdwd40/sorstar-cli-sub000/srvreg"
)

// Config holds the web server settings.
type Config struct {
	HTTPPort       string
	AllowedOrigins []string
	RateLimit      float64 // requests per second per client IP
	RateBurst      int
}

// WebServer handles HTTP requests
type WebServer struct {
	httpAddr        string
	server          *http.Server
	logger          cmtlog.Logger
	startTime       time.Time
	serviceRegistry *srvreg.ServiceRegistry

	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter
	rateLimit rate.Limit
	rateBurst int
}

// NewWebServer creates a new web server
func NewWebServer(cfg Config, logger cmtlog.Logger, serviceRegistry *srvreg.ServiceRegistry) *WebServer {
	mux := http.NewServeMux()

	ws := &WebServer{
		httpAddr:        ":" + cfg.HTTPPort,
		logger:          logger,
		startTime:       time.Now(),
		serviceRegistry: serviceRegistry,
		limiters:        make(map[string]*rate.Limiter),
		rateLimit:       rate.Limit(cfg.RateLimit),
		rateBurst:       cfg.RateBurst,
	}

	// Register routes
	mux.HandleFunc("/", ws.handleRoot)
	mux.HandleFunc("/game", ws.handleAPI)
	mux.HandleFunc("/game/", ws.handleAPI)
	mux.HandleFunc("/buy", ws.handleAPI)
	mux.HandleFunc("/sell", ws.handleAPI)
	mux.HandleFunc("/market/", ws.handleAPI)
	mux.HandleFunc("/planets", ws.handleAPI)
	mux.HandleFunc("/ships", ws.handleAPI)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "X-Game-Id"},
	})

	ws.server = &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: corsMiddleware.Handler(ws.rateLimited(mux)),
	}

	return ws
}

// Start starts the web server
func (ws *WebServer) Start() error {
	ws.logger.Info("Starting web server", "addr", ws.httpAddr)
	go func() {
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ws.logger.Error("web server error: ", "err", err)
		}
	}()
	return nil
}

// Shutdown gracefully shuts down the web server
func (ws *WebServer) Shutdown(ctx context.Context) error {
	ws.logger.Info("Shutting down web server")
	return ws.server.Shutdown(ctx)
}

// handleRoot handles the root endpoint which shows server status
func (ws *WebServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		JSONError(w, "Not found", http.StatusNotFound)
		return
	}

	status := map[string]any{
		"service": "sorstar",
		"status":  "online",
		"uptime":  time.Since(ws.startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(status); err != nil {
		JSONError(w, "Error encoding response: "+err.Error(), http.StatusInternalServerError)
	}
}

// handleAPI dispatches game API requests through the service registry.
func (ws *WebServer) handleAPI(w http.ResponseWriter, r *http.Request) {
	requestID, err := generateRequestID()
	if err != nil {
		JSONError(w, "Internal Server Error", http.StatusInternalServerError)
		ws.logger.Error("Failed to generate request ID", "err", err)
		return
	}

	request, err := srvreg.ConvertHTTPRequest(r, requestID)
	if err != nil {
		JSONError(w, "Failed to convert request: "+err.Error(), http.StatusUnprocessableEntity)
		ws.logger.Error("Failed to convert HTTP request", "err", err)
		return
	}

	response, err := request.GenerateResponse(r.Context(), ws.serviceRegistry)
	if err != nil {
		// Handlers return a populated response even on error; the error is
		// for the logs.
		ws.logger.Info("Request failed",
			"request_id", requestID,
			"method", request.Method,
			"path", request.Path,
			"err", err,
		)
	}

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(response.StatusCode)
	if _, err := w.Write([]byte(response.Body)); err != nil {
		ws.logger.Error("Failed to write response", "err", err)
	}

	ws.logger.Info("=== Req-Res Pair Result ===",
		request.Path,
		request.Method,
		request.Body,
		response.StatusCode,
		response.Body,
	)
}

// rateLimited throttles clients per IP address.
func (ws *WebServer) rateLimited(next http.Handler) http.Handler {
	if ws.rateLimit <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !ws.limiterFor(host).Allow() {
			JSONError(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (ws *WebServer) limiterFor(host string) *rate.Limiter {
	ws.limiterMu.Lock()
	defer ws.limiterMu.Unlock()
	limiter, ok := ws.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(ws.rateLimit, ws.rateBurst)
		ws.limiters[host] = limiter
	}
	return limiter
}

func generateRequestID() (string, error) {
	bytes := make([]byte, 16)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// JSONError sends a JSON formatted error response with the given status code and message
func JSONError(w http.ResponseWriter, message string, statusCode int) {
	errorResponse := struct {
		Error string `json:"error"`
	}{
		Error: message,
	}
	jsonBytes, err := json.Marshal(errorResponse)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(jsonBytes)
}
