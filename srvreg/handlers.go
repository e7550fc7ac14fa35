package srvreg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jdwd40/sorstar-cli-sub000/engine"
)

var defaultHeaders = map[string]string{"Content-Type": "application/json"}

// gameIDHeader carries the caller's session identity on GET requests; POST
// bodies carry a gameId field instead. Authentication happens upstream.
const gameIDHeader = "X-Game-Id"

// statusFor maps engine error codes onto HTTP statuses.
func statusFor(code string) int {
	switch code {
	case engine.ErrCodeValidation:
		return http.StatusBadRequest
	case engine.ErrCodeNotFound:
		return http.StatusNotFound
	case engine.ErrCodeInsufficientFunds,
		engine.ErrCodeInsufficientSpace,
		engine.ErrCodeInsufficientCargo,
		engine.ErrCodeInsufficientFuel,
		engine.ErrCodeFuelCapacity,
		engine.ErrCodeAlreadyThere,
		engine.ErrCodeGameExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(engineErr *engine.Error) (*Response, error) {
	status := statusFor(engineErr.Code)
	message := engineErr.Message
	if status == http.StatusInternalServerError {
		// Internal detail stays in the logs
		message = "Internal server error"
	}
	return &Response{
		StatusCode: status,
		Headers:    defaultHeaders,
		Body:       fmt.Sprintf(`{"error":%q}`, message),
	}, fmt.Errorf("%s: %s", engineErr.Code, engineErr.Message)
}

func jsonResponse(statusCode int, payload any) (*Response, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return &Response{
			StatusCode: http.StatusInternalServerError,
			Headers:    defaultHeaders,
			Body:       `{"error":"Internal server error"}`,
		}, err
	}
	return &Response{
		StatusCode: statusCode,
		Headers:    defaultHeaders,
		Body:       string(bodyBytes),
	}, nil
}

func badRequest(message string) (*Response, error) {
	return &Response{
		StatusCode: http.StatusBadRequest,
		Headers:    defaultHeaders,
		Body:       fmt.Sprintf(`{"error":%q}`, message),
	}, fmt.Errorf("bad request: %s", message)
}

func unprocessable(err error) (*Response, error) {
	return &Response{
		StatusCode: http.StatusUnprocessableEntity,
		Headers:    defaultHeaders,
		Body:       fmt.Sprintf(`{"error":"Invalid body format: %s"}`, err.Error()),
	}, fmt.Errorf("invalid body format")
}

// gameIDFromHeader reads the session id GET endpoints use.
func gameIDFromHeader(req *Request) (uint, *Response, error) {
	raw := req.Headers[gameIDHeader]
	if raw == "" {
		resp, err := badRequest("game id is required in the " + gameIDHeader + " header")
		return 0, resp, err
	}
	id, parseErr := strconv.ParseUint(raw, 10, 64)
	if parseErr != nil || id == 0 {
		resp, err := badRequest("game id must be a positive integer")
		return 0, resp, err
	}
	return uint(id), nil, nil
}

// pathParam extracts the value at the given index of the request path, e.g.
// index 2 of /market/:planetId.
func pathParam(req *Request, index int) (uint, *Response, error) {
	parts := strings.Split(req.Path, "/")
	if index >= len(parts) {
		resp, err := badRequest("Invalid path format")
		return 0, resp, err
	}
	id, parseErr := strconv.ParseUint(parts[index], 10, 64)
	if parseErr != nil || id == 0 {
		resp, err := badRequest("id must be a positive integer")
		return 0, resp, err
	}
	return uint(id), nil, nil
}

type startGameHandlerBody struct {
	UserID uint `json:"userId"`
	ShipID uint `json:"shipId"`
}

// StartGameHandler creates a new game session from a chosen ship.
func (sr *ServiceRegistry) StartGameHandler(ctx context.Context, req *Request) (*Response, error) {
	var body startGameHandlerBody
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		sr.logger.Info("Failed to parse body", "error", err.Error())
		return unprocessable(err)
	}
	if body.UserID == 0 {
		return badRequest("userId is required")
	}
	if body.ShipID == 0 {
		return badRequest("shipId is required")
	}

	state, engineErr := sr.engine.StartGame(ctx, body.UserID, body.ShipID)
	if engineErr != nil {
		return errorResponse(engineErr)
	}

	return jsonResponse(http.StatusCreated, map[string]any{
		"message":   "Game started",
		"gameState": state,
	})
}

// GameStateHandler returns the caller's full session view.
func (sr *ServiceRegistry) GameStateHandler(ctx context.Context, req *Request) (*Response, error) {
	gameID, resp, err := gameIDFromHeader(req)
	if resp != nil {
		return resp, err
	}

	state, engineErr := sr.engine.GameState(ctx, gameID)
	if engineErr != nil {
		return errorResponse(engineErr)
	}
	return jsonResponse(http.StatusOK, map[string]any{"gameState": state})
}

type tradeHandlerBody struct {
	GameID      uint `json:"gameId"`
	CommodityID uint `json:"commodityId"`
	Quantity    int  `json:"quantity"`
}

func (b *tradeHandlerBody) validate() (*Response, error) {
	if b.GameID == 0 {
		return badRequest("gameId is required")
	}
	if b.CommodityID == 0 {
		return badRequest("commodityId is required")
	}
	return nil, nil
}

// BuyHandler purchases a commodity at the session's current planet.
func (sr *ServiceRegistry) BuyHandler(ctx context.Context, req *Request) (*Response, error) {
	var body tradeHandlerBody
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		sr.logger.Info("Failed to parse body", "error", err.Error())
		return unprocessable(err)
	}
	if resp, err := body.validate(); resp != nil {
		return resp, err
	}

	result, engineErr := sr.engine.Buy(ctx, body.GameID, body.CommodityID, body.Quantity)
	if engineErr != nil {
		return errorResponse(engineErr)
	}

	return jsonResponse(http.StatusOK, map[string]any{
		"message":   result.Message,
		"gameState": result.GameState,
		"totalCost": result.Total,
	})
}

// SellHandler sells cargo at the session's current planet.
func (sr *ServiceRegistry) SellHandler(ctx context.Context, req *Request) (*Response, error) {
	var body tradeHandlerBody
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		sr.logger.Info("Failed to parse body", "error", err.Error())
		return unprocessable(err)
	}
	if resp, err := body.validate(); resp != nil {
		return resp, err
	}

	result, engineErr := sr.engine.Sell(ctx, body.GameID, body.CommodityID, body.Quantity)
	if engineErr != nil {
		return errorResponse(engineErr)
	}

	return jsonResponse(http.StatusOK, map[string]any{
		"message":     result.Message,
		"gameState":   result.GameState,
		"totalEarned": result.Total,
	})
}

type travelHandlerBody struct {
	GameID   uint `json:"gameId"`
	PlanetID uint `json:"planetId"`
}

// TravelHandler moves the ship to another planet.
func (sr *ServiceRegistry) TravelHandler(ctx context.Context, req *Request) (*Response, error) {
	var body travelHandlerBody
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		sr.logger.Info("Failed to parse body", "error", err.Error())
		return unprocessable(err)
	}
	if body.GameID == 0 {
		return badRequest("gameId is required")
	}
	if body.PlanetID == 0 {
		return badRequest("planetId is required")
	}

	result, engineErr := sr.engine.Travel(ctx, body.GameID, body.PlanetID)
	if engineErr != nil {
		return errorResponse(engineErr)
	}

	return jsonResponse(http.StatusOK, map[string]any{
		"message":      result.Message,
		"gameState":    result.GameState,
		"fuelConsumed": result.FuelConsumed,
		"turnsElapsed": result.TurnsElapsed,
		"newLocation":  result.NewLocation,
	})
}

// TravelCostHandler quotes a trip without performing it.
func (sr *ServiceRegistry) TravelCostHandler(ctx context.Context, req *Request) (*Response, error) {
	gameID, resp, err := gameIDFromHeader(req)
	if resp != nil {
		return resp, err
	}
	planetID, resp, err := pathParam(req, 4) // /game/travel/cost/:planetId
	if resp != nil {
		return resp, err
	}

	quote, engineErr := sr.engine.TravelCost(ctx, gameID, planetID)
	if engineErr != nil {
		return errorResponse(engineErr)
	}
	return jsonResponse(http.StatusOK, quote)
}

type purchaseFuelHandlerBody struct {
	GameID   uint `json:"gameId"`
	PlanetID uint `json:"planetId"`
	Quantity int  `json:"quantity"`
}

// PurchaseFuelHandler buys fuel at the session's current planet.
func (sr *ServiceRegistry) PurchaseFuelHandler(ctx context.Context, req *Request) (*Response, error) {
	var body purchaseFuelHandlerBody
	if err := json.Unmarshal([]byte(req.Body), &body); err != nil {
		sr.logger.Info("Failed to parse body", "error", err.Error())
		return unprocessable(err)
	}
	if body.GameID == 0 {
		return badRequest("gameId is required")
	}

	receipt, engineErr := sr.engine.PurchaseFuel(ctx, body.GameID, body.PlanetID, body.Quantity)
	if engineErr != nil {
		return errorResponse(engineErr)
	}

	return jsonResponse(http.StatusOK, map[string]any{
		"message":       fmt.Sprintf("Purchased %d fuel units", receipt.FuelPurchased),
		"fuelPurchased": receipt.FuelPurchased,
		"totalCost":     receipt.TotalCost,
		"newFuelLevel":  receipt.NewFuelLevel,
		"gameState":     receipt.GameState,
	})
}

// FuelStatusHandler reports the session's fuel gauge.
func (sr *ServiceRegistry) FuelStatusHandler(ctx context.Context, req *Request) (*Response, error) {
	gameID, resp, err := gameIDFromHeader(req)
	if resp != nil {
		return resp, err
	}

	report, engineErr := sr.engine.FuelStatus(ctx, gameID)
	if engineErr != nil {
		return errorResponse(engineErr)
	}
	return jsonResponse(http.StatusOK, report)
}

// MarketHandler lists a planet's commodity quotes.
func (sr *ServiceRegistry) MarketHandler(ctx context.Context, req *Request) (*Response, error) {
	planetID, resp, err := pathParam(req, 2) // /market/:planetId
	if resp != nil {
		return resp, err
	}

	quotes, engineErr := sr.engine.Prices(ctx, planetID)
	if engineErr != nil {
		return errorResponse(engineErr)
	}
	return jsonResponse(http.StatusOK, quotes)
}

// MarketFuelHandler quotes a planet's fuel price.
func (sr *ServiceRegistry) MarketFuelHandler(ctx context.Context, req *Request) (*Response, error) {
	planetID, resp, err := pathParam(req, 2) // /market/:planetId/fuel
	if resp != nil {
		return resp, err
	}

	quote, engineErr := sr.engine.FuelPrice(ctx, planetID)
	if engineErr != nil {
		return errorResponse(engineErr)
	}
	return jsonResponse(http.StatusOK, quote)
}

// PlanetsHandler lists the planet directory.
func (sr *ServiceRegistry) PlanetsHandler(ctx context.Context, req *Request) (*Response, error) {
	listings, engineErr := sr.engine.ListPlanets(ctx)
	if engineErr != nil {
		return errorResponse(engineErr)
	}
	return jsonResponse(http.StatusOK, listings)
}

// ShipsHandler lists the ship catalog.
func (sr *ServiceRegistry) ShipsHandler(ctx context.Context, req *Request) (*Response, error) {
	listings, engineErr := sr.engine.ListShips(ctx)
	if engineErr != nil {
		return errorResponse(engineErr)
	}
	return jsonResponse(http.StatusOK, listings)
}

// HistoryHandler returns the session's merged transaction log, newest first.
func (sr *ServiceRegistry) HistoryHandler(ctx context.Context, req *Request) (*Response, error) {
	gameID, resp, err := gameIDFromHeader(req)
	if resp != nil {
		return resp, err
	}

	entries, engineErr := sr.engine.History(ctx, gameID)
	if engineErr != nil {
		return errorResponse(engineErr)
	}
	return jsonResponse(http.StatusOK, map[string]any{"transactions": entries})
}
