package engine

import (
	"context"
	"sort"
	"time"

	cmtlog "github.com/cometbft/cometbft/libs/log"

	"github.com/jdwd40/sorstar-cli-sub000/repository/models"
)

// memStore is an in-memory Store for engine tests. Atomic snapshots the whole
// state and rolls back on error, mirroring the database transaction semantics.
type memStore struct {
	users            map[uint]models.User
	ships            map[uint]models.Ship
	planets          map[uint]models.Planet
	commodities      map[uint]models.Commodity
	markets          []models.Market
	games            map[uint]models.Game
	cargo            []models.Cargo
	transactions     []models.Transaction
	fuelTransactions []models.FuelTransaction
	nextID           uint
}

var _ Store = (*memStore)(nil)

func (m *memStore) clone() *memStore {
	c := &memStore{
		users:            make(map[uint]models.User, len(m.users)),
		ships:            make(map[uint]models.Ship, len(m.ships)),
		planets:          make(map[uint]models.Planet, len(m.planets)),
		commodities:      make(map[uint]models.Commodity, len(m.commodities)),
		markets:          append([]models.Market(nil), m.markets...),
		games:            make(map[uint]models.Game, len(m.games)),
		cargo:            append([]models.Cargo(nil), m.cargo...),
		transactions:     append([]models.Transaction(nil), m.transactions...),
		fuelTransactions: append([]models.FuelTransaction(nil), m.fuelTransactions...),
		nextID:           m.nextID,
	}
	for k, v := range m.users {
		c.users[k] = v
	}
	for k, v := range m.ships {
		c.ships[k] = v
	}
	for k, v := range m.planets {
		c.planets[k] = v
	}
	for k, v := range m.commodities {
		c.commodities[k] = v
	}
	for k, v := range m.games {
		c.games[k] = v
	}
	return c
}

func (m *memStore) Atomic(ctx context.Context, fn func(tx Store) error) error {
	snapshot := m.clone()
	if err := fn(m); err != nil {
		*m = *snapshot
		return err
	}
	return nil
}

func (m *memStore) Game(ctx context.Context, gameID uint) (*models.Game, error) {
	game, ok := m.games[gameID]
	if !ok {
		return nil, ErrNotFound
	}
	if ship, ok := m.ships[game.ShipID]; ok {
		shipCopy := ship
		game.Ship = &shipCopy
	}
	if planet, ok := m.planets[game.CurrentPlanetID]; ok {
		planetCopy := planet
		game.CurrentPlanet = &planetCopy
	}
	return &game, nil
}

func (m *memStore) GameForUpdate(ctx context.Context, gameID uint) (*models.Game, error) {
	return m.Game(ctx, gameID)
}

func (m *memStore) GameByUser(ctx context.Context, userID uint) (*models.Game, error) {
	for id, game := range m.games {
		if game.UserID == userID {
			return m.Game(ctx, id)
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) CreateGame(ctx context.Context, game *models.Game) error {
	m.nextID++
	game.ID = m.nextID
	stored := *game
	stored.Ship = nil
	stored.CurrentPlanet = nil
	m.games[game.ID] = stored
	return nil
}

func (m *memStore) SaveGame(ctx context.Context, game *models.Game) error {
	if _, ok := m.games[game.ID]; !ok {
		return ErrNotFound
	}
	stored := *game
	stored.Ship = nil
	stored.CurrentPlanet = nil
	m.games[game.ID] = stored
	return nil
}

func (m *memStore) User(ctx context.Context, userID uint) (*models.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (m *memStore) Ship(ctx context.Context, shipID uint) (*models.Ship, error) {
	ship, ok := m.ships[shipID]
	if !ok {
		return nil, ErrNotFound
	}
	return &ship, nil
}

func (m *memStore) Ships(ctx context.Context) ([]models.Ship, error) {
	ships := make([]models.Ship, 0, len(m.ships))
	for _, s := range m.ships {
		ships = append(ships, s)
	}
	sort.Slice(ships, func(i, j int) bool { return ships[i].ID < ships[j].ID })
	return ships, nil
}

func (m *memStore) Planet(ctx context.Context, planetID uint) (*models.Planet, error) {
	planet, ok := m.planets[planetID]
	if !ok {
		return nil, ErrNotFound
	}
	return &planet, nil
}

func (m *memStore) Planets(ctx context.Context) ([]models.Planet, error) {
	planets := make([]models.Planet, 0, len(m.planets))
	for _, p := range m.planets {
		planets = append(planets, p)
	}
	sort.Slice(planets, func(i, j int) bool { return planets[i].ID < planets[j].ID })
	return planets, nil
}

func (m *memStore) Commodity(ctx context.Context, commodityID uint) (*models.Commodity, error) {
	commodity, ok := m.commodities[commodityID]
	if !ok {
		return nil, ErrNotFound
	}
	return &commodity, nil
}

func (m *memStore) MarketEntry(ctx context.Context, planetID, commodityID uint) (*models.Market, error) {
	for _, entry := range m.markets {
		if entry.PlanetID == planetID && entry.CommodityID == commodityID {
			found := entry
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) MarketEntries(ctx context.Context, planetID uint) ([]models.Market, error) {
	entries := make([]models.Market, 0)
	for _, entry := range m.markets {
		if entry.PlanetID != planetID {
			continue
		}
		if commodity, ok := m.commodities[entry.CommodityID]; ok {
			commodityCopy := commodity
			entry.Commodity = &commodityCopy
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Commodity.Name < entries[j].Commodity.Name
	})
	return entries, nil
}

func (m *memStore) Cargo(ctx context.Context, gameID uint) ([]models.Cargo, error) {
	rows := make([]models.Cargo, 0)
	for _, c := range m.cargo {
		if c.GameID != gameID {
			continue
		}
		if commodity, ok := m.commodities[c.CommodityID]; ok {
			commodityCopy := commodity
			c.Commodity = &commodityCopy
		}
		rows = append(rows, c)
	}
	return rows, nil
}

func (m *memStore) CargoQuantity(ctx context.Context, gameID, commodityID uint) (int, error) {
	for _, c := range m.cargo {
		if c.GameID == gameID && c.CommodityID == commodityID {
			return c.Quantity, nil
		}
	}
	return 0, nil
}

func (m *memStore) AdjustCargo(ctx context.Context, gameID, commodityID uint, delta int) error {
	for i, c := range m.cargo {
		if c.GameID != gameID || c.CommodityID != commodityID {
			continue
		}
		c.Quantity += delta
		if c.Quantity <= 0 {
			m.cargo = append(m.cargo[:i], m.cargo[i+1:]...)
		} else {
			m.cargo[i] = c
		}
		return nil
	}
	if delta <= 0 {
		return ErrNotFound
	}
	m.nextID++
	m.cargo = append(m.cargo, models.Cargo{
		ID:          m.nextID,
		GameID:      gameID,
		CommodityID: commodityID,
		Quantity:    delta,
	})
	return nil
}

func (m *memStore) AppendTransaction(ctx context.Context, tx *models.Transaction) error {
	m.nextID++
	tx.ID = m.nextID
	tx.CreatedAt = time.Now()
	m.transactions = append(m.transactions, *tx)
	return nil
}

func (m *memStore) AppendFuelTransaction(ctx context.Context, tx *models.FuelTransaction) error {
	m.nextID++
	tx.ID = m.nextID
	tx.CreatedAt = time.Now()
	m.fuelTransactions = append(m.fuelTransactions, *tx)
	return nil
}

func (m *memStore) Transactions(ctx context.Context, gameID uint) ([]models.Transaction, error) {
	rows := make([]models.Transaction, 0)
	for _, t := range m.transactions {
		if t.GameID != gameID {
			continue
		}
		if commodity, ok := m.commodities[t.CommodityID]; ok {
			commodityCopy := commodity
			t.Commodity = &commodityCopy
		}
		rows = append(rows, t)
	}
	return rows, nil
}

func (m *memStore) FuelTransactions(ctx context.Context, gameID uint) ([]models.FuelTransaction, error) {
	rows := make([]models.FuelTransaction, 0)
	for _, t := range m.fuelTransactions {
		if t.GameID == gameID {
			rows = append(rows, t)
		}
	}
	return rows, nil
}

// Fixture ids used across the engine tests.
const (
	planetTerraNova     = uint(1)
	planetKesslerPrime  = uint(2)
	planetNewKyoto      = uint(3)
	planetObsidianReach = uint(4)

	commodityFood = uint(1)
	commodityOre  = uint(2)

	shipSparrow = uint(1)
	userDemo    = uint(1)
)

// newTestStore builds a small universe with one active game docked at Terra
// Nova holding 1000 credits and a full 100-unit tank.
func newTestStore() *memStore {
	return &memStore{
		users: map[uint]models.User{
			userDemo: {ID: userDemo, Username: "demo"},
		},
		ships: map[uint]models.Ship{
			shipSparrow: {ID: shipSparrow, Name: "Sparrow", CargoCapacity: 50, MaxFuel: 100},
		},
		planets: map[uint]models.Planet{
			planetTerraNova:     {ID: planetTerraNova, Name: "Terra Nova", X: 0, Y: 0, Type: models.PlanetTypeTradeHub},
			planetKesslerPrime:  {ID: planetKesslerPrime, Name: "Kessler Prime", X: 100, Y: 50, Type: models.PlanetTypeMining},
			planetNewKyoto:      {ID: planetNewKyoto, Name: "New Kyoto", X: 40, Y: 30, Type: models.PlanetTypeAgricultural},
			planetObsidianReach: {ID: planetObsidianReach, Name: "Obsidian Reach", X: 150, Y: -90, Type: models.PlanetTypeMining, Distant: true},
		},
		commodities: map[uint]models.Commodity{
			commodityFood: {ID: commodityFood, Name: "Food", BasePrice: 12},
			commodityOre:  {ID: commodityOre, Name: "Ore", BasePrice: 25},
		},
		markets: []models.Market{
			{ID: 1, PlanetID: planetTerraNova, CommodityID: commodityFood, BuyPrice: 12, SellPrice: 9, Stock: 400},
			{ID: 2, PlanetID: planetTerraNova, CommodityID: commodityOre, BuyPrice: 28, SellPrice: 22, Stock: 150},
			{ID: 3, PlanetID: planetKesslerPrime, CommodityID: commodityFood, BuyPrice: 18, SellPrice: 15, Stock: 70},
			{ID: 4, PlanetID: planetKesslerPrime, CommodityID: commodityOre, BuyPrice: 18, SellPrice: 14, Stock: 800},
		},
		games: map[uint]models.Game{
			1: {
				ID:              1,
				UserID:          userDemo,
				ShipID:          shipSparrow,
				Credits:         1000,
				Fuel:            100,
				MaxFuel:         100,
				CurrentPlanetID: planetTerraNova,
				CurrentTurn:     1,
			},
		},
		nextID: 100,
	}
}

func newTestEngine(store Store) *Engine {
	return New(store, cmtlog.NewNopLogger())
}
