// Package kardextest provee repositorios en memoria y un TxRunner con semántica
// de rollback real para probar el motor de kardex y los orquestadores sin base
// de datos: el callback corre sobre un clon del estado y el clon reemplaza al
// estado solo si el callback termina sin error.
package kardextest

import (
	"context"
	"sync"
	"time"

	"github.com/jmcastillo/comercial-api/internal/application/kardex"
	"github.com/jmcastillo/comercial-api/internal/domain"
	"github.com/jmcastillo/comercial-api/internal/domain/entity"
)

type balanceKey struct {
	WarehouseID string
	ProductID   string
}

// state es una vista inmutable-por-convención: las escrituras siempre guardan
// copias y las lecturas devuelven copias, así clonar es copiar los headers.
type state struct {
	nextMovementID int64
	movements      []*entity.Movement
	balances       map[balanceKey]*entity.Balance
	products       map[string]*entity.Product
	warehouses     map[string]*entity.Warehouse
	sales          map[string]*entity.Sale
	purchases      map[string]*entity.Purchase
	returns        map[string]*entity.SaleReturn
	transfers      map[string]*entity.Transfer
	cashSessions   map[string]*entity.CashSession
}

func newState() *state {
	return &state{
		nextMovementID: 1,
		balances:       make(map[balanceKey]*entity.Balance),
		products:       make(map[string]*entity.Product),
		warehouses:     make(map[string]*entity.Warehouse),
		sales:          make(map[string]*entity.Sale),
		purchases:      make(map[string]*entity.Purchase),
		returns:        make(map[string]*entity.SaleReturn),
		transfers:      make(map[string]*entity.Transfer),
		cashSessions:   make(map[string]*entity.CashSession),
	}
}

func (s *state) clone() *state {
	c := &state{
		nextMovementID: s.nextMovementID,
		movements:      append([]*entity.Movement(nil), s.movements...),
		balances:       make(map[balanceKey]*entity.Balance, len(s.balances)),
		products:       make(map[string]*entity.Product, len(s.products)),
		warehouses:     make(map[string]*entity.Warehouse, len(s.warehouses)),
		sales:          make(map[string]*entity.Sale, len(s.sales)),
		purchases:      make(map[string]*entity.Purchase, len(s.purchases)),
		returns:        make(map[string]*entity.SaleReturn, len(s.returns)),
		transfers:      make(map[string]*entity.Transfer, len(s.transfers)),
		cashSessions:   make(map[string]*entity.CashSession, len(s.cashSessions)),
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.purchases {
		c.purchases[k] = v
	}
	for k, v := range s.returns {
		c.returns[k] = v
	}
	for k, v := range s.transfers {
		c.transfers[k] = v
	}
	for k, v := range s.cashSessions {
		c.cashSessions[k] = v
	}
	return c
}

// Store estado en memoria compartido entre el TxRunner y los repos de lectura.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un Store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Repos devuelve repositorios de lectura/escritura directos sobre el estado
// actual (equivalentes a repos atados al pool). Leen el estado vigente en cada
// llamada, así siguen viendo los commits posteriores del Runner.
func (s *Store) Repos() kardex.TxRepos {
	return reposFor(s)
}

// Runner devuelve un TxRunner con semántica clonar-ejecutar-intercambiar:
// si fn falla, ninguna escritura queda visible.
func (s *Store) Runner() kardex.TxRunner {
	return &runner{store: s}
}

type runner struct {
	store *Store
}

func (r *runner) Run(ctx context.Context, fn func(repos kardex.TxRepos) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	work := r.store.st.clone()
	if err := fn(reposFor(work)); err != nil {
		return err
	}
	r.store.st = work
	return nil
}

// stateProvider abstrae "el estado sobre el que opera un repo": un *state fijo
// dentro de una transacción, o el estado vigente del Store fuera de ella.
type stateProvider interface {
	current() *state
}

func (s *state) current() *state { return s }

func (s *Store) current() *state { return s.st }

func reposFor(sp stateProvider) kardex.TxRepos {
	return kardex.TxRepos{
		Movements:    &movementRepo{sp: sp},
		Balances:     &balanceRepo{sp: sp},
		Products:     &productRepo{sp: sp},
		Warehouses:   &warehouseRepo{sp: sp},
		Sales:        &saleRepo{sp: sp},
		Purchases:    &purchaseRepo{sp: sp},
		Returns:      &returnRepo{sp: sp},
		Transfers:    &transferRepo{sp: sp},
		CashSessions: &cashSessionRepo{sp: sp},
	}
}

// ── Seeds y accesores de verificación ────────────────────────────────────────

// SeedProduct agrega un producto al estado.
func (s *Store) SeedProduct(p *entity.Product) {
	cp := *p
	s.st.products[p.ID] = &cp
}

// SeedWarehouse agrega una bodega al estado.
func (s *Store) SeedWarehouse(w *entity.Warehouse) {
	cp := *w
	s.st.warehouses[w.ID] = &cp
}

// SeedSale agrega una venta (con líneas) al estado.
func (s *Store) SeedSale(sale *entity.Sale) {
	cp := *sale
	s.st.sales[sale.ID] = &cp
}

// SeedPurchase agrega una compra (con líneas) al estado.
func (s *Store) SeedPurchase(p *entity.Purchase) {
	cp := *p
	s.st.purchases[p.ID] = &cp
}

// SeedTransfer agrega un traslado (con líneas) al estado.
func (s *Store) SeedTransfer(t *entity.Transfer) {
	cp := *t
	s.st.transfers[t.ID] = &cp
}

// SeedOpenCashSession abre una sesión de caja para el usuario.
func (s *Store) SeedOpenCashSession(id, userID string) {
	s.st.cashSessions[id] = &entity.CashSession{
		ID:       id,
		UserID:   userID,
		Status:   entity.CashSessionOpen,
		OpenedAt: time.Now(),
	}
}

// Movements devuelve todos los movimientos en orden de ID.
func (s *Store) Movements() []*entity.Movement {
	return append([]*entity.Movement(nil), s.st.movements...)
}

// Balance devuelve el saldo actual de una clave (cero si no existe).
func (s *Store) Balance(warehouseID, productID string) *entity.Balance {
	if b, ok := s.st.balances[balanceKey{warehouseID, productID}]; ok {
		cp := *b
		return &cp
	}
	return entity.NewBalance(warehouseID, productID)
}

// Sale devuelve la venta almacenada (nil si no existe).
func (s *Store) Sale(id string) *entity.Sale {
	if v, ok := s.st.sales[id]; ok {
		cp := *v
		return &cp
	}
	return nil
}

// Return devuelve la devolución almacenada (nil si no existe).
func (s *Store) Return(id string) *entity.SaleReturn {
	if v, ok := s.st.returns[id]; ok {
		cp := *v
		return &cp
	}
	return nil
}

// ── Movements ────────────────────────────────────────────────────────────────

type movementRepo struct {
	sp stateProvider
}

func (r *movementRepo) Create(movement *entity.Movement) error {
	cp := *movement
	cp.ID = r.sp.current().nextMovementID
	r.sp.current().nextMovementID++
	r.sp.current().movements = append(r.sp.current().movements, &cp)
	movement.ID = cp.ID
	return nil
}

func (r *movementRepo) GetByID(id int64) (*entity.Movement, error) {
	for _, m := range r.sp.current().movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) ListByKey(warehouseID, productID string, sinceID int64) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.sp.current().movements {
		if m.WarehouseID == warehouseID && m.ProductID == productID && m.ID > sinceID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *movementRepo) ListByReference(refType entity.ReferenceType, refID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.sp.current().movements {
		if m.ReferenceType == refType && m.ReferenceID == refID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *movementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.filter(func(m *entity.Movement) bool { return m.ProductID == productID }, from, to, limit, offset)
}

func (r *movementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	return r.filter(func(m *entity.Movement) bool { return m.WarehouseID == warehouseID }, from, to, limit, offset)
}

func (r *movementRepo) filter(match func(*entity.Movement) bool, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var all []*entity.Movement
	for i := len(r.sp.current().movements) - 1; i >= 0; i-- { // más reciente primero
		m := r.sp.current().movements[i]
		if !match(m) {
			continue
		}
		if from != nil && m.OccurredAt.Before(*from) {
			continue
		}
		if to != nil && m.OccurredAt.After(*to) {
			continue
		}
		cp := *m
		all = append(all, &cp)
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// ── Balances ─────────────────────────────────────────────────────────────────

type balanceRepo struct {
	sp stateProvider
}

func (r *balanceRepo) Get(warehouseID, productID string) (*entity.Balance, error) {
	if b, ok := r.sp.current().balances[balanceKey{warehouseID, productID}]; ok {
		cp := *b
		return &cp, nil
	}
	return entity.NewBalance(warehouseID, productID), nil
}

func (r *balanceRepo) GetForUpdate(warehouseID, productID string) (*entity.Balance, error) {
	return r.Get(warehouseID, productID)
}

func (r *balanceRepo) Upsert(balance *entity.Balance) error {
	cp := *balance
	r.sp.current().balances[balanceKey{balance.WarehouseID, balance.ProductID}] = &cp
	return nil
}

// ── Products ─────────────────────────────────────────────────────────────────

type productRepo struct {
	sp stateProvider
}

func (r *productRepo) Create(product *entity.Product) error {
	for _, p := range r.sp.current().products {
		if p.SKU == product.SKU {
			return domain.ErrConflict
		}
	}
	cp := *product
	r.sp.current().products[product.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.sp.current().products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.sp.current().products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(product *entity.Product) error {
	if _, ok := r.sp.current().products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *product
	r.sp.current().products[product.ID] = &cp
	return nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.sp.current().products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// ── Warehouses ───────────────────────────────────────────────────────────────

type warehouseRepo struct {
	sp stateProvider
}

func (r *warehouseRepo) Create(warehouse *entity.Warehouse) error {
	cp := *warehouse
	r.sp.current().warehouses[warehouse.ID] = &cp
	return nil
}

func (r *warehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if w, ok := r.sp.current().warehouses[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (r *warehouseRepo) List() ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.sp.current().warehouses {
		cp := *w
		out = append(out, &cp)
	}
	return out, nil
}

// ── Sales ────────────────────────────────────────────────────────────────────

type saleRepo struct {
	sp stateProvider
}

func (r *saleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	r.sp.current().sales[sale.ID] = &cp
	return nil
}

func (r *saleRepo) GetByID(id string) (*entity.Sale, error) {
	if s, ok := r.sp.current().sales[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r *saleRepo) UpdateStatus(id, status string) error {
	s, ok := r.sp.current().sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *s
	cp.Status = status
	r.sp.current().sales[id] = &cp
	return nil
}

func (r *saleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.sp.current().sales {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

// ── Purchases ────────────────────────────────────────────────────────────────

type purchaseRepo struct {
	sp stateProvider
}

func (r *purchaseRepo) Create(purchase *entity.Purchase) error {
	cp := *purchase
	r.sp.current().purchases[purchase.ID] = &cp
	return nil
}

func (r *purchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	if p, ok := r.sp.current().purchases[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *purchaseRepo) UpdateStatus(id, status string) error {
	p, ok := r.sp.current().purchases[id]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *p
	cp.Status = status
	r.sp.current().purchases[id] = &cp
	return nil
}

func (r *purchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.sp.current().purchases {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// ── Returns ──────────────────────────────────────────────────────────────────

type returnRepo struct {
	sp stateProvider
}

func (r *returnRepo) Create(ret *entity.SaleReturn) error {
	cp := *ret
	r.sp.current().returns[ret.ID] = &cp
	return nil
}

func (r *returnRepo) GetByID(id string) (*entity.SaleReturn, error) {
	if ret, ok := r.sp.current().returns[id]; ok {
		cp := *ret
		return &cp, nil
	}
	return nil, nil
}

func (r *returnRepo) ListBySale(saleID string) ([]*entity.SaleReturn, error) {
	var out []*entity.SaleReturn
	for _, ret := range r.sp.current().returns {
		if ret.SaleID == saleID {
			cp := *ret
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *returnRepo) UpdateStatus(id, status string) error {
	ret, ok := r.sp.current().returns[id]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *ret
	cp.Status = status
	r.sp.current().returns[id] = &cp
	return nil
}

// ── Transfers ────────────────────────────────────────────────────────────────

type transferRepo struct {
	sp stateProvider
}

func (r *transferRepo) Create(transfer *entity.Transfer) error {
	cp := *transfer
	r.sp.current().transfers[transfer.ID] = &cp
	return nil
}

func (r *transferRepo) GetByID(id string) (*entity.Transfer, error) {
	if t, ok := r.sp.current().transfers[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *transferRepo) UpdateStatus(id, status string) error {
	t, ok := r.sp.current().transfers[id]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *t
	cp.Status = status
	r.sp.current().transfers[id] = &cp
	return nil
}

// ── Cash sessions ────────────────────────────────────────────────────────────

type cashSessionRepo struct {
	sp stateProvider
}

func (r *cashSessionRepo) Create(session *entity.CashSession) error {
	cp := *session
	r.sp.current().cashSessions[session.ID] = &cp
	return nil
}

func (r *cashSessionRepo) GetOpenByUser(userID string) (*entity.CashSession, error) {
	for _, s := range r.sp.current().cashSessions {
		if s.UserID == userID && s.Status == entity.CashSessionOpen {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *cashSessionRepo) Close(session *entity.CashSession) error {
	if _, ok := r.sp.current().cashSessions[session.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *session
	r.sp.current().cashSessions[session.ID] = &cp
	return nil
}
