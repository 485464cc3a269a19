package repository

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"pcbuilder/internal/domain"
)

type cartEntry struct {
	item domain.CartItem
	seq  int64
}

type memoryState struct {
	nextProdID   int64
	nextOrderID  int64
	nextBuildID  int64
	cartSeq      int64
	productsByID map[int64]domain.Product
	carts        map[int64]map[int64]cartEntry
	ordersByID   map[int64]domain.Order
	buildsByID   map[int64]domain.SavedBuild
}

// clone копия состояния для отката транзакции. Заказы и сборки неизменяемы, поэтому копируются только карты.
func (s memoryState) clone() memoryState {
	cp := s
	cp.productsByID = maps.Clone(s.productsByID)
	cp.ordersByID = maps.Clone(s.ordersByID)
	cp.buildsByID = maps.Clone(s.buildsByID)
	cp.carts = make(map[int64]map[int64]cartEntry, len(s.carts))
	for shopper, lines := range s.carts {
		cp.carts[shopper] = maps.Clone(lines)
	}
	return cp
}

// MemoryStore объединённое in-memory хранилище и простой генератор ID
type MemoryStore struct {
	mu    sync.RWMutex
	state memoryState
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: memoryState{
			nextProdID:   1,
			nextOrderID:  1,
			nextBuildID:  1,
			productsByID: make(map[int64]domain.Product),
			carts:        make(map[int64]map[int64]cartEntry),
			ordersByID:   make(map[int64]domain.Order),
			buildsByID:   make(map[int64]domain.SavedBuild),
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// transaction-aware locking helpers
type txKey struct{}

// inTx внутри транзакции этого хранилища блокировка уже взята
func (m *MemoryStore) inTx(ctx context.Context) bool {
	s, ok := ctx.Value(txKey{}).(*MemoryStore)
	return ok && s == m
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !m.inTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !m.inTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !m.inTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !m.inTx(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var _ ProductRepository = (*MemoryStore)(nil)

// ProductRepository implementation
func (m *MemoryStore) Create(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	p.ID = m.state.nextProdID
	m.state.nextProdID++
	p.Version = 1
	p.CreatedAt = m.now()
	p.UpdatedAt = p.CreatedAt
	m.state.productsByID[p.ID] = *p
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	p, ok := m.state.productsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := p
	return &cp, nil
}

// GetForUpdate в памяти строки защищены общей блокировкой транзакции
func (m *MemoryStore) GetForUpdate(ctx context.Context, ids []int64) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := m.state.productsByID[id]
		if !ok {
			return nil, ErrNotFound
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) Update(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	cur, ok := m.state.productsByID[p.ID]
	if !ok {
		return ErrNotFound
	}
	if cur.Version != p.Version {
		return ErrVersionConflict
	}
	p.StockQuantity = cur.StockQuantity
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = m.now()
	p.Version = cur.Version + 1
	m.state.productsByID[p.ID] = *p
	return nil
}

func (m *MemoryStore) UpdateStock(ctx context.Context, id int64, quantity int, expectedVersion int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	cur, ok := m.state.productsByID[id]
	if !ok {
		return ErrNotFound
	}
	if cur.Version != expectedVersion {
		return ErrVersionConflict
	}
	cur.StockQuantity = quantity
	cur.Version++
	cur.UpdatedAt = m.now()
	m.state.productsByID[id] = cur
	return nil
}

func (m *MemoryStore) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Product, 0)
	for _, p := range m.state.productsByID {
		if f.match(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CartRepository implementation on wrapper type
type MemoryCarts struct{ store *MemoryStore }

func NewMemoryCarts(store *MemoryStore) *MemoryCarts { return &MemoryCarts{store: store} }

var _ CartRepository = (*MemoryCarts)(nil)

func (mc *MemoryCarts) Get(ctx context.Context, shopperID, productID int64) (*domain.CartItem, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	e, ok := mc.store.state.carts[shopperID][productID]
	if !ok {
		return nil, ErrNotFound
	}
	it := e.item
	return &it, nil
}

// Upsert записывает количество; время добавления существующей строки сохраняется
func (mc *MemoryCarts) Upsert(ctx context.Context, item *domain.CartItem) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	st := &mc.store.state
	lines, ok := st.carts[item.ShopperID]
	if !ok {
		lines = make(map[int64]cartEntry)
		st.carts[item.ShopperID] = lines
	}
	if e, ok := lines[item.ProductID]; ok {
		e.item.Quantity = item.Quantity
		lines[item.ProductID] = e
		*item = e.item
		return nil
	}
	st.cartSeq++
	item.AddedAt = mc.store.now()
	lines[item.ProductID] = cartEntry{item: *item, seq: st.cartSeq}
	return nil
}

func (mc *MemoryCarts) Update(ctx context.Context, item *domain.CartItem) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	lines := mc.store.state.carts[item.ShopperID]
	e, ok := lines[item.ProductID]
	if !ok {
		return ErrNotFound
	}
	e.item.Quantity = item.Quantity
	lines[item.ProductID] = e
	*item = e.item
	return nil
}

func (mc *MemoryCarts) Delete(ctx context.Context, shopperID, productID int64) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	lines := mc.store.state.carts[shopperID]
	if _, ok := lines[productID]; !ok {
		return ErrNotFound
	}
	delete(lines, productID)
	return nil
}

func (mc *MemoryCarts) Clear(ctx context.Context, shopperID int64) error {
	mc.store.wlock(ctx)
	defer mc.store.wunlock(ctx)
	delete(mc.store.state.carts, shopperID)
	return nil
}

func (mc *MemoryCarts) List(ctx context.Context, shopperID int64) ([]domain.CartItem, error) {
	mc.store.rlock(ctx)
	defer mc.store.runlock(ctx)
	entries := make([]cartEntry, 0, len(mc.store.state.carts[shopperID]))
	for _, e := range mc.store.state.carts[shopperID] {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq > entries[j].seq })
	out := make([]domain.CartItem, len(entries))
	for i, e := range entries {
		out[i] = e.item
	}
	return out, nil
}

// OrderRepository implementation on wrapper type
type MemoryOrders struct{ store *MemoryStore }

func NewMemoryOrders(store *MemoryStore) *MemoryOrders { return &MemoryOrders{store: store} }

var _ OrderRepository = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(ctx context.Context, o *domain.Order) error {
	mo.store.wlock(ctx)
	defer mo.store.wunlock(ctx)
	o.ID = mo.store.state.nextOrderID
	mo.store.state.nextOrderID++
	o.CreatedAt = mo.store.now()
	items := make([]domain.OrderItem, len(o.Items))
	for i, it := range o.Items {
		it.OrderID = o.ID
		items[i] = it
	}
	o.Items = items
	mo.store.state.ordersByID[o.ID] = *o
	return nil
}

func (mo *MemoryOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	o, ok := mo.store.state.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (mo *MemoryOrders) ListByShopper(ctx context.Context, shopperID int64) ([]domain.Order, error) {
	mo.store.rlock(ctx)
	defer mo.store.runlock(ctx)
	out := make([]domain.Order, 0)
	for _, o := range mo.store.state.ordersByID {
		if o.ShopperID == shopperID {
			o.Items = append([]domain.OrderItem(nil), o.Items...)
			out = append(out, o)
		}
	}
	// ID растёт монотонно, поэтому совпадает с порядком создания
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// BuildRepository implementation on wrapper type
type MemoryBuilds struct{ store *MemoryStore }

func NewMemoryBuilds(store *MemoryStore) *MemoryBuilds { return &MemoryBuilds{store: store} }

var _ BuildRepository = (*MemoryBuilds)(nil)

func (mb *MemoryBuilds) Create(ctx context.Context, b *domain.SavedBuild) error {
	mb.store.wlock(ctx)
	defer mb.store.wunlock(ctx)
	b.ID = mb.store.state.nextBuildID
	mb.store.state.nextBuildID++
	b.CreatedAt = mb.store.now()
	b.Components = maps.Clone(b.Components)
	mb.store.state.buildsByID[b.ID] = *b
	return nil
}

func (mb *MemoryBuilds) ListByShopper(ctx context.Context, shopperID int64, limit int) ([]domain.SavedBuild, error) {
	mb.store.rlock(ctx)
	defer mb.store.runlock(ctx)
	out := make([]domain.SavedBuild, 0)
	for _, b := range mb.store.state.buildsByID {
		if b.ShopperID == shopperID {
			b.Components = maps.Clone(b.Components)
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

var _ TxManager = (*MemoryTx)(nil)

// WithTransaction держит блокировку записи на всё время fn и откатывает состояние при ошибке или панике.
func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if tx.store.inTx(ctx) {
		return fn(ctx)
	}
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()

	snapshot := tx.store.state.clone()
	committed := false
	defer func() {
		if !committed {
			tx.store.state = snapshot
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx.store)); err != nil {
		return err
	}
	committed = true
	return nil
}
