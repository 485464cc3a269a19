package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"pcbuilder/internal/domain"
)

// OpenMySQL открывает пул соединений. DSN должен содержать parseTime=true.
func OpenMySQL(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect mysql")
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

type sqlTxKey struct{}

// ext текущая транзакция из контекста или пул
func ext(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(sqlTxKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

// lockClause внутри транзакции чтение блокирует строки до её завершения
func lockClause(ctx context.Context) string {
	if _, ok := ctx.Value(sqlTxKey{}).(*sqlx.Tx); ok {
		return ` FOR UPDATE`
	}
	return ""
}

// errDeadlock код InnoDB для взаимоблокировки; транзакция уже откачена сервером
const errDeadlock = 1213

func isDeadlock(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == errDeadlock
}

// MySQLTx менеджер транзакций поверх sqlx
type MySQLTx struct{ db *sqlx.DB }

func NewMySQLTx(db *sqlx.DB) *MySQLTx { return &MySQLTx{db: db} }

var _ TxManager = (*MySQLTx)(nil)

func (m *MySQLTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(sqlTxKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}
	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(context.WithValue(ctx, sqlTxKey{}, tx)); err != nil {
		if isDeadlock(err) {
			return domain.ErrTxAborted
		}
		return err
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit tx")
	}
	return nil
}

func nullString(s string) sql.NullString { return sql.NullString{String: s, Valid: s != ""} }

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

type productRow struct {
	ID                int64           `db:"id"`
	Name              string          `db:"name"`
	Brand             string          `db:"brand"`
	Category          string          `db:"category"`
	Price             decimal.Decimal `db:"price"`
	StockQuantity     int             `db:"stock_quantity"`
	Socket            sql.NullString  `db:"socket"`
	MemoryType        sql.NullString  `db:"memory_type"`
	FormFactor        sql.NullString  `db:"form_factor"`
	PowerRequirements sql.NullInt64   `db:"power_requirements"`
	IsActive          bool            `db:"is_active"`
	Specs             domain.Specs    `db:"specs"`
	Version           int64           `db:"version"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

func (r productRow) toDomain() domain.Product {
	p := domain.Product{
		ID:            r.ID,
		Name:          r.Name,
		Brand:         r.Brand,
		Category:      domain.CategorySlug(r.Category),
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		Socket:        r.Socket.String,
		MemoryType:    domain.MemoryType(r.MemoryType.String),
		FormFactor:    domain.FormFactor(r.FormFactor.String),
		IsActive:      r.IsActive,
		Specs:         r.Specs,
		Version:       r.Version,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.PowerRequirements.Valid {
		w := int(r.PowerRequirements.Int64)
		p.PowerRequirements = &w
	}
	return p
}

const productColumns = `id, name, brand, category, price, stock_quantity, socket, memory_type, form_factor,
	power_requirements, is_active, specs, version, created_at, updated_at`

// MySQLProducts репозиторий товаров
type MySQLProducts struct{ db *sqlx.DB }

func NewMySQLProducts(db *sqlx.DB) *MySQLProducts { return &MySQLProducts{db: db} }

var _ ProductRepository = (*MySQLProducts)(nil)

func (r *MySQLProducts) Create(ctx context.Context, p *domain.Product) error {
	now := time.Now().UTC()
	res, err := ext(ctx, r.db).ExecContext(ctx, `INSERT INTO products
		(name, brand, category, price, stock_quantity, socket, memory_type, form_factor,
		 power_requirements, is_active, specs, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`,
		p.Name, p.Brand, string(p.Category), p.Price, p.StockQuantity,
		nullString(p.Socket), nullString(string(p.MemoryType)), nullString(string(p.FormFactor)),
		nullInt(p.PowerRequirements), p.IsActive, p.Specs, now, now)
	if err != nil {
		return errors.Wrap(err, "insert product")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "product id")
	}
	p.ID = id
	p.Version = 1
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (r *MySQLProducts) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var row productRow
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get product %d", id)
	}
	p := row.toDomain()
	return &p, nil
}

// GetForUpdate берёт блокировки строк в порядке id, чтобы параллельные оформления не взаимоблокировались
func (r *MySQLProducts) GetForUpdate(ctx context.Context, ids []int64) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	query, args, err := sqlx.In(`SELECT `+productColumns+` FROM products WHERE id IN (?) ORDER BY id FOR UPDATE`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "build lock query")
	}
	q := ext(ctx, r.db)
	var rows []productRow
	if err := sqlx.SelectContext(ctx, q, &rows, q.Rebind(query), args...); err != nil {
		return nil, errors.Wrap(err, "lock products")
	}
	if len(rows) != len(uniqueIDs(ids)) {
		return nil, ErrNotFound
	}
	out := make([]domain.Product, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func (r *MySQLProducts) Update(ctx context.Context, p *domain.Product) error {
	res, err := ext(ctx, r.db).ExecContext(ctx, `UPDATE products SET
		name = ?, brand = ?, category = ?, price = ?, socket = ?, memory_type = ?, form_factor = ?,
		power_requirements = ?, is_active = ?, specs = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`,
		p.Name, p.Brand, string(p.Category), p.Price,
		nullString(p.Socket), nullString(string(p.MemoryType)), nullString(string(p.FormFactor)),
		nullInt(p.PowerRequirements), p.IsActive, p.Specs, time.Now().UTC(), p.ID, p.Version)
	if err != nil {
		return errors.Wrapf(err, "update product %d", p.ID)
	}
	if err := r.checkAffected(ctx, res, p.ID); err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = *fresh
	return nil
}

func (r *MySQLProducts) UpdateStock(ctx context.Context, id int64, quantity int, expectedVersion int64) error {
	res, err := ext(ctx, r.db).ExecContext(ctx,
		`UPDATE products SET stock_quantity = ?, version = version + 1, updated_at = ? WHERE id = ? AND version = ?`,
		quantity, time.Now().UTC(), id, expectedVersion)
	if err != nil {
		return errors.Wrapf(err, "update stock %d", id)
	}
	return r.checkAffected(ctx, res, id)
}

// checkAffected различает отсутствующую строку и устаревшую версию
func (r *MySQLProducts) checkAffected(ctx context.Context, res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrVersionConflict
}

func (r *MySQLProducts) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1 = 1`
	args := make([]any, 0, 5)
	if f.ActiveOnly {
		query += ` AND is_active = TRUE`
	}
	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, string(f.Category))
	}
	if f.NameSubstring != "" {
		query += ` AND LOWER(name) LIKE CONCAT('%', LOWER(?), '%')`
		args = append(args, f.NameSubstring)
	}
	if f.MinPrice != nil {
		query += ` AND price >= ?`
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query += ` AND price <= ?`
		args = append(args, *f.MaxPrice)
	}
	query += ` ORDER BY id`

	var rows []productRow
	if err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	out := make([]domain.Product, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func uniqueIDs(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// MySQLCarts репозиторий корзин
type MySQLCarts struct{ db *sqlx.DB }

func NewMySQLCarts(db *sqlx.DB) *MySQLCarts { return &MySQLCarts{db: db} }

var _ CartRepository = (*MySQLCarts)(nil)

const cartColumns = `shopper_id, product_id, quantity, added_at`

// Get в транзакции берёт блокировку строки (или промежутка индекса, если строки нет),
// поэтому параллельные добавления в одну строку выполняются по очереди
func (r *MySQLCarts) Get(ctx context.Context, shopperID, productID int64) (*domain.CartItem, error) {
	var it domain.CartItem
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &it,
		`SELECT `+cartColumns+` FROM cart_items WHERE shopper_id = ? AND product_id = ?`+lockClause(ctx), shopperID, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get cart line")
	}
	return &it, nil
}

func (r *MySQLCarts) Upsert(ctx context.Context, item *domain.CartItem) error {
	_, err := ext(ctx, r.db).ExecContext(ctx, `INSERT INTO cart_items (shopper_id, product_id, quantity, added_at)
		VALUES (?, ?, ?, ?) ON DUPLICATE KEY UPDATE quantity = VALUES(quantity)`,
		item.ShopperID, item.ProductID, item.Quantity, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "upsert cart line")
	}
	stored, err := r.Get(ctx, item.ShopperID, item.ProductID)
	if err != nil {
		return err
	}
	*item = *stored
	return nil
}

func (r *MySQLCarts) Update(ctx context.Context, item *domain.CartItem) error {
	_, err := ext(ctx, r.db).ExecContext(ctx,
		`UPDATE cart_items SET quantity = ? WHERE shopper_id = ? AND product_id = ?`,
		item.Quantity, item.ShopperID, item.ProductID)
	if err != nil {
		return errors.Wrap(err, "update cart line")
	}
	// RowsAffected равен 0 и при неизменном количестве, поэтому наличие строки проверяется чтением
	stored, err := r.Get(ctx, item.ShopperID, item.ProductID)
	if err != nil {
		return err
	}
	*item = *stored
	return nil
}

func (r *MySQLCarts) Delete(ctx context.Context, shopperID, productID int64) error {
	res, err := ext(ctx, r.db).ExecContext(ctx,
		`DELETE FROM cart_items WHERE shopper_id = ? AND product_id = ?`, shopperID, productID)
	if err != nil {
		return errors.Wrap(err, "delete cart line")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MySQLCarts) Clear(ctx context.Context, shopperID int64) error {
	if _, err := ext(ctx, r.db).ExecContext(ctx, `DELETE FROM cart_items WHERE shopper_id = ?`, shopperID); err != nil {
		return errors.Wrap(err, "clear cart")
	}
	return nil
}

// List в транзакции блокирует строки корзины и промежутки индекса покупателя:
// строка, добавленная во время оформления, ждёт его завершения
func (r *MySQLCarts) List(ctx context.Context, shopperID int64) ([]domain.CartItem, error) {
	out := make([]domain.CartItem, 0)
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &out,
		`SELECT `+cartColumns+` FROM cart_items WHERE shopper_id = ? ORDER BY id DESC`+lockClause(ctx), shopperID)
	if err != nil {
		return nil, errors.Wrap(err, "list cart")
	}
	return out, nil
}

type orderRow struct {
	ID              int64           `db:"id"`
	ShopperID       int64           `db:"shopper_id"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	ShippingAddress string          `db:"shipping_address"`
	PaymentMethod   string          `db:"payment_method"`
	Notes           sql.NullString  `db:"notes"`
	Status          string          `db:"status"`
	CreatedAt       time.Time       `db:"created_at"`
}

func (r orderRow) toDomain() domain.Order {
	return domain.Order{
		ID:              r.ID,
		ShopperID:       r.ShopperID,
		TotalAmount:     r.TotalAmount,
		ShippingAddress: r.ShippingAddress,
		PaymentMethod:   r.PaymentMethod,
		Notes:           r.Notes.String,
		Status:          domain.OrderStatus(r.Status),
		CreatedAt:       r.CreatedAt,
	}
}

const orderColumns = `id, shopper_id, total_amount, shipping_address, payment_method, notes, status, created_at`

// MySQLOrders репозиторий заказов
type MySQLOrders struct{ db *sqlx.DB }

func NewMySQLOrders(db *sqlx.DB) *MySQLOrders { return &MySQLOrders{db: db} }

var _ OrderRepository = (*MySQLOrders)(nil)

// Create пишет заказ и позиции; атомарность обеспечивает внешняя транзакция
func (r *MySQLOrders) Create(ctx context.Context, o *domain.Order) error {
	q := ext(ctx, r.db)
	now := time.Now().UTC()
	res, err := q.ExecContext(ctx, `INSERT INTO orders
		(shopper_id, total_amount, shipping_address, payment_method, notes, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.ShopperID, o.TotalAmount, o.ShippingAddress, o.PaymentMethod, nullString(o.Notes), string(o.Status), now)
	if err != nil {
		return errors.Wrap(err, "insert order")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "order id")
	}
	o.ID = id
	o.CreatedAt = now
	for i := range o.Items {
		o.Items[i].OrderID = id
		it := o.Items[i]
		if _, err := q.ExecContext(ctx, `INSERT INTO order_items
			(order_id, product_id, product_name, quantity, price_at_order) VALUES (?, ?, ?, ?, ?)`,
			it.OrderID, it.ProductID, it.ProductName, it.Quantity, it.PriceAtOrder); err != nil {
			return errors.Wrapf(err, "insert order item %d", it.ProductID)
		}
	}
	return nil
}

func (r *MySQLOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var row orderRow
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &row, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get order %d", id)
	}
	o := row.toDomain()
	if o.Items, err = r.items(ctx, id); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *MySQLOrders) ListByShopper(ctx context.Context, shopperID int64) ([]domain.Order, error) {
	var rows []orderRow
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows,
		`SELECT `+orderColumns+` FROM orders WHERE shopper_id = ? ORDER BY id DESC`, shopperID)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	out := make([]domain.Order, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
		if out[i].Items, err = r.items(ctx, row.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *MySQLOrders) items(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0)
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &items,
		`SELECT order_id, product_id, product_name, quantity, price_at_order FROM order_items WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, errors.Wrapf(err, "order %d items", orderID)
	}
	return items, nil
}

type buildRow struct {
	ID         int64           `db:"id"`
	ShopperID  int64           `db:"shopper_id"`
	Name       string          `db:"name"`
	TotalPrice decimal.Decimal `db:"total_price"`
	Components []byte          `db:"components"`
	CreatedAt  time.Time       `db:"created_at"`
}

// MySQLBuilds репозиторий сохранённых сборок
type MySQLBuilds struct{ db *sqlx.DB }

func NewMySQLBuilds(db *sqlx.DB) *MySQLBuilds { return &MySQLBuilds{db: db} }

var _ BuildRepository = (*MySQLBuilds)(nil)

func (r *MySQLBuilds) Create(ctx context.Context, b *domain.SavedBuild) error {
	components, err := json.Marshal(b.Components)
	if err != nil {
		return errors.Wrap(err, "encode components")
	}
	now := time.Now().UTC()
	res, err := ext(ctx, r.db).ExecContext(ctx, `INSERT INTO pc_builds (shopper_id, name, total_price, components, created_at)
		VALUES (?, ?, ?, ?, ?)`, b.ShopperID, b.Name, b.TotalPrice, string(components), now)
	if err != nil {
		return errors.Wrap(err, "insert build")
	}
	if b.ID, err = res.LastInsertId(); err != nil {
		return errors.Wrap(err, "build id")
	}
	b.CreatedAt = now
	return nil
}

func (r *MySQLBuilds) ListByShopper(ctx context.Context, shopperID int64, limit int) ([]domain.SavedBuild, error) {
	var rows []buildRow
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &rows,
		`SELECT id, shopper_id, name, total_price, components, created_at FROM pc_builds
		 WHERE shopper_id = ? ORDER BY id DESC LIMIT ?`, shopperID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list builds")
	}
	out := make([]domain.SavedBuild, len(rows))
	for i, row := range rows {
		out[i] = domain.SavedBuild{ID: row.ID, ShopperID: row.ShopperID, Name: row.Name, TotalPrice: row.TotalPrice, CreatedAt: row.CreatedAt}
		if err := json.Unmarshal(row.Components, &out[i].Components); err != nil {
			return nil, errors.Wrapf(err, "decode build %d components", row.ID)
		}
	}
	return out, nil
}
