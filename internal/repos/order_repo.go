package repos

import "github.com/jmoiron/sqlx"

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// ---------- Admin list summary ----------
type OrderSummary struct {
	ID            string  `db:"id" json:"id"`
	CustomerName  string  `db:"customer_name" json:"customer_name"`
	CustomerEmail string  `db:"customer_email" json:"customer_email"`
	Total         float64 `db:"total" json:"total"`
	Status        string  `db:"status" json:"status"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
}

// ---------- Order detail ----------
type OrderRow struct {
	ID             string  `db:"id" json:"id"`
	SessionID      string  `db:"session_id" json:"-"`
	UserID         string  `db:"user_id" json:"-"`
	Customer       string  `db:"customer_name" json:"customer_name"`
	Email          string  `db:"customer_email" json:"customer_email"`
	ShippingOption string  `db:"shipping_option" json:"shipping_option"`
	ShippingCost   float64 `db:"shipping_cost" json:"shipping_cost"`
	DiscountCode   string  `db:"discount_code" json:"discount_code,omitempty"`
	DiscountAmount float64 `db:"discount_amount" json:"discount_amount"`
	PaymentMethod  string  `db:"payment_method" json:"payment_method"`
	Subtotal       float64 `db:"subtotal" json:"subtotal"`
	Total          float64 `db:"total" json:"total"`
	Status         string  `db:"status" json:"status"`
	CreatedAt      string  `db:"created_at" json:"created_at"`
}

type OrderItemRow struct {
	ProductID string  `db:"product_id" json:"product_id"`
	Name      string  `db:"name" json:"name"`
	Qty       int     `db:"qty" json:"qty"`
	Price     float64 `db:"price" json:"price"`
	Subtotal  float64 `db:"subtotal" json:"subtotal"`
}

// Header holds everything priced at checkout time.
type Header struct {
	ID             string
	SessionID      string
	CustomerName   string
	CustomerEmail  string
	ShippingOption string
	ShippingCost   float64
	DiscountCode   string
	DiscountAmount float64
	PaymentMethod  string
	Subtotal       float64
	Total          float64
}

func (r *OrderRepo) Create(h Header) error {
	_, err := r.db.Exec(`
	  INSERT INTO orders
	    (id, session_id, customer_name, customer_email, shipping_option, shipping_cost,
	     discount_code, discount_amount, payment_method, subtotal, total, status, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,'PLACED',CURRENT_TIMESTAMP)
	`, h.ID, h.SessionID, h.CustomerName, h.CustomerEmail, h.ShippingOption, h.ShippingCost,
		h.DiscountCode, h.DiscountAmount, h.PaymentMethod, h.Subtotal, h.Total)
	return err
}

func (r *OrderRepo) InsertItem(orderID, productID, name string, qty int, price float64) error {
	_, err := r.db.Exec(`
	  INSERT INTO order_items(order_id, product_id, name, qty, price)
	  VALUES(?, ?, ?, ?, ?)
	`, orderID, productID, name, qty, price)
	return err
}

func (r *OrderRepo) Get(orderID string) (OrderRow, []OrderItemRow, error) {
	var o OrderRow
	if err := r.db.Get(&o, `
		SELECT o.id, o.session_id, COALESCE(s.user_id,'') AS user_id, o.customer_name,
		  o.customer_email, o.shipping_option, o.shipping_cost,
		  COALESCE(o.discount_code,'') AS discount_code, o.discount_amount,
		  COALESCE(o.payment_method,'') AS payment_method, o.subtotal, o.total,
		  o.status, o.created_at
		FROM orders o
		LEFT JOIN sessions s ON s.id = o.session_id
		WHERE o.id = ?
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	var items []OrderItemRow
	if err := r.db.Select(&items, `
		SELECT product_id, name, qty, price, (qty * price) AS subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY name
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	return o, items, nil
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, customer_name, customer_email, total, status, created_at
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

// ListByUser returns orders for a given user via session linkage.
func (r *OrderRepo) ListByUser(userID string) ([]OrderSummary, error) {
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT o.id, o.customer_name, o.customer_email, o.total, o.status, o.created_at
		FROM orders o
		JOIN sessions s ON s.id = o.session_id
		WHERE s.user_id = ?
		ORDER BY datetime(o.created_at) DESC
	`, userID)
	return out, err
}

// ListBySession returns orders tied to a session (anon or pre-login orders).
func (r *OrderRepo) ListBySession(sessionID string) ([]OrderSummary, error) {
	var out []OrderSummary
	err := r.db.Select(&out, `
		SELECT id, customer_name, customer_email, total, status, created_at
		FROM orders
		WHERE session_id = ?
		ORDER BY datetime(created_at) DESC
	`, sessionID)
	return out, err
}

func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}

// ---------- Analytics aggregates ----------

type MonthRevenue struct {
	Month   string  `db:"month" json:"month"` // YYYY-MM
	Revenue float64 `db:"revenue" json:"revenue"`
	Orders  int     `db:"orders" json:"orders"`
}

func (r *OrderRepo) MonthlyRevenue(months int) ([]MonthRevenue, error) {
	if months <= 0 {
		months = 12
	}
	var out []MonthRevenue
	err := r.db.Select(&out, `
		SELECT strftime('%Y-%m', created_at) AS month,
		       SUM(total) AS revenue, COUNT(*) AS orders
		FROM orders
		WHERE status != 'CANCELED'
		GROUP BY month
		ORDER BY month DESC
		LIMIT ?
	`, months)
	return out, err
}

type TopProduct struct {
	ProductID string  `db:"product_id" json:"product_id"`
	Name      string  `db:"name" json:"name"`
	Units     int     `db:"units" json:"units"`
	Revenue   float64 `db:"revenue" json:"revenue"`
}

func (r *OrderRepo) TopProducts(limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []TopProduct
	err := r.db.Select(&out, `
		SELECT oi.product_id, oi.name, SUM(oi.qty) AS units,
		       SUM(oi.qty * oi.price) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status != 'CANCELED'
		GROUP BY oi.product_id, oi.name
		ORDER BY revenue DESC
		LIMIT ?
	`, limit)
	return out, err
}

type Overview struct {
	Orders       int     `db:"orders" json:"orders"`
	Revenue      float64 `db:"revenue" json:"revenue"`
	AverageOrder float64 `db:"average_order" json:"average_order"`
}

func (r *OrderRepo) GetOverview() (Overview, error) {
	var o Overview
	err := r.db.Get(&o, `
		SELECT COUNT(*) AS orders,
		       COALESCE(SUM(total),0) AS revenue,
		       COALESCE(AVG(total),0) AS average_order
		FROM orders
		WHERE status != 'CANCELED'
	`)
	return o, err
}
