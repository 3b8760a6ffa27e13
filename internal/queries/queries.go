package queries

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Shreyas-077/Diligent-Assessment/internal/exporter"
)

// Result is one query's output: named columns in a stable order plus one map
// per row.
type Result struct {
	Name    string                   `json:"name" yaml:"name"`
	Title   string                   `json:"title" yaml:"title"`
	Columns []string                 `json:"columns" yaml:"columns"`
	Rows    []map[string]interface{} `json:"rows" yaml:"rows"`
}

// Metrics are single-value aggregates shown alongside the dashboard tables.
type Metrics struct {
	TotalRevenue  float64 `json:"total_revenue" yaml:"total_revenue"`
	TotalOrders   int     `json:"total_orders" yaml:"total_orders"`
	UnitsSold     int     `json:"units_sold" yaml:"units_sold"`
	ReviewCount   int     `json:"review_count" yaml:"review_count"`
	AverageRating float64 `json:"average_rating" yaml:"average_rating"`
}

type Runner struct {
	db *sql.DB
	qb squirrel.StatementBuilderType
}

func NewRunner(db *sql.DB) *Runner {
	return &Runner{
		db: db,
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// TopUsersBySpending joins users to orders and ranks users by total spent.
// Ties break on ascending user id so output is deterministic.
func (r *Runner) TopUsersBySpending(ctx context.Context, limit int) (*Result, error) {
	if limit <= 0 {
		limit = 5
	}

	query := r.qb.
		Select(
			"u.name AS user_name",
			"u.email",
			"COUNT(DISTINCT o.id) AS total_orders",
			"ROUND(SUM(o.total_amount), 2) AS total_spent",
		).
		From("users u").
		Join("orders o ON o.user_id = u.id").
		GroupBy("u.id", "u.name", "u.email").
		OrderBy("total_spent DESC", "u.id ASC").
		Limit(uint64(limit))

	return r.collect(ctx, query, "top_users", fmt.Sprintf("Top %d Users by Total Spending", limit))
}

// TopProductsByRevenue joins products to order items and ranks products by
// summed subtotal.
func (r *Runner) TopProductsByRevenue(ctx context.Context, limit int) (*Result, error) {
	if limit <= 0 {
		limit = 10
	}

	query := r.qb.
		Select(
			"p.name AS product_name",
			"p.category",
			"COUNT(oi.id) AS times_ordered",
			"SUM(oi.quantity) AS total_quantity_sold",
			"ROUND(SUM(oi.subtotal), 2) AS total_revenue",
		).
		From("products p").
		Join("order_items oi ON oi.product_id = p.id").
		GroupBy("p.id", "p.name", "p.category").
		OrderBy("total_revenue DESC", "p.id ASC").
		Limit(uint64(limit))

	return r.collect(ctx, query, "product_sales", fmt.Sprintf("Top %d Products by Revenue", limit))
}

// AverageRatingByCategory joins reviews to products and averages the rating
// per category.
func (r *Runner) AverageRatingByCategory(ctx context.Context) (*Result, error) {
	query := r.qb.
		Select(
			"p.category",
			"COUNT(rv.id) AS review_count",
			"ROUND(AVG(rv.rating), 2) AS average_rating",
		).
		From("products p").
		Join("reviews rv ON rv.product_id = p.id").
		GroupBy("p.category").
		OrderBy("average_rating DESC", "p.category ASC")

	return r.collect(ctx, query, "category_ratings", "Average Rating by Product Category")
}

// All runs the three fixed queries in order.
func (r *Runner) All(ctx context.Context, topUsers, topProducts int) ([]*Result, error) {
	users, err := r.TopUsersBySpending(ctx, topUsers)
	if err != nil {
		return nil, err
	}
	products, err := r.TopProductsByRevenue(ctx, topProducts)
	if err != nil {
		return nil, err
	}
	ratings, err := r.AverageRatingByCategory(ctx)
	if err != nil {
		return nil, err
	}
	return []*Result{users, products, ratings}, nil
}

func (r *Runner) Metrics(ctx context.Context) (*Metrics, error) {
	m := &Metrics{}

	err := r.qb.
		Select("COUNT(*)", "COALESCE(ROUND(SUM(total_amount), 2), 0)").
		From("orders").
		RunWith(r.db).QueryRowContext(ctx).Scan(&m.TotalOrders, &m.TotalRevenue)
	if err != nil {
		return nil, fmt.Errorf("failed to compute order metrics: %w", err)
	}

	err = r.qb.
		Select("COALESCE(SUM(quantity), 0)").
		From("order_items").
		RunWith(r.db).QueryRowContext(ctx).Scan(&m.UnitsSold)
	if err != nil {
		return nil, fmt.Errorf("failed to compute units sold: %w", err)
	}

	err = r.qb.
		Select("COUNT(*)", "COALESCE(ROUND(AVG(rating), 2), 0)").
		From("reviews").
		RunWith(r.db).QueryRowContext(ctx).Scan(&m.ReviewCount, &m.AverageRating)
	if err != nil {
		return nil, fmt.Errorf("failed to compute review metrics: %w", err)
	}

	return m, nil
}

func (r *Runner) collect(ctx context.Context, query squirrel.SelectBuilder, name, title string) (*Result, error) {
	rows, err := query.RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("query %s failed: %w", name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("query %s failed: %w", name, err)
	}

	result := &Result{Name: name, Title: title, Columns: columns, Rows: []map[string]interface{}{}}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("query %s failed: %w", name, err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			row[col] = normalize(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s failed: %w", name, err)
	}

	return result, nil
}

// normalize smooths over driver scan types. DATE columns come back as
// time.Time, so they are rendered back to the canonical ISO form here instead
// of leaking RFC 3339 timestamps to readers.
func normalize(val interface{}) interface{} {
	switch v := val.(type) {
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(exporter.DateFormat)
	default:
		return val
	}
}
