package queries

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/Shreyas-077/Diligent-Assessment/internal/config"
	"github.com/Shreyas-077/Diligent-Assessment/internal/exporter"
	"github.com/Shreyas-077/Diligent-Assessment/internal/generator"
	"github.com/Shreyas-077/Diligent-Assessment/internal/pipeline"
	"github.com/Shreyas-077/Diligent-Assessment/internal/store"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Seed:    42,
		DataDir: filepath.Join(dir, "data"),
		Database: config.Database{
			Path: filepath.Join(dir, "ecommerce.db"),
		},
		Counts: config.Counts{
			Users:        5,
			Products:     3,
			Orders:       10,
			Reviews:      8,
			ItemsMin:     1,
			ItemsMax:     3,
			QuantityMax:  5,
			SignupWindow: 365,
		},
		Prices: config.Prices{Min: 10, Max: 500},
	}
}

func loadedRunner(t *testing.T, cfg *config.Config) (*Runner, *generator.Dataset) {
	t.Helper()
	summary, err := pipeline.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return NewRunner(st.DB()), summary.Dataset
}

func TestTopUserSpendingMatchesOrders(t *testing.T) {
	cfg := testConfig(t)
	runner, ds := loadedRunner(t, cfg)

	res, err := runner.TopUsersBySpending(context.Background(), 1)
	if err != nil {
		t.Fatalf("TopUsersBySpending failed: %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("Expected exactly 1 row, got %d", len(res.Rows))
	}

	row := res.Rows[0]
	email, _ := row["email"].(string)
	spent, _ := row["total_spent"].(float64)

	// Recompute this user's spending from the generated orders.
	var userID int
	for _, u := range ds.Users {
		if u.Email == email {
			userID = u.ID
		}
	}
	if userID == 0 {
		t.Fatalf("Top spender email %q not found in generated users", email)
	}

	var want float64
	for _, o := range ds.Orders {
		if o.UserID == userID {
			want += o.TotalAmount
		}
	}
	want = math.Round(want*100) / 100

	if math.Abs(spent-want) > 0.005 {
		t.Errorf("Top spender total_spent = %.2f, recomputed from orders = %.2f", spent, want)
	}
}

func TestTopUsersOrderingAndLimit(t *testing.T) {
	cfg := testConfig(t)
	runner, _ := loadedRunner(t, cfg)
	ctx := context.Background()

	res, err := runner.TopUsersBySpending(ctx, 3)
	if err != nil {
		t.Fatalf("TopUsersBySpending failed: %v", err)
	}
	if len(res.Rows) > 3 {
		t.Errorf("Limit 3 returned %d rows", len(res.Rows))
	}

	var prev float64 = math.Inf(1)
	for i, row := range res.Rows {
		spent, _ := row["total_spent"].(float64)
		if spent > prev {
			t.Errorf("Row %d not sorted descending: %.2f after %.2f", i, spent, prev)
		}
		prev = spent
	}

	// Asking for more groups than exist returns what exists, not an error.
	res, err = runner.TopUsersBySpending(ctx, 100)
	if err != nil {
		t.Fatalf("TopUsersBySpending failed: %v", err)
	}
	if len(res.Rows) > cfg.Counts.Users {
		t.Errorf("Got %d rows for %d users", len(res.Rows), cfg.Counts.Users)
	}
}

func TestNoOrdersYieldsNoSpendingRows(t *testing.T) {
	cfg := testConfig(t)
	cfg.Counts.Orders = 0
	cfg.Counts.Reviews = 0
	runner, _ := loadedRunner(t, cfg)

	res, err := runner.TopUsersBySpending(context.Background(), 5)
	if err != nil {
		t.Fatalf("TopUsersBySpending failed: %v", err)
	}
	if len(res.Rows) != 0 {
		t.Errorf("Expected 0 rows with no orders, got %d", len(res.Rows))
	}
}

func TestTopProductsByRevenue(t *testing.T) {
	cfg := testConfig(t)
	runner, ds := loadedRunner(t, cfg)

	res, err := runner.TopProductsByRevenue(context.Background(), 10)
	if err != nil {
		t.Fatalf("TopProductsByRevenue failed: %v", err)
	}
	if len(res.Rows) > len(ds.Products) {
		t.Errorf("Got %d product rows for %d products", len(res.Rows), len(ds.Products))
	}

	// Revenue per product recomputed from generated order items.
	want := make(map[int]float64)
	for _, item := range ds.OrderItems {
		want[item.ProductID] += item.Subtotal
	}

	var total float64
	var prev float64 = math.Inf(1)
	for i, row := range res.Rows {
		revenue, _ := row["total_revenue"].(float64)
		if revenue > prev {
			t.Errorf("Row %d not sorted descending by revenue", i)
		}
		prev = revenue
		total += revenue
	}

	var wantTotal float64
	for _, v := range want {
		wantTotal += v
	}
	if math.Abs(total-wantTotal) > 0.05 {
		t.Errorf("Summed revenue %.2f differs from generated subtotal sum %.2f", total, wantTotal)
	}
}

func TestAverageRatingByCategory(t *testing.T) {
	cfg := testConfig(t)
	runner, _ := loadedRunner(t, cfg)

	res, err := runner.AverageRatingByCategory(context.Background())
	if err != nil {
		t.Fatalf("AverageRatingByCategory failed: %v", err)
	}

	for _, row := range res.Rows {
		rating, _ := row["average_rating"].(float64)
		if rating < 1 || rating > 5 {
			t.Errorf("Category %v has average rating %.2f outside [1, 5]", row["category"], rating)
		}
		count, ok := row["review_count"].(int64)
		if !ok || count < 1 {
			t.Errorf("Category %v has review_count %v, expected at least 1", row["category"], row["review_count"])
		}
	}
}

func TestMetrics(t *testing.T) {
	cfg := testConfig(t)
	runner, ds := loadedRunner(t, cfg)

	m, err := runner.Metrics(context.Background())
	if err != nil {
		t.Fatalf("Metrics failed: %v", err)
	}

	if m.TotalOrders != len(ds.Orders) {
		t.Errorf("TotalOrders = %d, want %d", m.TotalOrders, len(ds.Orders))
	}
	if m.ReviewCount != len(ds.Reviews) {
		t.Errorf("ReviewCount = %d, want %d", m.ReviewCount, len(ds.Reviews))
	}

	var units int
	var revenue float64
	for _, item := range ds.OrderItems {
		units += item.Quantity
	}
	for _, o := range ds.Orders {
		revenue += o.TotalAmount
	}
	if m.UnitsSold != units {
		t.Errorf("UnitsSold = %d, want %d", m.UnitsSold, units)
	}
	if math.Abs(m.TotalRevenue-math.Round(revenue*100)/100) > 0.005 {
		t.Errorf("TotalRevenue = %.2f, want %.2f", m.TotalRevenue, revenue)
	}
}

func TestDateColumnsRenderAsISODates(t *testing.T) {
	cfg := testConfig(t)
	runner, ds := loadedRunner(t, cfg)

	query := runner.qb.
		Select("id", "signup_date").
		From("users").
		OrderBy("id ASC").
		Limit(1)

	res, err := runner.collect(context.Background(), query, "signup_dates", "Signup Dates")
	if err != nil {
		t.Fatalf("Failed to collect signup dates: %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(res.Rows))
	}

	got, ok := res.Rows[0]["signup_date"].(string)
	if !ok {
		t.Fatalf("signup_date scanned as %T, want string", res.Rows[0]["signup_date"])
	}
	want := ds.Users[0].SignupDate.Format(exporter.DateFormat)
	if got != want {
		t.Errorf("signup_date rendered as %q, want %q", got, want)
	}
}
