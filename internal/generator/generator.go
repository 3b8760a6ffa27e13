package generator

import (
	"fmt"
	"math"
	"time"

	"github.com/Shreyas-077/Diligent-Assessment/internal/config"
)

// Generate produces a full synthetic dataset from the configured counts and
// seed. Entities are created in dependency order so every foreign key
// references a record generated earlier in the same run.
func Generate(cfg *config.Config) (*Dataset, error) {
	if cfg.Counts.Users <= 0 {
		return nil, fmt.Errorf("cannot generate dataset without users (got %d)", cfg.Counts.Users)
	}
	if cfg.Counts.Products <= 0 {
		return nil, fmt.Errorf("cannot generate dataset without products (got %d)", cfg.Counts.Products)
	}
	if cfg.Counts.Orders < 0 || cfg.Counts.Reviews < 0 {
		return nil, fmt.Errorf("entity counts cannot be negative")
	}
	if cfg.Counts.ItemsMin < 1 || cfg.Counts.ItemsMax < cfg.Counts.ItemsMin {
		return nil, fmt.Errorf("invalid items per order range [%d, %d]", cfg.Counts.ItemsMin, cfg.Counts.ItemsMax)
	}

	g := NewDataGenerator(cfg.Seed)
	today := truncateToDay(time.Now())
	ds := &Dataset{}

	generateUsers(g, cfg, ds, today)
	generateProducts(g, cfg, ds)
	generateOrders(g, cfg, ds, today)
	generateOrderItems(g, cfg, ds)
	generateReviews(g, cfg, ds, today)

	return ds, nil
}

func generateUsers(g *DataGenerator, cfg *config.Config, ds *Dataset, today time.Time) {
	windowStart := today.AddDate(0, 0, -cfg.Counts.SignupWindow)
	ds.Users = make([]User, 0, cfg.Counts.Users)

	for i := 1; i <= cfg.Counts.Users; i++ {
		name := g.FullName()
		ds.Users = append(ds.Users, User{
			ID:         i,
			Name:       name,
			Email:      g.Email(name, i),
			SignupDate: g.DateBetween(windowStart, today),
		})
	}
}

func generateProducts(g *DataGenerator, cfg *config.Config, ds *Dataset) {
	ds.Products = make([]Product, 0, cfg.Counts.Products)

	for i := 1; i <= cfg.Counts.Products; i++ {
		ds.Products = append(ds.Products, Product{
			ID:       i,
			Name:     g.ProductName(),
			Category: g.Category(),
			Price:    g.Price(cfg.Prices.Min, cfg.Prices.Max),
		})
	}
}

func generateOrders(g *DataGenerator, cfg *config.Config, ds *Dataset, today time.Time) {
	ds.Orders = make([]Order, 0, cfg.Counts.Orders)

	for i := 1; i <= cfg.Counts.Orders; i++ {
		user := ds.Users[g.Pick(len(ds.Users))]
		ds.Orders = append(ds.Orders, Order{
			ID:        i,
			UserID:    user.ID,
			OrderDate: g.DateBetween(user.SignupDate, today),
			// TotalAmount set after items are generated
		})
	}
}

func generateOrderItems(g *DataGenerator, cfg *config.Config, ds *Dataset) {
	itemID := 1

	for oi := range ds.Orders {
		order := &ds.Orders[oi]
		count := g.IntBetween(cfg.Counts.ItemsMin, cfg.Counts.ItemsMax)

		var total float64
		for _, pi := range g.Sample(len(ds.Products), count) {
			product := ds.Products[pi]
			quantity := g.IntBetween(1, cfg.Counts.QuantityMax)
			subtotal := round2(float64(quantity) * product.Price)
			total += subtotal

			ds.OrderItems = append(ds.OrderItems, OrderItem{
				ID:        itemID,
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  quantity,
				Subtotal:  subtotal,
			})
			itemID++
		}

		// The order total must come from its items, never be drawn
		// independently, or the two drift apart.
		order.TotalAmount = round2(total)
	}
}

func generateReviews(g *DataGenerator, cfg *config.Config, ds *Dataset, today time.Time) {
	ds.Reviews = make([]Review, 0, cfg.Counts.Reviews)

	for i := 1; i <= cfg.Counts.Reviews; i++ {
		user := ds.Users[g.Pick(len(ds.Users))]
		product := ds.Products[g.Pick(len(ds.Products))]

		ds.Reviews = append(ds.Reviews, Review{
			ID:         i,
			UserID:     user.ID,
			ProductID:  product.ID,
			Rating:     g.Rating(),
			ReviewText: g.ReviewText(),
			ReviewDate: g.DateBetween(user.SignupDate, today),
		})
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
