package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Shreyas-077/Diligent-Assessment/internal/config"
	"github.com/Shreyas-077/Diligent-Assessment/internal/generator"
)

// DateFormat is the canonical date layout used across all exported files.
const DateFormat = "2006-01-02"

// Table names in dependency order. The loader relies on this ordering so
// foreign keys resolve when constraint checking is enabled.
var Tables = []string{"users", "products", "orders", "order_items", "reviews"}

// Columns maps each table to its fixed CSV column order.
var Columns = map[string][]string{
	"users":       {"id", "name", "email", "signup_date"},
	"products":    {"id", "name", "category", "price"},
	"orders":      {"id", "user_id", "order_date", "total_amount"},
	"order_items": {"id", "order_id", "product_id", "quantity", "subtotal"},
	"reviews":     {"id", "user_id", "product_id", "rating", "review_text", "review_date"},
}

// Export writes the dataset as one CSV file per table under cfg.DataDir,
// overwriting any prior content. The destination directory is created if
// absent.
func Export(ds *generator.Dataset, cfg *config.Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
	}

	for _, table := range Tables {
		if err := writeTable(cfg.CSVPath(table), table, rowsFor(ds, table)); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(path, table string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(Columns[table]); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", path, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

func rowsFor(ds *generator.Dataset, table string) [][]string {
	switch table {
	case "users":
		rows := make([][]string, 0, len(ds.Users))
		for _, u := range ds.Users {
			rows = append(rows, []string{
				strconv.Itoa(u.ID), u.Name, u.Email, formatDate(u.SignupDate),
			})
		}
		return rows
	case "products":
		rows := make([][]string, 0, len(ds.Products))
		for _, p := range ds.Products {
			rows = append(rows, []string{
				strconv.Itoa(p.ID), p.Name, p.Category, formatMoney(p.Price),
			})
		}
		return rows
	case "orders":
		rows := make([][]string, 0, len(ds.Orders))
		for _, o := range ds.Orders {
			rows = append(rows, []string{
				strconv.Itoa(o.ID), strconv.Itoa(o.UserID),
				formatDate(o.OrderDate), formatMoney(o.TotalAmount),
			})
		}
		return rows
	case "order_items":
		rows := make([][]string, 0, len(ds.OrderItems))
		for _, it := range ds.OrderItems {
			rows = append(rows, []string{
				strconv.Itoa(it.ID), strconv.Itoa(it.OrderID), strconv.Itoa(it.ProductID),
				strconv.Itoa(it.Quantity), formatMoney(it.Subtotal),
			})
		}
		return rows
	case "reviews":
		rows := make([][]string, 0, len(ds.Reviews))
		for _, r := range ds.Reviews {
			rows = append(rows, []string{
				strconv.Itoa(r.ID), strconv.Itoa(r.UserID), strconv.Itoa(r.ProductID),
				strconv.Itoa(r.Rating), r.ReviewText, formatDate(r.ReviewDate),
			})
		}
		return rows
	}
	return nil
}

func formatDate(t time.Time) string {
	return t.Format(DateFormat)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
