package loader

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/Shreyas-077/Diligent-Assessment/internal/config"
	"github.com/Shreyas-077/Diligent-Assessment/internal/exporter"
	"github.com/Shreyas-077/Diligent-Assessment/internal/store"
)

// LoadError marks a failure loading one table. The other tables may still
// have loaded fine; callers report partial success instead of swallowing it.
type LoadError struct {
	Table string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load table %s: %v", e.Table, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type TableResult struct {
	Table string
	Rows  int
	Err   error
}

// Report collects per-table load outcomes.
type Report struct {
	Tables []TableResult
}

func (r *Report) Err() error {
	var errs []error
	for _, t := range r.Tables {
		if t.Err != nil {
			errs = append(errs, t.Err)
		}
	}
	return errors.Join(errs...)
}

// column kinds drive value parsing so malformed cells fail the load instead
// of landing in the store as text.
const (
	kindInt = iota
	kindFloat
	kindText
)

var columnKinds = map[string][]int{
	"users":       {kindInt, kindText, kindText, kindText},
	"products":    {kindInt, kindText, kindText, kindFloat},
	"orders":      {kindInt, kindInt, kindText, kindFloat},
	"order_items": {kindInt, kindInt, kindInt, kindInt, kindFloat},
	"reviews":     {kindInt, kindInt, kindInt, kindInt, kindText, kindText},
}

// Load recreates the store schema and bulk-inserts every exported CSV file,
// replacing any existing data. Tables load in dependency order; a failure in
// one table is recorded and the rest still load.
func Load(ctx context.Context, cfg *config.Config) (*Report, error) {
	// Full replace per run: drop the old database file first.
	if err := os.Remove(cfg.Database.Path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to remove existing database %s: %w", cfg.Database.Path, err)
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	if err := st.CreateSchema(ctx); err != nil {
		return nil, err
	}

	report := &Report{}
	for _, table := range exporter.Tables {
		rows, err := loadTable(ctx, st, table, cfg.CSVPath(table))
		report.Tables = append(report.Tables, TableResult{Table: table, Rows: rows, Err: err})
	}

	if err := st.CreateIndexes(ctx); err != nil {
		return report, err
	}
	return report, nil
}

func loadTable(ctx context.Context, st *store.Store, table, path string) (int, error) {
	records, err := readCSV(path, exporter.Columns[table])
	if err != nil {
		return 0, &LoadError{Table: table, Err: err}
	}

	tx, err := st.DB().BeginTx(ctx, nil)
	if err != nil {
		return 0, &LoadError{Table: table, Err: err}
	}

	kinds := columnKinds[table]
	for _, record := range records {
		values, err := parseValues(record, kinds)
		if err != nil {
			tx.Rollback()
			return 0, &LoadError{Table: table, Err: err}
		}

		insert := st.Builder().Insert(table).Columns(exporter.Columns[table]...).Values(values...)
		if _, err := insert.RunWith(tx).ExecContext(ctx); err != nil {
			tx.Rollback()
			return 0, &LoadError{Table: table, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, &LoadError{Table: table, Err: err}
	}
	return len(records), nil
}

func readCSV(path string, expected []string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(expected)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty, expected a header row", path)
	}

	header := records[0]
	for i, col := range expected {
		if header[i] != col {
			return nil, fmt.Errorf("unexpected header in %s: got %q at position %d, want %q",
				path, header[i], i, col)
		}
	}

	return records[1:], nil
}

func parseValues(record []string, kinds []int) ([]interface{}, error) {
	values := make([]interface{}, len(record))
	for i, raw := range record {
		switch kinds[i] {
		case kindInt:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("unparseable integer %q: %w", raw, err)
			}
			values[i] = n
		case kindFloat:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("unparseable number %q: %w", raw, err)
			}
			values[i] = f
		default:
			values[i] = raw
		}
	}
	return values, nil
}

// foreign key relations checked after load: child table/column against
// parent table.
var relations = []struct {
	table, column, parent string
}{
	{"orders", "user_id", "users"},
	{"order_items", "order_id", "orders"},
	{"order_items", "product_id", "products"},
	{"reviews", "user_id", "users"},
	{"reviews", "product_id", "products"},
}

// VerifyIntegrity asserts that no loaded row carries a foreign key without a
// matching parent row. Load-order discipline alone is not trusted.
func VerifyIntegrity(ctx context.Context, st *store.Store) error {
	for _, rel := range relations {
		query := fmt.Sprintf(
			"SELECT COUNT(*) FROM %s c WHERE NOT EXISTS (SELECT 1 FROM %s p WHERE p.id = c.%s)",
			rel.table, rel.parent, rel.column,
		)

		var orphans int
		if err := st.DB().QueryRowContext(ctx, query).Scan(&orphans); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return fmt.Errorf("integrity check on %s.%s failed: %w", rel.table, rel.column, err)
		}
		if orphans > 0 {
			return fmt.Errorf("%d orphan rows in %s.%s reference missing %s", orphans, rel.table, rel.column, rel.parent)
		}
	}
	return nil
}
