package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/Shreyas-077/Diligent-Assessment/internal/config"
	"github.com/Shreyas-077/Diligent-Assessment/internal/pipeline"
	"github.com/Shreyas-077/Diligent-Assessment/internal/queries"
	"github.com/Shreyas-077/Diligent-Assessment/internal/report"
	"github.com/Shreyas-077/Diligent-Assessment/internal/store"
)

type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// ViewData is everything one dashboard page render needs. A query that
// failed gets an entry in Errors keyed by result name and an empty Result,
// so one bad table does not take the whole view down.
type ViewData struct {
	Results []*queries.Result `json:"results"`
	Errors  map[string]string `json:"errors,omitempty"`
	Metrics *queries.Metrics  `json:"metrics"`
}

// LoadResults runs all queries against the current database. The store is
// opened per call so a regenerate in between always hits the fresh file.
func (s *Service) LoadResults(ctx context.Context) (*ViewData, error) {
	// Opening a missing path would create an empty database file, so check
	// for it first.
	if _, err := os.Stat(s.cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("database not available, generate data first: %w", err)
	}

	st, err := store.Open(s.cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("database not available, generate data first: %w", err)
	}
	defer st.Close()

	runner := queries.NewRunner(st.DB())
	data := &ViewData{Errors: map[string]string{}}

	type namedQuery struct {
		name, title string
		run         func() (*queries.Result, error)
	}
	for _, q := range []namedQuery{
		{"top_users", "Top 5 Users by Total Spending", func() (*queries.Result, error) {
			return runner.TopUsersBySpending(ctx, 5)
		}},
		{"product_sales", "Top 10 Products by Revenue", func() (*queries.Result, error) {
			return runner.TopProductsByRevenue(ctx, 10)
		}},
		{"category_ratings", "Average Rating by Product Category", func() (*queries.Result, error) {
			return runner.AverageRatingByCategory(ctx)
		}},
	} {
		res, err := q.run()
		if err != nil {
			data.Errors[q.name] = err.Error()
			res = &queries.Result{Name: q.name, Title: q.title}
		}
		data.Results = append(data.Results, res)
	}
	if len(data.Errors) == len(data.Results) {
		return nil, fmt.Errorf("all queries failed, is the database loaded? (%s)", data.Errors["top_users"])
	}

	metrics, err := runner.Metrics(ctx)
	if err != nil {
		return nil, err
	}
	data.Metrics = metrics

	return data, nil
}

// Regenerate re-runs the whole pipeline, fully replacing the CSV files and
// the database. Safe to invoke repeatedly.
func (s *Service) Regenerate(ctx context.Context) error {
	_, err := pipeline.Run(ctx, s.cfg)
	return err
}

// ExportCSV renders one query result as a CSV attachment body.
func (s *Service) ExportCSV(ctx context.Context, name string) ([]byte, error) {
	data, err := s.LoadResults(ctx)
	if err != nil {
		return nil, err
	}

	for _, res := range data.Results {
		if res.Name == name {
			var buf bytes.Buffer
			if err := report.WriteCSV(&buf, res); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		}
	}
	return nil, fmt.Errorf("unknown query result: %s", name)
}
