package dashboard

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/Shreyas-077/Diligent-Assessment/internal/config"
	"github.com/Shreyas-077/Diligent-Assessment/internal/report"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
)

type Server struct {
	app     *fiber.App
	service *Service
	port    int
}

// tableView is one rendered query table, or its error message when the
// query failed.
type tableView struct {
	Name    string
	Title   string
	Columns []string
	Rows    [][]string
	Err     string
}

func NewServer(cfg *config.Config, port int) (*Server, error) {
	engine := html.NewFileSystem(http.FS(templatesFS), ".html")
	app := fiber.New(fiber.Config{Views: engine})

	server := &Server{
		app:     app,
		service: NewService(cfg),
		port:    port,
	}

	server.setupRoutes()
	return server, nil
}

func (s *Server) setupRoutes() {
	staticFiles, _ := fs.Sub(staticFS, "static")
	s.app.Use("/static", filesystem.New(filesystem.Config{
		Root: http.FS(staticFiles),
	}))

	s.app.Get("/", s.handleIndex)

	api := s.app.Group("/api")
	api.Get("/results", s.handleResults)
	api.Post("/regenerate", s.handleRegenerate)
	api.Get("/export/:name", s.handleExport)
}

func (s *Server) Start(openBrowser bool) error {
	port := findAvailablePort(s.port)
	if port != s.port {
		fmt.Printf("⚠️  Port %d is in use, using port %d instead\n", s.port, port)
		s.port = port
	}

	url := fmt.Sprintf("http://localhost:%d", s.port)
	fmt.Printf("🚀 E-Commerce Insights Dashboard starting on %s\n", url)

	if openBrowser {
		go openInBrowser(url)
	}

	return s.app.Listen(fmt.Sprintf(":%d", s.port))
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	ctx := context.Background()

	data, err := s.service.LoadResults(ctx)
	if err != nil {
		return c.Render("templates/index", fiber.Map{
			"Title": "E-Commerce Insights Dashboard",
			"Error": err.Error(),
		})
	}

	views := make([]tableView, 0, len(data.Results))
	for _, res := range data.Results {
		views = append(views, tableView{
			Name:    res.Name,
			Title:   res.Title,
			Columns: res.Columns,
			Rows:    report.TableRows(res),
			Err:     data.Errors[res.Name],
		})
	}

	return c.Render("templates/index", fiber.Map{
		"Title":         "E-Commerce Insights Dashboard",
		"Tables":        views,
		"TotalRevenue":  report.Currency(data.Metrics.TotalRevenue),
		"TotalOrders":   data.Metrics.TotalOrders,
		"UnitsSold":     data.Metrics.UnitsSold,
		"ReviewCount":   data.Metrics.ReviewCount,
		"AverageRating": fmt.Sprintf("%.2f", data.Metrics.AverageRating),
	})
}

func (s *Server) handleResults(c *fiber.Ctx) error {
	data, err := s.service.LoadResults(context.Background())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return jsonData(c, data)
}

func (s *Server) handleRegenerate(c *fiber.Ctx) error {
	if err := s.service.Regenerate(context.Background()); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return jsonMessage(c, "Data regenerated successfully")
}

func (s *Server) handleExport(c *fiber.Ctx) error {
	name := c.Params("name")

	body, err := s.service.ExportCSV(context.Background(), name)
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, err.Error())
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.csv"`, name))
	return c.Send(body)
}
