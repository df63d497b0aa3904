package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"bluecarbon/internal/checklist"
	"bluecarbon/internal/report"
	"bluecarbon/internal/service"
)

// Collaborators bundles everything the HTTP surface needs.
type Collaborators struct {
	DB          *sql.DB
	Service     service.VerificationService
	Checklists  *checklist.Store
	Launcher    *report.Launcher
	ReportStore *report.Store
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, col Collaborators) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health
	app.Get("/health", HealthCheck(col.DB))
	app.Get("/healthz", LivenessProbe())

	// Verification runs (full pipeline on create)
	app.Post("/runs", CreateRun(col.Service))
	app.Get("/runs", ListRuns(col.Service))
	app.Get("/runs/:id", GetRun(col.Service))
	app.Delete("/runs/:id", DeleteRun(col.Service))
	app.Get("/runs/:id/progress", RunProgress(col.Service))
	app.Post("/runs/:id/commit", CommitRun(col.Service))

	// Reviewer checklist sessions
	app.Post("/runs/:id/checklist", SeedChecklist(col.Checklists))
	app.Get("/runs/:id/checklist", GetChecklist(col.Checklists))
	app.Post("/runs/:id/checklist/:itemID/toggle", ToggleChecklistItem(col.Checklists))

	// Automation reports (launch + at-most-once poll)
	app.Post("/automation/reports", LaunchReport(col.Launcher))
	app.Get("/automation/reports/:projectID", PollReport(col.ReportStore))

	// Mock satellite analysis + admin aggregates
	app.Get("/satellite/:projectID/analysis", SatelliteAnalysis())
	app.Get("/admin/overview", AdminOverview(col.Service))
}
