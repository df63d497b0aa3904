package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bluecarbon/docs"
	"bluecarbon/internal/checklist"
	"bluecarbon/internal/config"
	"bluecarbon/internal/database"
	"bluecarbon/internal/database/migration"
	handlers "bluecarbon/internal/http/handler"
	"bluecarbon/internal/http/middleware"
	"bluecarbon/internal/ledger"
	"bluecarbon/internal/ocr"
	"bluecarbon/internal/otel"
	"bluecarbon/internal/report"
	"bluecarbon/internal/repository/postgres"
	"bluecarbon/internal/service"
	"bluecarbon/internal/storage"
)

// @title Blue Carbon Verification API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()
	loc := time.Local

	// Initialize OpenTelemetry tracing (no-op when OTEL_SDK_DISABLED=true)
	shutdownTracer, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("tracer shutdown: %v", err)
		}
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Extraction client. A missing API key is a startup error, not a silent
	// fall-through to mock output.
	gen, err := ocr.NewGeminiGenerator(ctx, cfg.Gemini)
	if err != nil {
		log.Fatalf("failed to initialize extraction client: %v", err)
	}
	extractor := ocr.NewAdapter(gen, logger)

	reg := prometheus.NewRegistry()
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to initialize http metrics: %v", err)
	}
	metrics, err := service.NewMetrics(reg)
	if err != nil {
		log.Fatalf("failed to initialize pipeline metrics: %v", err)
	}

	// Initialize repositories and services
	runRepo := postgres.NewRunPostgres(db)
	svc := service.NewVerificationService(objStore, runRepo, service.Options{
		Extractor:   extractor,
		Committer:   ledger.NewCommitter(time.Duration(cfg.Pipeline.CommitDelayMs) * time.Millisecond),
		StageDelays: stageDelays(cfg.Pipeline.StageDelaysMs),
		Metrics:     metrics,
	})

	checklists := checklist.NewStore()
	reports := report.NewStore(cfg.Automation.ReportsDir)
	launcher := report.NewLauncher(cfg.Automation)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())
	app.Use(promMW.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected collaborators
	handlers.RegisterRoutes(app, handlers.Collaborators{
		DB:          db,
		Service:     svc,
		Checklists:  checklists,
		Launcher:    launcher,
		ReportStore: reports,
	})

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func stageDelays(ms []int) []time.Duration {
	out := make([]time.Duration, len(ms))
	for i, v := range ms {
		out[i] = time.Duration(v) * time.Millisecond
	}
	return out
}
