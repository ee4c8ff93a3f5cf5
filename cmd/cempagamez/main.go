package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"cempagamez/internal/assistant"
	"cempagamez/internal/catalog"
	"cempagamez/internal/checkout"
	"cempagamez/internal/config"
	"cempagamez/internal/http/handlers"
	"cempagamez/internal/httpclient"
	applog "cempagamez/internal/log"
	"cempagamez/internal/metrics"
	"cempagamez/internal/repos"
	"cempagamez/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Catalog: remote API, then the bundled games. Every remote load is recorded
	// in the snapshot database; it is only served when CATALOG_SERVE_SNAPSHOT is set.
	db, err := repos.OpenDB(cfg.SnapshotDSN)
	if err != nil {
		log.Fatal(err)
	}
	snapshots := repos.NewGameRepo(db)

	catalogHTTP := httpclient.DefaultConfig("catalog")
	catalogHTTP.Timeout = cfg.CatalogTimeout
	chain := catalog.Chain{catalog.RemoteSource{URL: cfg.CatalogURL, Client: httpclient.New(catalogHTTP)}}
	if cfg.ServeSnapshot {
		chain = append(chain, catalog.SnapshotSource{Store: snapshots})
	}
	chain = append(chain, catalog.DefaultSource{})
	games := catalog.NewService(chain, snapshots)
	// The store renders a loading state until the first cycle finishes.
	go func() {
		games.Load(ctx)
		games.Run(ctx, cfg.RefreshInterval)
	}()

	// Sessions
	var sessions session.Store
	if cfg.RedisURL != "" {
		client, err := session.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		sessions = session.NewRedisStore(client, cfg.SessionTTL)
		log.Printf("[session] redis store, ttl=%s", cfg.SessionTTL)
	} else {
		mem := session.NewMemoryStore(cfg.SessionTTL)
		go mem.RunSweeper(ctx, time.Minute)
		sessions = mem
		log.Printf("[session] memory store, ttl=%s", cfg.SessionTTL)
	}

	// Assistant
	assistantHTTP := httpclient.DefaultConfig("assistant")
	assistantHTTP.Timeout = cfg.AssistantTimeout
	bot := assistant.NewService(assistant.NewGemini(assistant.GeminiConfig{
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		APIKey:  cfg.GeminiAPIKey,
		RPS:     cfg.AssistantRPS,
	}, httpclient.New(assistantHTTP)), cfg.AssistantTimeout)

	merchant := checkout.Merchant{
		GatewayURL:   cfg.PaymentGatewayURL,
		QRImageURL:   cfg.PaymentQRURL,
		MessagingURL: cfg.MessagingBaseURL,
		ID:           cfg.MerchantID,
	}

	// Templates & app
	engine := handlers.NewEngine(cfg.TemplatesDir)

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New(helmet.Config{
		// Game art and the payment QR come from external hosts.
		CrossOriginEmbedderPolicy: "unsafe-none",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || p == "/healthz" || p == "/metrics"
		},
	}))
	app.Use(handlers.Session())
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		ContextKey:     "csrf",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	log.Printf("[static] /static -> %s", cfg.StaticDir)
	app.Static("/static", cfg.StaticDir)

	// ---------- App handlers ----------
	deps := handlers.NewDeps(games, sessions, bot, merchant, snapshots)

	// Store & search
	app.Get("/", deps.StoreHandler.Home)
	app.Post("/search", limiter.New(limiter.Config{Max: 30, Expiration: time.Minute}), deps.StoreHandler.Search)

	// Cart & payment hand-off
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/pay/:id", deps.CheckoutHandler.PayIndividual)
	app.Post("/checkout", deps.CheckoutHandler.CheckoutAll)
	app.Post("/payment/close", deps.CheckoutHandler.Close)

	// Preferences & navigation
	app.Post("/theme", deps.PrefsHandler.ToggleTheme)
	app.Post("/view/:name", deps.PrefsHandler.SetView)

	// Assistant (throttled per IP on top of the outbound limiter)
	assistantLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|assistant"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.assistant.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("notfound", fiber.Map{"Message": "Too many messages. Please wait a moment."})
		},
	})
	app.Get("/assistant", deps.AssistantHandler.Panel)
	app.Post("/assistant", assistantLimiter, deps.AssistantHandler.Send)

	// API
	api := app.Group("/api/v1")
	api.Get("/catalog", deps.APIHandler.Catalog)
	api.Get("/recommendation", limiter.New(limiter.Config{
		Max:        5,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|recommend"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.recommend.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}), deps.APIHandler.Recommendation)

	// Health, metrics & 404
	app.Get("/healthz", deps.APIHandler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	go func() {
		<-ctx.Done()
		_ = app.ShutdownWithTimeout(5 * time.Second)
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
