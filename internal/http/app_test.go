package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"cempagamez/internal/assistant"
	"cempagamez/internal/catalog"
	"cempagamez/internal/checkout"
	"cempagamez/internal/domain"
	"cempagamez/internal/http/handlers"
	applog "cempagamez/internal/log"
	"cempagamez/internal/session"
)

var testMerchant = checkout.Merchant{
	GatewayURL:   "https://payment.tngdigital.com.my/sc/bDLnzfGnwF",
	QRImageURL:   "https://raw.githubusercontent.com/ZackTheGrumpy/CempaGames/refs/heads/main/QR_Payment_Square.png",
	MessagingURL: "https://wa.me",
	ID:           "601162829775",
}

type fixedSource struct{ games domain.Catalog }

func (fixedSource) Name() string { return "fixed" }

func (f fixedSource) Fetch(context.Context) (domain.Catalog, error) { return f.games, nil }

// loadedCatalog is a catalog service that already finished its first load.
func loadedCatalog(t *testing.T, games domain.Catalog) *catalog.Service {
	t.Helper()
	svc := catalog.NewService(catalog.Chain{fixedSource{games}}, nil)
	svc.Load(context.Background())
	return svc
}

type replyGen struct{ text string }

func (r replyGen) Generate(context.Context, string, []assistant.Content) (string, error) {
	return r.text, nil
}

type appOpts struct {
	games     *catalog.Service
	bot       *assistant.Service
	snapshots handlers.Snapshots
	extra     func(app *fiber.App, deps *handlers.Deps)
}

// newStoreApp wires the storefront routes the way main does, minus the global limiter.
func newStoreApp(t *testing.T, o appOpts) *fiber.App {
	t.Helper()
	if o.games == nil {
		o.games = loadedCatalog(t, catalog.Defaults())
	}
	if o.bot == nil {
		o.bot = assistant.NewService(replyGen{text: "I recommend Neon Racer X: it is fast."}, time.Second)
	}

	app := fiber.New(fiber.Config{
		Views:        handlers.NewEngine("../../web/templates"),
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB
	app.Use(requestid.New())
	app.Use(handlers.Session())
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		ContextKey:     "csrf",
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

	deps := handlers.NewDeps(o.games, session.NewMemoryStore(time.Hour), o.bot, testMerchant, o.snapshots)
	if o.extra != nil {
		o.extra(app, deps)
	}
	app.Get("/", deps.StoreHandler.Home)
	app.Post("/search", deps.StoreHandler.Search)
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/pay/:id", deps.CheckoutHandler.PayIndividual)
	app.Post("/checkout", deps.CheckoutHandler.CheckoutAll)
	app.Post("/payment/close", deps.CheckoutHandler.Close)
	app.Post("/theme", deps.PrefsHandler.ToggleTheme)
	app.Post("/view/:name", deps.PrefsHandler.SetView)
	app.Get("/assistant", deps.AssistantHandler.Panel)
	app.Post("/assistant", deps.AssistantHandler.Send)
	api := app.Group("/api/v1")
	api.Get("/catalog", deps.APIHandler.Catalog)
	api.Get("/recommendation", deps.APIHandler.Recommendation)
	app.Get("/healthz", deps.APIHandler.Health)
	return app
}

// browser keeps the session and csrf cookies between requests.
type browser struct {
	t    *testing.T
	app  *fiber.App
	sid  string
	csrf string
}

func newBrowser(t *testing.T, app *fiber.App) *browser {
	t.Helper()
	b := &browser{t: t, app: app}
	resp := b.get("/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("home expected 200, got %d", resp.StatusCode)
	}
	if b.sid == "" || b.csrf == "" {
		t.Fatalf("session or csrf cookie missing (sid=%q csrf=%q)", b.sid, b.csrf)
	}
	return b
}

func (b *browser) do(req *http.Request) *http.Response {
	b.t.Helper()
	if b.sid != "" {
		req.AddCookie(&http.Cookie{Name: handlers.SessionCookie, Value: b.sid})
	}
	if b.csrf != "" {
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: b.csrf})
	}
	resp, err := b.app.Test(req, 5000)
	if err != nil {
		b.t.Fatal(err)
	}
	if v := extractCookie(resp, handlers.SessionCookie); v != "" {
		b.sid = v
	}
	if v := extractCookie(resp, "csrf_"); v != "" {
		b.csrf = v
	}
	return resp
}

func (b *browser) get(path string) *http.Response {
	return b.do(httptest.NewRequest("GET", path, nil))
}

func (b *browser) post(path string, form url.Values) *http.Response {
	if form == nil {
		form = url.Values{}
	}
	form.Set("csrf", b.csrf)
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// page fetches path and returns the body, failing on anything but 200.
func (b *browser) page(path string) string {
	b.t.Helper()
	resp := b.get(path)
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		b.t.Fatalf("GET %s expected 200, got %d body=%s", path, resp.StatusCode, body)
	}
	return string(body)
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func bodyOf(resp *http.Response) string {
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Fields map[string]any `json:"fields"`
}

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var e logEntry
		if err := json.Unmarshal([]byte(line), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

func hasAction(entries []logEntry, action string) bool {
	for _, e := range entries {
		if e.Action == action {
			return true
		}
	}
	return false
}
