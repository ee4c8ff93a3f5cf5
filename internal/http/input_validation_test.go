package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"cempagamez/internal/catalog"
	"cempagamez/internal/domain"
	"cempagamez/internal/repos"
)

// Reject malformed inputs early
func TestValidationBadInputs(t *testing.T) {
	b := newBrowser(t, newStoreApp(t, appOpts{}))

	cases := []struct {
		name   string
		resp   func() *http.Response
		status int
	}{
		{"control chars in game id", func() *http.Response { return b.post("/cart", url.Values{"gameId": {"1\x00DROP"}}) }, http.StatusBadRequest},
		{"free-text id not in catalog", func() *http.Response { return b.post("/cart", url.Values{"gameId": {"1; DROP TABLE"}}) }, http.StatusNotFound},
		{"missing game id", func() *http.Response { return b.post("/cart", nil) }, http.StatusBadRequest},
		{"unknown game", func() *http.Response { return b.post("/cart", url.Values{"gameId": {"999"}}) }, http.StatusNotFound},
		{"unknown game payment", func() *http.Response { return b.post("/pay/999", nil) }, http.StatusNotFound},
		{"control chars in search", func() *http.Response { return b.get("/?q=%00abc") }, http.StatusBadRequest},
		{"over-long search", func() *http.Response { return b.get("/?q=" + strings.Repeat("a", 101)) }, http.StatusBadRequest},
		{"unknown view", func() *http.Response { return b.post("/view/admin", nil) }, http.StatusNotFound},
		{"bad api query", func() *http.Response { return b.get("/api/v1/catalog?q=%07") }, http.StatusBadRequest},
	}
	for _, tc := range cases {
		resp := tc.resp()
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.status, resp.StatusCode)
		}
	}

	entries := captureLogs(t, func() { b.post("/cart", url.Values{"gameId": {"\x1b[2J"}}) })
	if !hasAction(entries, "validation.fail") {
		t.Fatalf("expected validation.fail log")
	}
}

// Forms without the csrf token are refused and logged.
func TestCSRFRequiredOnPosts(t *testing.T) {
	b := newBrowser(t, newStoreApp(t, appOpts{}))

	entries := captureLogs(t, func() {
		req := httptest.NewRequest("POST", "/cart", strings.NewReader("gameId=1"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "sid", Value: b.sid})
		resp, err := b.app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("expected 403 without csrf, got %d", resp.StatusCode)
		}
	})
	if !hasAction(entries, "csrf.fail") {
		t.Fatalf("expected csrf.fail log")
	}
	if strings.Contains(b.page("/"), `data-testid="cart-count"`) {
		t.Fatalf("rejected post must not change the cart")
	}
}

// A forged session cookie is replaced with a fresh id.
func TestSessionCookieIsValidated(t *testing.T) {
	app := newStoreApp(t, appOpts{})
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "not-a-uuid"})

	var resp *http.Response
	entries := captureLogs(t, func() {
		var err error
		resp, err = app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
	})
	sid := extractCookie(resp, "sid")
	if sid == "" || sid == "not-a-uuid" {
		t.Fatalf("expected a fresh session id, got %q", sid)
	}
	if !hasAction(entries, "session.invalid") {
		t.Fatalf("expected session.invalid log")
	}
}

// Templates auto-escape untrusted catalog text
func TestTemplateAutoEscape(t *testing.T) {
	games := domain.Catalog{{
		ID:          "xss-1",
		Title:       "<script>alert(1)</script>",
		Description: "<b>desc</b>",
		Price:       8,
		ImageURL:    "https://example.com/x.jpg",
	}}
	b := newBrowser(t, newStoreApp(t, appOpts{games: loadedCatalog(t, games)}))

	s := b.page("/")
	if strings.Contains(s, "<script>alert(1)</script>") {
		t.Fatalf("found unescaped script tag in output")
	}
	if !strings.Contains(s, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Fatalf("escaped script not found; output=%s", s)
	}
}

func TestAPI_CatalogPage(t *testing.T) {
	b := newBrowser(t, newStoreApp(t, appOpts{games: loadedCatalog(t, numberedGames(23))}))

	resp := b.get("/api/v1/catalog?q=game&page=3")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var out struct {
		Loaded     bool          `json:"loaded"`
		Page       int           `json:"page"`
		TotalPages int           `json:"total_pages"`
		Matches    int           `json:"matches"`
		Games      []domain.Game `json:"games"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if !out.Loaded || out.Page != 3 || out.TotalPages != 3 || out.Matches != 23 || len(out.Games) != 3 {
		t.Fatalf("unexpected page: %+v", out)
	}

	resp = b.get("/api/v1/catalog?page=4")
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if len(out.Games) != 0 {
		t.Fatalf("page past the end should be empty, got %d", len(out.Games))
	}
}

func TestHealthz(t *testing.T) {
	b := newBrowser(t, newStoreApp(t, appOpts{}))
	body := bodyOf(b.get("/healthz"))
	var out map[string]any
	if err := json.NewDecoder(bytes.NewReader([]byte(body))).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["ok"] != true || out["catalog_loaded"] != true || out["games"] != float64(9) {
		t.Fatalf("unexpected health payload: %s", body)
	}
	if _, ok := out["last_remote"]; ok {
		t.Fatalf("no snapshot store, no last_remote: %s", body)
	}
}

func TestHealthz_ReportsLastRemoteSnapshot(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	repo := repos.NewGameRepo(db)
	b := newBrowser(t, newStoreApp(t, appOpts{snapshots: repo}))

	body := bodyOf(b.get("/healthz"))
	if strings.Contains(body, "last_remote") {
		t.Fatalf("nothing recorded yet: %s", body)
	}

	if err := repo.Replace(catalog.SourceRemote, catalog.Defaults()[:2]); err != nil {
		t.Fatal(err)
	}
	var out struct {
		LastRemote struct {
			Source  string `json:"source"`
			TakenAt string `json:"taken_at"`
		} `json:"last_remote"`
	}
	if err := json.Unmarshal([]byte(bodyOf(b.get("/healthz"))), &out); err != nil {
		t.Fatal(err)
	}
	if out.LastRemote.Source != "remote" || out.LastRemote.TakenAt == "" {
		t.Fatalf("last_remote not reported: %+v", out.LastRemote)
	}
}
