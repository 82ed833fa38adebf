package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/redis/go-redis/v9"

	"github.com/lixenwraith/pinball/parameter"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"ada", "ada"},
		{"  ", "Anonymous"},
		{"", "Anonymous"},
		{"<script>", "script"},
		{"a   b\t c", "a b c"},
		{"Ünïcødé_-9", "Ünïcødé_-9"},
		{"abcdefghijklmnop", "abcdefghijkl"},
		{"abcdefghijk lmn", "abcdefghijk"},
		{"!!!", "Anonymous"},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestScoreBounds(t *testing.T) {
	if err := ValidateScore(0); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("Expected zero rejected, got %v", err)
	}
	if err := ValidateScore(parameter.MaxScore); err != nil {
		t.Errorf("Expected max accepted, got %v", err)
	}
	if err := ValidateScore(parameter.MaxScore + 1); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("Expected above max rejected, got %v", err)
	}

	if s, err := ScoreFromFloat(99.9); err != nil || s != 99 {
		t.Errorf("Expected 99, got %d %v", s, err)
	}
	for _, f := range []float64{math.NaN(), math.Inf(1), 0.5, -3} {
		if _, err := ScoreFromFloat(f); !errors.Is(err, ErrInvalidScore) {
			t.Errorf("Expected %v rejected, got %v", f, err)
		}
	}
}

func TestLimits(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 20},
		{"abc", 20},
		{"0", 20},
		{"-5", 1},
		{"7", 7},
		{"500", 50},
	}
	for _, tt := range tests {
		if got := ParseLimit(tt.raw); got != tt.want {
			t.Errorf("ParseLimit(%q): expected %d, got %d", tt.raw, tt.want, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize([]Entry{{"b", 10}, {"", 30}, {"zero", 0}, {"c", 10}, {"a", 20}})
	want := []Entry{{"Anonymous", 30}, {"a", 20}, {"b", 10}, {"c", 10}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestMemoryStoreKeepsBest(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Submit(ctx, Entry{"ada", 500})
	s.Submit(ctx, Entry{"ada", 300})
	s.Submit(ctx, Entry{"bob", 500})
	s.Submit(ctx, Entry{"cy", 900})

	top, _ := s.Top(ctx, 10)
	want := []Entry{{"cy", 900}, {"ada", 500}, {"bob", 500}}
	if fmt.Sprint(top) != fmt.Sprint(want) {
		t.Errorf("Expected %v, got %v", want, top)
	}

	top, _ = s.Top(ctx, 1)
	if len(top) != 1 {
		t.Errorf("Expected limit 1, got %d", len(top))
	}
	if err := s.Submit(ctx, Entry{"x", -1}); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("Expected invalid score, got %v", err)
	}
}

func TestLocalStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "scores.msgpack")
	s := NewLocalStore(path)

	if top, err := s.Top(ctx, 5); err != nil || len(top) != 0 {
		t.Fatalf("Expected empty store, got %v %v", top, err)
	}

	for i := 1; i <= parameter.LocalStoreCap+5; i++ {
		if err := s.Submit(ctx, Entry{Name: "p", Score: int64(i)}); err != nil {
			t.Fatalf("Submit %d failed: %v", i, err)
		}
	}

	top, err := s.Top(ctx, 1000)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	if len(top) != parameter.LocalStoreCap {
		t.Errorf("Expected %d entries, got %d", parameter.LocalStoreCap, len(top))
	}
	if top[0].Score != parameter.LocalStoreCap+5 || top[len(top)-1].Score != 6 {
		t.Errorf("Expected best kept, got first %d last %d", top[0].Score, top[len(top)-1].Score)
	}

	// Reopen reads the same file
	top, _ = NewLocalStore(path).Top(ctx, 3)
	if len(top) != 3 || top[0].Score != parameter.LocalStoreCap+5 {
		t.Errorf("Expected persisted scores, got %v", top)
	}
}

func TestLocalStoreCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "scores.msgpack")
	if err := os.WriteFile(path, []byte("not msgpack"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewLocalStore(path)
	if top, err := s.Top(ctx, 5); err != nil || len(top) != 0 {
		t.Errorf("Expected corrupt file read as empty, got %v %v", top, err)
	}
	if err := s.Submit(ctx, Entry{"ada", 10}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if top, _ := s.Top(ctx, 5); len(top) != 1 {
		t.Errorf("Expected corrupt file replaced, got %v", top)
	}
}

func TestEntriesFromZ(t *testing.T) {
	got := entriesFromZ([]redis.Z{
		{Score: 900.7, Member: "ada"},
		{Score: 0, Member: "ghost"},
		{Score: 50, Member: "b<o>b"},
	})
	want := []Entry{{"ada", 900}, {"bob", 50}}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestRateWindow(t *testing.T) {
	w := parameter.RateLimitWindow
	t0 := time.Unix(1_000_000, 0)
	if windowIndex(t0, w) != windowIndex(t0.Add(9*time.Second), w) {
		t.Error("Expected same window within 10s boundary")
	}
	if windowIndex(t0, w) == windowIndex(t0.Add(10*time.Second), w) {
		t.Error("Expected new window after 10s")
	}
	if got := rateKey(parameter.RateLimitPrefix, "1.2.3.4", 7); got != "ball3d:rl:1.2.3.4:7" {
		t.Errorf("Expected ball3d:rl:1.2.3.4:7, got %s", got)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		t.Fatalf("Open migrations failed: %v", err)
	}
	defer src.Close()

	v, err := src.First()
	if err != nil || v != 1 {
		t.Fatalf("Expected first version 1, got %d %v", v, err)
	}
	up, _, err := src.ReadUp(v)
	if err != nil {
		t.Fatalf("ReadUp failed: %v", err)
	}
	defer up.Close()
	body, err := io.ReadAll(up)
	if err != nil || !strings.Contains(string(body), "CREATE TABLE IF NOT EXISTS scores") {
		t.Errorf("Expected scores table migration, got %q %v", body, err)
	}

	if _, err := src.Next(v); err == nil {
		t.Error("Expected a single migration version")
	}
}

type countLimiter struct {
	allow int
	calls int
	err   error
}

func (l *countLimiter) Allow(_ context.Context, _ string) (bool, error) {
	l.calls++
	return l.calls <= l.allow, l.err
}

func newRouter(store Store, limiter Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	SetupRoutes(r, store, limiter)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitHandler(t *testing.T) {
	store := NewMemoryStore()
	r := newRouter(store, &countLimiter{allow: 3})

	if w := do(r, http.MethodPost, "/api/score", `{"name":" Ada!! ","score":1234.9}`); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Errorf("Expected ok, got %d %s", w.Code, w.Body.String())
	}
	if w := do(r, http.MethodPost, "/api/score", `{"name":"x","score":0}`); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for zero score, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/score", `not json`); w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for bad body, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/score", `{"name":"x","score":5}`); w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429 after limit, got %d", w.Code)
	}

	top, _ := store.Top(context.Background(), 5)
	if len(top) != 1 || top[0] != (Entry{"Ada", 1234}) {
		t.Errorf("Expected sanitized floored entry, got %v", top)
	}
}

func TestSubmitLimiterOutage(t *testing.T) {
	r := newRouter(NewMemoryStore(), &countLimiter{allow: 0, err: errors.New("redis down")})
	if w := do(r, http.MethodPost, "/api/score", `{"name":"x","score":5}`); w.Code != http.StatusOK {
		t.Errorf("Expected submissions to pass when the limiter fails, got %d", w.Code)
	}
}

func TestLeaderboardHandler(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for i := 1; i <= 30; i++ {
		store.Submit(ctx, Entry{Name: fmt.Sprintf("p%02d", i), Score: int64(i * 10)})
	}
	r := newRouter(store, nil)

	w := do(r, http.MethodGet, "/api/leaderboard?limit=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if want := `{"items":[{"name":"p30","score":300},{"name":"p29","score":290}]}`; w.Body.String() != want {
		t.Errorf("Expected %s, got %s", want, w.Body.String())
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Expected no-store, got %q", cc)
	}

	empty := newRouter(NewMemoryStore(), nil)
	if w := do(empty, http.MethodGet, "/api/leaderboard", ""); w.Body.String() != `{"items":[]}` {
		t.Errorf("Expected empty items array, got %s", w.Body.String())
	}

	if w := do(r, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("Expected healthy, got %d", w.Code)
	}
}

func TestClientRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	srv := httptest.NewServer(newRouter(store, &countLimiter{allow: 1}))
	defer srv.Close()

	ctx := context.Background()
	c := NewClient(srv.URL + "/")
	if err := c.Submit(ctx, Entry{"ada", 777}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if err := c.Submit(ctx, Entry{"ada", 778}); !errors.Is(err, ErrRateLimited) {
		t.Errorf("Expected rate limited, got %v", err)
	}

	top, err := c.Top(ctx, 5)
	if err != nil || len(top) != 1 || top[0].Score != 777 {
		t.Errorf("Expected [ada 777], got %v %v", top, err)
	}
}

type failingStore struct{}

func (failingStore) Submit(context.Context, Entry) error         { return errors.New("offline") }
func (failingStore) Top(context.Context, int) ([]Entry, error) { return nil, errors.New("offline") }

func TestFallback(t *testing.T) {
	ctx := context.Background()
	local := NewLocalStore(filepath.Join(t.TempDir(), "scores.msgpack"))
	f := NewFallback(failingStore{}, local)

	if err := f.Submit(ctx, Entry{"ada", 100}); err == nil || !strings.Contains(err.Error(), "saved locally") {
		t.Errorf("Expected remote error reported, got %v", err)
	}
	top, src, err := f.TopWithSource(ctx, 5)
	if err != nil || src != SourceLocal || len(top) != 1 {
		t.Errorf("Expected local fallback with one entry, got %v %s %v", top, src, err)
	}

	remote := NewMemoryStore()
	f = NewFallback(remote, local)
	if err := f.Submit(ctx, Entry{"bob", 200}); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, src, _ := f.TopWithSource(ctx, 5); src != SourceOnline {
		t.Errorf("Expected online source, got %s", src)
	}
	if top, _ := local.Top(ctx, 5); len(top) != 2 {
		t.Errorf("Expected every score kept locally, got %v", top)
	}

	if err := f.Submit(ctx, Entry{"x", 0}); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("Expected invalid score, got %v", err)
	}
}

func TestFallbackAsync(t *testing.T) {
	local := NewLocalStore(filepath.Join(t.TempDir(), "scores.msgpack"))
	f := NewFallback(nil, local)

	type result struct {
		err error
		top []Entry
		src Source
	}
	done := make(chan result, 1)
	f.SubmitAsync(Entry{"ada", 42}, func(err error, top []Entry, src Source) {
		done <- result{err, top, src}
	})

	select {
	case r := <-done:
		if r.err != nil || r.src != SourceLocal || len(r.top) != 1 || r.top[0].Score != 42 {
			t.Errorf("Expected local [ada 42], got %+v", r)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Expected async submit to complete")
	}
}
