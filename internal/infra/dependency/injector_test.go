package dependency

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/automation-insights/backend/config"
	"github.com/automation-insights/backend/internal/domain/entity"
	"github.com/automation-insights/backend/internal/integration/adapters"
)

type stubAnalytics struct{}

func (stubAnalytics) Stats(context.Context, entity.StatsParams) (*entity.DashboardStats, error) {
	return &entity.DashboardStats{Overall: &entity.DashboardStatsOverall{TotalTickets: 120}}, nil
}

func (stubAnalytics) Breakdown(context.Context, entity.BreakdownParams) (*entity.BreakdownPage, error) {
	return &entity.BreakdownPage{
		Count:    1,
		NumPages: 1,
		Results: []entity.BreakdownItem{
			{ParentCategory: "Billing", ParentCategoryID: "p1", Level2Category: "Refunds", Level2CategoryID: "l2", TicketVolume: 12},
		},
	}, nil
}

func (stubAnalytics) Chart(context.Context, entity.ChartParams) (*entity.ChartData, error) {
	return &entity.ChartData{}, nil
}

func (stubAnalytics) Taxonomies(context.Context) ([]entity.Taxonomy, error) {
	return nil, nil
}

type apiHarness struct {
	t      *testing.T
	engine *gin.Engine
	token  string
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	t.Setenv("ENV", "test")
	t.Setenv("STORAGE_DRIVER", config.StorageMemory)
	t.Setenv("DASHBOARD_TIMEZONE", "UTC")

	cfg := config.Load()
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	storage, err := NewStorage(context.Background(), cfg, loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })

	injector := NewInjector(cfg, storage, loc, Options{
		Clock:     func() time.Time { return time.Date(2025, time.January, 15, 10, 30, 0, 0, time.UTC) },
		Analytics: stubAnalytics{},
	})

	token, err := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry).
		IssueAccessToken(context.Background(), uuid.New(), "owner@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return &apiHarness{t: t, engine: injector.Router.Setup("test"), token: token}
}

func (h *apiHarness) do(method, path string, body any) (int, map[string]any) {
	h.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)

	var decoded map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w.Code, decoded
}

func dataField(t *testing.T, body map[string]any, path ...string) any {
	t.Helper()

	var current any = body["data"]
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			t.Fatalf("expected object at %s, got %v", key, current)
		}
		current = m[key]
	}
	return current
}

func TestAPI_Health(t *testing.T) {
	h := newAPIHarness(t)

	status, body := h.do(http.MethodGet, "/health", nil)
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if body["storage"] != "connected" || body["driver"] != config.StorageMemory {
		t.Errorf("unexpected health body %v", body)
	}
}

func TestAPI_RequiresToken(t *testing.T) {
	h := newAPIHarness(t)
	h.token = ""

	status, body := h.do(http.MethodGet, "/api/v1/dashboard/filters", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, status)
	}
	if body["code"] != "AUTH-030003" {
		t.Errorf("expected AUTH-030003, got %v", body["code"])
	}
}

func TestAPI_Filters(t *testing.T) {
	h := newAPIHarness(t)

	t.Run("defaults", func(t *testing.T) {
		status, body := h.do(http.MethodGet, "/api/v1/dashboard/filters", nil)
		if status != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, status)
		}
		if got := dataField(t, body, "filters", "datePreset"); got != "thisMonth" {
			t.Errorf("expected thisMonth, got %v", got)
		}
		if got := dataField(t, body, "filters", "startDate"); got != "2024-12-15" {
			t.Errorf("expected 2024-12-15, got %v", got)
		}
	})

	t.Run("period change resets page", func(t *testing.T) {
		status, body := h.do(http.MethodPost, "/api/v1/dashboard/filters/events", map[string]any{"type": "setPage", "page": 3})
		if status != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, status)
		}
		if got := dataField(t, body, "filters", "currentPage"); got != float64(3) {
			t.Errorf("expected page 3, got %v", got)
		}

		_, body = h.do(http.MethodPost, "/api/v1/dashboard/filters/events", map[string]any{"type": "setPeriod", "period": "weekly"})
		if got := dataField(t, body, "filters", "currentPage"); got != float64(1) {
			t.Errorf("expected page 1, got %v", got)
		}
		if got := dataField(t, body, "filters", "selectedPeriod"); got != "weekly" {
			t.Errorf("expected weekly, got %v", got)
		}
	})

	t.Run("commit is not a public event", func(t *testing.T) {
		status, body := h.do(http.MethodPost, "/api/v1/dashboard/filters/events", map[string]any{"type": "commitDateRange"})
		if status != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, status)
		}
		if body["code"] != "FLT-010008" {
			t.Errorf("expected FLT-010008, got %v", body["code"])
		}
	})

	t.Run("reset restores defaults", func(t *testing.T) {
		status, body := h.do(http.MethodDelete, "/api/v1/dashboard/filters", nil)
		if status != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, status)
		}
		if got := dataField(t, body, "selectedPeriod"); got != "monthly" {
			t.Errorf("expected monthly, got %v", got)
		}
	})
}

func TestAPI_DatePicker(t *testing.T) {
	h := newAPIHarness(t)

	status, body := h.do(http.MethodPost, "/api/v1/dashboard/date-picker/open", nil)
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if got := dataField(t, body, "state"); got != "open" {
		t.Errorf("expected open, got %v", got)
	}

	status, _ = h.do(http.MethodPost, "/api/v1/dashboard/date-picker/preset", map[string]any{"preset": "today"})
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}

	// Staged edits do not reach the committed filters until close.
	_, body = h.do(http.MethodGet, "/api/v1/dashboard/filters", nil)
	if got := dataField(t, body, "filters", "datePreset"); got != "thisMonth" {
		t.Errorf("expected committed thisMonth while open, got %v", got)
	}

	status, body = h.do(http.MethodPost, "/api/v1/dashboard/date-picker/close", nil)
	if status != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, status)
	}
	if got := dataField(t, body, "filters", "filters", "startDate"); got != "2025-01-15" {
		t.Errorf("expected 2025-01-15, got %v", got)
	}
	if got := dataField(t, body, "preset"); got != "today" {
		t.Errorf("expected today, got %v", got)
	}

	status, body = h.do(http.MethodPost, "/api/v1/dashboard/date-picker/close", nil)
	if status != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, status)
	}
	if body["code"] != "FLT-020001" {
		t.Errorf("expected FLT-020001, got %v", body["code"])
	}
}

func TestAPI_Dashboard(t *testing.T) {
	h := newAPIHarness(t)

	t.Run("overview", func(t *testing.T) {
		status, body := h.do(http.MethodGet, "/api/v1/dashboard/overview", nil)
		if status != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, status)
		}
		table, ok := dataField(t, body, "table").([]any)
		if !ok || len(table) != 1 {
			t.Fatalf("expected one table row, got %v", dataField(t, body, "table"))
		}
		if _, ok := body["data"].(map[string]any)["notification"]; ok {
			t.Error("expected no notification")
		}
	})

	t.Run("detail url requires id", func(t *testing.T) {
		status, body := h.do(http.MethodGet, "/api/v1/dashboard/detail-url", nil)
		if status != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, status)
		}
		if body["code"] != "DSH-010001" {
			t.Errorf("expected DSH-010001, got %v", body["code"])
		}
	})

	t.Run("detail url", func(t *testing.T) {
		status, body := h.do(http.MethodGet, "/api/v1/dashboard/detail-url?id=l2&status=failed", nil)
		if status != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, status)
		}
		expected := "/home/l2?category_type=level2&status=failed&startDate=2024-12-15&endDate=2025-01-15"
		if got := dataField(t, body, "url"); got != expected {
			t.Errorf("expected %s, got %v", expected, got)
		}
	})
}
