//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/automation-insights/backend/config"
	"github.com/automation-insights/backend/internal/infra/dependency"
	"github.com/automation-insights/backend/internal/integration/adapters"
	"github.com/automation-insights/backend/internal/integration/persistence"
	"github.com/automation-insights/backend/internal/integration/persistence/model"
	"github.com/automation-insights/backend/test/integration/mock"
)

const (
	testJWTSecret    = "test-jwt-secret-key-for-testing-purposes"
	defaultTestClock = "2025-01-15T10:30:00Z"
)

var analyticsMock *mock.ApiMock

type testContext struct {
	cfg       *config.Config
	server    *httptest.Server
	storage   *dependency.Storage
	driver    string
	client    *http.Client
	headers   map[string]string
	response  *response
	db        *mock.Db
	timeMock  *mock.Time
	ownerID   uuid.UUID
	token     string
	analytics *mock.ApiMock
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite starts the upstream analytics mock shared by every scenario.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		_ = os.Setenv("ENV", "test")

		analyticsMock = mock.NewApiServer()
		analyticsMock.Start()
	})

	ctx.AfterSuite(func() {
		analyticsMock.Close()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client:   &http.Client{Timeout: 10 * time.Second},
		timeMock: mock.NewTime(),
		db: mock.NewDb(map[string]any{
			"dashboard_preferences": &model.PreferenceModel{},
		}),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if test.server != nil {
			test.server.Close()
		}
		return ctx, nil
	})

	// Setup steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the preference storage is "(redis|sql)"$`, test.thePreferenceStorageIs)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)
	ctx.Given(`^I am authenticated as a new owner$`, test.iAmAuthenticatedAsANewOwner)
	ctx.Given(`^the owner has the stored "([^"]*)" preference:$`, test.theOwnerHasTheStoredPreference)
	ctx.Given(`^the analytics endpoint "([^"]*)" responds with status (\d+) and body:$`, test.theAnalyticsEndpointRespondsWith)
	ctx.Given(`^the staged date edit expires$`, test.theStagedDateEditExpires)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, test.theResponseFieldShouldNotExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)

	// Upstream assertion steps
	ctx.Then(`^the analytics endpoint "([^"]*)" should have received the query "([^"]*)" with "([^"]*)"$`, test.theAnalyticsEndpointShouldHaveReceivedTheQuery)
	ctx.Then(`^the analytics endpoint "([^"]*)" should not have received the query "([^"]*)"$`, test.theAnalyticsEndpointShouldNotHaveReceivedTheQuery)
	ctx.Then(`^the analytics endpoint "([^"]*)" should have received the header "([^"]*)" with "([^"]*)"$`, test.theAnalyticsEndpointShouldHaveReceivedTheHeader)

	// Storage assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the stored "([^"]*)" preference field "([^"]*)" should be "([^"]*)"$`, test.theStoredPreferenceFieldShouldBe)
}

func (t *testContext) before() error {
	t.cfg = config.Load()
	t.cfg.JWT.Secret = testJWTSecret
	t.cfg.Analytics.BaseURL = analyticsMock.GetUrl()
	t.cfg.Analytics.APIToken = "upstream-token"
	t.cfg.Dashboard.Timezone = "UTC"

	t.server = nil
	t.storage = nil
	t.driver = config.StorageRedis
	t.headers = make(map[string]string)
	t.response = nil
	t.ownerID = uuid.Nil
	t.token = ""
	t.analytics = analyticsMock

	t.analytics.Reset()
	t.setDefaultUpstreamResponses()

	clock, _ := time.Parse(time.RFC3339, defaultTestClock)
	t.timeMock.SetCurrentTime(clock)

	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.db.ClearDB()
}

func (t *testContext) setDefaultUpstreamResponses() {
	t.analytics.SetResponse(http.MethodGet, "/dashboard/stats/", http.StatusOK, map[string]any{
		"overall": map[string]any{
			"total_tickets":           1200,
			"automated_tickets_count": 300,
			"automated_percentage":    25,
			"automation_runs":         450,
			"success_rate":            92.5,
			"failure_rate":            7.5,
		},
	})
	t.analytics.SetResponse(http.MethodGet, "/dashboard/level2-breakdown/", http.StatusOK, map[string]any{
		"count":     1,
		"num_pages": 1,
		"results": []map[string]any{{
			"parent_category":          "Billing",
			"parent_category_id":       "p1",
			"level_2_category":         "Refunds",
			"level_2_category_id":      "l2",
			"ticket_volume":            80,
			"total_tickets_percentage": 6.7,
		}},
	})
	t.analytics.SetResponse(http.MethodGet, "/dashboard/chart-data/", http.StatusOK, map[string]any{
		"trend": []map[string]any{{"date": "2025-01-01", "total": 40, "automated": 10, "percentage": 25}},
	})
	t.analytics.SetResponse(http.MethodGet, "/taxonomies/", http.StatusOK, []map[string]any{
		{"id": "p1", "name": "Billing", "level": 1},
		{"id": "l2", "name": "Refunds", "level": 2, "parent_id": "p1"},
	})
}

// startServer wires the application against the selected storage driver.
// It runs on the first request so setup steps can still change the driver.
func (t *testContext) startServer() error {
	if t.server != nil {
		return nil
	}

	ttl := t.cfg.Dashboard.DatePickerTTL
	switch t.driver {
	case config.StorageRedis:
		t.storage = dependency.NewRedisStorage(mock.NewRedis(), ttl, time.UTC)
	default:
		t.storage = &dependency.Storage{
			Preferences: persistence.NewSQLPreferenceStore(t.db.DbConn),
			StagedEdits: persistence.NewMemoryStagedEditStore(ttl, t.timeMock.Now),
		}
	}

	injector := dependency.NewInjector(t.cfg, t.storage, time.UTC, dependency.Options{
		Clock: t.timeMock.Now,
	})
	t.server = httptest.NewServer(injector.Router.Setup("test"))
	return nil
}

func (t *testContext) theAPIServerIsRunning() error {
	return nil
}

func (t *testContext) thePreferenceStorageIs(driver string) error {
	if t.server != nil {
		return fmt.Errorf("storage must be chosen before the first request")
	}
	if driver == "sql" {
		driver = config.StorageSQLite
	}
	t.driver = driver
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	current, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return err
	}
	t.timeMock.SetCurrentTime(current)
	return nil
}

func (t *testContext) iAmAuthenticatedAsANewOwner() error {
	t.ownerID = uuid.New()

	token, err := adapters.NewTokenService(testJWTSecret, time.Hour).
		IssueAccessToken(context.Background(), t.ownerID, "owner@example.com")
	if err != nil {
		return err
	}
	t.token = token
	return nil
}

func (t *testContext) theOwnerHasTheStoredPreference(key string, content *godog.DocString) error {
	if err := t.startServer(); err != nil {
		return err
	}
	return t.storage.Preferences.Set(context.Background(), t.ownerID, key, content.Content)
}

func (t *testContext) theAnalyticsEndpointRespondsWith(path string, status int, content *godog.DocString) error {
	var body any
	if err := jsonUnmarshal(content.Content, &body); err != nil {
		return err
	}
	t.analytics.SetResponse(http.MethodGet, path, status, body)
	return nil
}

func (t *testContext) theStagedDateEditExpires() error {
	ttl := t.cfg.Dashboard.DatePickerTTL + time.Second
	mock.FastForwardRedis(ttl)
	t.timeMock.SetCurrentTime(t.timeMock.Now().Add(ttl))
	return nil
}
