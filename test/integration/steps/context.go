//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/finance-ledger/api/config"
	"github.com/finance-ledger/api/internal/infra/dependency"
	"github.com/finance-ledger/api/internal/integration/persistence/model"
	"github.com/finance-ledger/api/test/integration/mock"
)

var (
	serverInit sync.Once
	server     *httptest.Server
	injector   *dependency.Injector
	testDB     *mock.Db
	testRedis  *mock.Redis
)

type testContext struct {
	headers  map[string]string
	client   *http.Client
	response *response

	lastCategoryID    string
	lastTransactionID string
}

type response struct {
	status  int
	headers http.Header
	raw     []byte
	body    any
}

// InitializeTestSuite starts the API once for all scenarios.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
		startServer()
	})

	ctx.AfterSuite(func() {
		if server != nil {
			server.Close()
		}
		if testRedis != nil {
			testRedis.Close()
		}
	})
}

func startServer() {
	serverInit.Do(func() {
		_ = os.Setenv("ENV", config.EnvTest)

		cfg, err := config.Load("")
		if err != nil {
			panic(err)
		}

		testDB = mock.NewDb(model.All())
		testRedis = mock.NewRedis()

		injector = dependency.NewInjector(cfg, testDB.DbConn, testRedis.Client)
		server = httptest.NewServer(injector.Handler())
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		startServer()
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the default categories are seeded$`, test.theDefaultCategoriesAreSeeded)

	// Ledger setup steps
	ctx.Given(`^a category exists with name "([^"]*)" and type "([^"]*)"$`, test.aCategoryExistsWithNameAndType)
	ctx.Given(`^the category "([^"]*)" is selected$`, test.theCategoryIsSelected)
	ctx.Given(`^a transaction exists with amount "([^"]*)" in "([^"]*)" on "([^"]*)"$`, test.aTransactionExistsWithAmountInOn)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response should have (\d+) items$`, test.theResponseShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should contain "([^"]*)"$`, test.theResponseHeaderShouldContain)
	ctx.Then(`^the response body should contain "([^"]*)"$`, test.theResponseBodyShouldContain)
	ctx.Then(`^the response body should start with "([^"]*)"$`, test.theResponseBodyShouldStartWith)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.lastCategoryID = ""
	t.lastTransactionID = ""

	if err := testRedis.Clear(context.Background()); err != nil {
		return err
	}
	return testDB.ClearDB()
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}
