package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GGmuzem/showcase-api/internal/calculator"
	"github.com/GGmuzem/showcase-api/internal/config"
	"github.com/GGmuzem/showcase-api/internal/database"
	"github.com/GGmuzem/showcase-api/internal/logger"
	"github.com/GGmuzem/showcase-api/internal/metrics"
	"github.com/GGmuzem/showcase-api/pkg/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(t *testing.T, mutate func(*Deps)) http.Handler {
	t.Helper()

	db := database.NewMemoryDB()
	require.NoError(t, database.Seed(context.Background(), db))

	deps := Deps{
		Calculator: calculator.New(calculator.WithDelay(0)),
		Employees:  db,
	}
	if mutate != nil {
		mutate(&deps)
	}
	return NewRouter(deps)
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func TestHome(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, Greeting, rec.Body.String())
}

func TestPerson(t *testing.T) {
	router := newTestRouter(t, nil)

	t.Run("Valid", func(t *testing.T) {
		rec := do(t, router, http.MethodGet, "/person/Alice/30", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var person models.Person
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&person))
		assert.Equal(t, models.Person{Name: "Alice", Age: 30}, person)
	})

	tests := []struct {
		name    string
		path    string
		message string
	}{
		{"EmptyName", "/person//30", "name must not be empty"},
		{"BlankName", "/person/%20%20/30", "name must not be empty"},
		{"AgeTooHigh", "/person/Alice/200", "age must be between 0 and 150"},
		{"NegativeAge", "/person/Alice/-1", "age must be between 0 and 150"},
		{"AgeNotInteger", "/person/Alice/old", "age must be an integer"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := do(t, router, http.MethodGet, test.path, "")
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, test.message, decodeError(t, rec))
		})
	}
}

func TestCalculate(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name      string
		body      string
		result    float64
		operation string
	}{
		{"Add", `{"operation":"add","a":10,"b":20}`, 30, "add"},
		{"AddTruncates", `{"operation":"add","a":1.9,"b":-1.9}`, 0, "add"},
		{"SubtractUpperCase", `{"operation":"SUBTRACT","a":5,"b":8}`, -3, "SUBTRACT"},
		{"Divide", `{"operation":"divide","a":1,"b":4}`, 0.25, "divide"},
		{"Sqrt", `{"operation":"sqrt","a":16,"b":0}`, 4, "sqrt"},
		{"SqrtZero", `{"operation":"Sqrt","a":0,"b":0}`, 0, "Sqrt"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/calculate", test.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var result models.CalculationResult
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
			assert.InDelta(t, test.result, result.Result, 1e-12)
			assert.Equal(t, test.operation, result.Operation)
		})
	}
}

func TestCalculateErrors(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{"DivideByZero", `{"operation":"divide","a":5,"b":0}`, "divisor"},
		{"NegativeSqrt", `{"operation":"sqrt","a":-1,"b":0}`, "negative"},
		{"UnsupportedOperation", `{"operation":"pow","a":2,"b":3}`, "unsupported operation: pow"},
		{"MissingOperation", `{"a":2,"b":3}`, "operation is required"},
		{"MissingA", `{"operation":"divide","b":3}`, "a is required"},
		{"MissingB", `{"operation":"add","a":5}`, "b is required"},
		{"EmptyBody", `{}`, "operation is required"},
		{"OperandOutOfRange", `{"operation":"add","a":1000001,"b":0}`, "a must be between"},
		{"MalformedJSON", `{"operation":`, "invalid JSON body"},
		{"WrongType", `{"operation":"add","a":"ten","b":0}`, "invalid JSON body"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPost, "/calculate", test.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeError(t, rec), test.contains)
		})
	}
}

// overflowingCalculator всегда сообщает о переполнении при сложении
type overflowingCalculator struct {
	calculator.Service
}

func (overflowingCalculator) Add(a, b int32) (int32, error) {
	return 0, calculator.NewOverflowError("addition overflow: %d + %d", a, b)
}

func TestCalculateOverflowIsBadRequest(t *testing.T) {
	router := newTestRouter(t, func(d *Deps) {
		d.Calculator = overflowingCalculator{Service: calculator.New(calculator.WithDelay(0))}
	})

	rec := do(t, router, http.MethodPost, "/calculate", `{"operation":"add","a":1,"b":2}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "addition overflow: 1 + 2", decodeError(t, rec))
}

// brokenCalculator возвращает ошибку вне таксономии или паникует
type brokenCalculator struct {
	calculator.Service
}

func (brokenCalculator) Divide(a, b decimal.Decimal) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("decimal backend unavailable")
}

func (brokenCalculator) Subtract(a, b int32) (int32, error) {
	panic("boom")
}

func TestCalculateUnexpectedFailures(t *testing.T) {
	router := newTestRouter(t, func(d *Deps) {
		d.Calculator = brokenCalculator{Service: calculator.New(calculator.WithDelay(0))}
	})

	rec := do(t, router, http.MethodPost, "/calculate", `{"operation":"divide","a":1,"b":2}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeError(t, rec))

	rec = do(t, router, http.MethodPost, "/calculate", `{"operation":"subtract","a":1,"b":2}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCalculateMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/calculate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestEmployees(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/employees", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var employees []map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&employees))
	require.Len(t, employees, 3)

	ids := map[float64]bool{}
	for _, e := range employees {
		ids[e["id"].(float64)] = true
		assert.NotEmpty(t, e["name"])
		assert.NotEmpty(t, e["email"])
		assert.Contains(t, e, "createdAt")
	}
	assert.Equal(t, map[float64]bool{1: true, 2: true, 3: true}, ids)
	assert.Nil(t, employees[2]["department"])
}

type failingDB struct {
	database.Database
}

func (failingDB) ListEmployees(context.Context) ([]models.Employee, error) {
	return nil, errors.New("disk on fire")
}

func TestEmployeesStorageFailure(t *testing.T) {
	router := newTestRouter(t, func(d *Deps) {
		d.Employees = failingDB{}
	})

	rec := do(t, router, http.MethodGet, "/employees", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New()
	router := newTestRouter(t, func(d *Deps) {
		d.Metrics = m
		d.Calculator = calculator.New(calculator.WithDelay(0), calculator.WithObserver(m.ObserveCalculation))
	})

	do(t, router, http.MethodPost, "/calculate", `{"operation":"add","a":1,"b":2}`)
	do(t, router, http.MethodPost, "/calculate", `{"operation":"divide","a":1,"b":0}`)

	count, err := testutil.GatherAndCount(m.Registry(), "showcase_calculations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	rec := do(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `showcase_http_requests_total{code="400",method="POST",route="/calculate"} 1`)
}

func TestRateLimit(t *testing.T) {
	router := newTestRouter(t, func(d *Deps) {
		d.RateLimit = config.RateLimit{Enabled: true, RPS: 0.001, Burst: 2}
	})

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/health", "").Code)

	rec := do(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRateLimiterEvictsIdleClients(t *testing.T) {
	l := newRateLimiter(config.RateLimit{Enabled: true, RPS: 1, Burst: 1}, logger.NewNop())
	require.NotNil(t, l)
	assert.Nil(t, newRateLimiter(config.RateLimit{}, logger.NewNop()))

	now := time.Now()
	l.allow("stale", now)
	for i := 0; i < 511; i++ {
		l.allow("fresh", now.Add(l.idleTTL+1))
	}
	_, stale := l.byKey["stale"]
	assert.False(t, stale)
}

// brokenWriter принимает заголовки, но отказывает в записи тела
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset by peer")
}

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	w := brokenWriter{httptest.NewRecorder()}
	writeJSON(log, w, http.StatusOK, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, w.Code)
	entries := logs.FilterMessage("write response failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "connection reset by peer", entries[0].ContextMap()["error"])

	router := newTestRouter(t, func(d *Deps) { d.Logger = log })
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(brokenWriter{httptest.NewRecorder()}, req)
	assert.Equal(t, 2, logs.FilterMessage("write response failed").Len())
}
