package handlers

import (
	"net/http"

	"github.com/GGmuzem/showcase-api/internal/calculator"
	"github.com/GGmuzem/showcase-api/internal/config"
	"github.com/GGmuzem/showcase-api/internal/database"
	"github.com/GGmuzem/showcase-api/internal/logger"
	"github.com/GGmuzem/showcase-api/internal/metrics"
	"github.com/gorilla/mux"
)

// Greeting ответ на GET /
const Greeting = "Showcase Web API (Go)"

// Deps зависимости HTTP-слоя. Metrics необязателен
type Deps struct {
	Calculator calculator.Service
	Employees  database.Database
	Logger     *logger.Logger
	Metrics    *metrics.Metrics
	RateLimit  config.RateLimit
}

// Handler обработчики HTTP API
type Handler struct {
	calc       calculator.Service
	employees  database.Database
	log        *logger.Logger
	metrics    *metrics.Metrics
	operations map[string]operationFunc
}

// NewHandler создаёт обработчики
func NewHandler(deps Deps) *Handler {
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}

	h := &Handler{
		calc:      deps.Calculator,
		employees: deps.Employees,
		log:       log,
		metrics:   deps.Metrics,
	}
	h.operations = h.newOperations()
	return h
}

// NewRouter собирает маршруты и промежуточное ПО
func NewRouter(deps Deps) *mux.Router {
	h := NewHandler(deps)

	router := mux.NewRouter()
	// без этого "/person//30" превращается в редирект, а не в 400
	router.SkipClean(true)

	router.HandleFunc("/", h.HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/person/{name:[^/]*}/{age}", h.PersonHandler).Methods(http.MethodGet)
	router.HandleFunc("/calculate", h.CalculateHandler).Methods(http.MethodPost)
	router.HandleFunc("/employees", h.EmployeesHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	if h.metrics != nil {
		router.Handle("/metrics", h.metrics.Handler()).Methods(http.MethodGet)
	}

	router.Use(h.observeMiddleware, h.recoverMiddleware)
	if limiter := newRateLimiter(deps.RateLimit, h.log); limiter != nil {
		router.Use(limiter.middleware)
	}

	return router
}

// HomeHandler приветствие
func (h *Handler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(Greeting))
}

// HealthHandler проверка статуса сервера
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.log, w, http.StatusOK, map[string]string{"status": "ok"})
}
