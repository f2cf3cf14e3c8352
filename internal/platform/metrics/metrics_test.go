package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestMiddleware_CountsByRoute(t *testing.T) {
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.POST("/solve", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	for range 2 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/solve", nil))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/solve", http.MethodPost, "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", http.MethodGet, "404")))
}

func TestObserveSolve(t *testing.T) {
	m := New()

	m.ObserveSolve("solved", 1500*time.Millisecond)
	m.ObserveSolve("no_formula_found", 200*time.Millisecond)
	m.ObserveSolve("solved", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.solves.WithLabelValues("solved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.solves.WithLabelValues("no_formula_found")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.solveDuration))
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.ObserveSolve("solved", time.Second)

	r := gin.New()
	r.GET("/metrics", m.Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `math_solver_solve_outcomes_total{kind="solved"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
