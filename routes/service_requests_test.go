package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home-service-server/models"
	"home-service-server/repository"
	"home-service-server/services"
)

type routeFixture struct {
	router    *gin.Engine
	lifecycle *services.Lifecycle
	user      *models.User
}

// impersonate swaps the authenticated user for subsequent calls
func (f *routeFixture) impersonate(user *models.User) {
	*f.user = *user
}

func newRouteFixture(t *testing.T) *routeFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := repository.NewMemoryUserStore()
	technicians := repository.NewMemoryTechnicianStore()
	requests := repository.NewMemoryServiceRequestStore()

	customer := &models.User{
		ID: "user-1", FullName: "Sarah Connor", Email: "sarah@example.com",
		Role: models.RoleCustomer, IsActive: true,
	}
	require.NoError(t, users.Upsert(customer))
	require.NoError(t, users.Upsert(&models.User{
		ID: "tech-1", FullName: "John Wick", Email: "john@example.com",
		Role: models.RoleTechnician, IsActive: true,
	}))
	require.NoError(t, technicians.Upsert(&models.TechnicianProfile{
		ID: "tech-1", FullName: "John Wick", Specialty: "Plumbing",
		Status: models.TechnicianAvailable,
	}))

	identity := services.NewIdentity(users, technicians)
	lifecycle := services.NewLifecycle(requests, technicians, identity, services.NewFlatRateEstimator(), nil)

	current := &models.User{}
	*current = *customer

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		user := *current
		c.Set("user", &user)
		c.Set("user_id", user.ID)
		c.Next()
	})
	NewServiceRequestHandler(lifecycle).Register(api)
	NewTechnicianHandler(lifecycle).Register(api)

	return &routeFixture{router: router, lifecycle: lifecycle, user: current}
}

func (f *routeFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestServiceRequestRoutes(t *testing.T) {
	t.Run("create returns 201 with the pending request", func(t *testing.T) {
		f := newRouteFixture(t)

		w := f.do(t, http.MethodPost, "/api/v1/service-requests", gin.H{
			"title":        "Leaky faucet",
			"category":     "Plumbing",
			"address":      "123 Main St",
			"contactPhone": "555-0101",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Request models.ServiceRequest `json:"request"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, models.StatusPending, resp.Request.Status)
		assert.Equal(t, "user-1", resp.Request.UserID)
	})

	t.Run("missing required fields return 400", func(t *testing.T) {
		f := newRouteFixture(t)
		w := f.do(t, http.MethodPost, "/api/v1/service-requests", gin.H{
			"title": "No category",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		f := newRouteFixture(t)
		w := f.do(t, http.MethodGet, "/api/v1/service-requests/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("paying without an invoice returns 409", func(t *testing.T) {
		f := newRouteFixture(t)
		req, err := f.lifecycle.Create("user-1", models.ServiceRequestCreate{
			Title: "Leaky faucet", Category: "Plumbing",
			Address: "123 Main St", ContactPhone: "555-0101",
		})
		require.NoError(t, err)

		w := f.do(t, http.MethodPost, "/api/v1/service-requests/"+req.ID+"/pay", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("strangers get 403 on someone else's request", func(t *testing.T) {
		f := newRouteFixture(t)
		req, err := f.lifecycle.Create("user-1", models.ServiceRequestCreate{
			Title: "Leaky faucet", Category: "Plumbing",
			Address: "123 Main St", ContactPhone: "555-0101",
		})
		require.NoError(t, err)

		f.impersonate(&models.User{ID: "stranger", Role: models.RoleCustomer, IsActive: true})
		w := f.do(t, http.MethodGet, "/api/v1/service-requests/"+req.ID, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("technician flow accept through invoice", func(t *testing.T) {
		f := newRouteFixture(t)
		req, err := f.lifecycle.Create("user-1", models.ServiceRequestCreate{
			Title: "Leaky faucet", Category: "Plumbing",
			Address: "123 Main St", ContactPhone: "555-0101",
		})
		require.NoError(t, err)

		f.impersonate(&models.User{ID: "tech-1", Role: models.RoleTechnician, IsActive: true})

		w := f.do(t, http.MethodGet, "/api/v1/technician/available-requests", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), req.ID)

		base := "/api/v1/technician/requests/" + req.ID
		require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, base+"/accept", nil).Code)
		require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, base+"/start", nil).Code)
		require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, base+"/complete", nil).Code)

		w = f.do(t, http.MethodPost, base+"/invoice", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Request models.ServiceRequest `json:"request"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, models.StatusAwaitingPayment, resp.Request.Status)
		require.NotNil(t, resp.Request.Invoice)
		assert.Equal(t, 162.0, resp.Request.Invoice.Total)
	})

	t.Run("rating from double submission returns 409", func(t *testing.T) {
		f := newRouteFixture(t)
		req, err := f.lifecycle.Create("user-1", models.ServiceRequestCreate{
			Title: "Leaky faucet", Category: "Plumbing",
			Address: "123 Main St", ContactPhone: "555-0101",
		})
		require.NoError(t, err)
		_, err = f.lifecycle.Accept(req.ID, "tech-1")
		require.NoError(t, err)
		_, err = f.lifecycle.Start(req.ID)
		require.NoError(t, err)
		_, err = f.lifecycle.Complete(req.ID)
		require.NoError(t, err)
		_, err = f.lifecycle.SendInvoice(req.ID)
		require.NoError(t, err)
		_, err = f.lifecycle.PayInvoice(req.ID)
		require.NoError(t, err)

		path := "/api/v1/service-requests/" + req.ID + "/rating"
		require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, path, gin.H{"value": 5}).Code)
		assert.Equal(t, http.StatusConflict, f.do(t, http.MethodPost, path, gin.H{"value": 1}).Code)
	})
}
