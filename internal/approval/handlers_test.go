package approval

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venuebooking/internal/actor"
	"venuebooking/internal/api"
)

func newRouter(h Handlers, a *actor.Actor) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if a != nil {
				req = req.WithContext(api.WithActor(req.Context(), *a))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Post("/bookings/{id}/actions/{action}", h.ActionByName)
	r.Get("/approvals", h.Queue)
	r.Get("/bookings/{id}/history", h.History)
	return r
}

const bookingID = "6f1c2a8e-5b0e-4f0e-9a55-2f6d4c8e7b10"

func TestActionByName_UnknownActionRejectedBeforeLookup(t *testing.T) {
	h := Handlers{Service: &Service{}}
	rec := httptest.NewRecorder()
	newRouter(h, &saStaff).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings/"+bookingID+"/actions/archive", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var env api.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "INVALID_ACTION", env.Error.Code)
}

func TestActionByName_RequiresActor(t *testing.T) {
	h := Handlers{Service: &Service{}}
	rec := httptest.NewRecorder()
	newRouter(h, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bookings/"+bookingID+"/actions/approve", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStaffOnlyEndpoints(t *testing.T) {
	h := Handlers{Service: &Service{}}
	for _, path := range []string{"/approvals", "/bookings/" + bookingID + "/history"} {
		rec := httptest.NewRecorder()
		newRouter(h, &owner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusForbidden, rec.Code, path)
	}
}

func TestQueue_RejectsNonQueueStatus(t *testing.T) {
	h := Handlers{Service: &Service{}}
	rec := httptest.NewRecorder()
	newRouter(h, &admin).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/approvals?status=approved", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
