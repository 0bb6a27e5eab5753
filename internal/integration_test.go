package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dormitory-services-backend/config"
	"dormitory-services-backend/internal/api"
	"dormitory-services-backend/internal/model"
	"dormitory-services-backend/internal/reservation"
	"dormitory-services-backend/internal/store"
)

type server struct {
	t       *testing.T
	router  *gin.Engine
	backend *store.Backend
}

func startServer(t *testing.T, cfg *config.Config) *server {
	backend, err := store.Open(cfg)
	require.NoError(t, err)
	engine := reservation.NewEngine(backend.Store)
	return &server{t: t, router: api.NewRouter(engine, cfg, backend.Name), backend: backend}
}

func (s *server) call(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(s.t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *server) book(student string) model.Reservation {
	w := s.call(http.MethodPost, "/api/reservations", reservation.CreateRequest{
		SpaceID: "ROOM_A", Date: "2025-01-10", TimeSlot: "09:00-10:00",
		StudentID: student, StudentName: "Student " + student,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var r model.Reservation
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &r))
	return r
}

func (s *server) confirmedAtNine() int {
	w := s.call(http.MethodGet, "/api/reservations/availability?spaceId=ROOM_A&date=2025-01-10", nil)
	require.Equal(s.t, http.StatusOK, w.Code)
	var avail reservation.Availability
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &avail))
	return avail.Slots[0].Confirmed
}

// TestReservationLifecycle books a full study room over HTTP, cancels into the
// waitlist, then restarts on the same sqlite file to check nothing was lost.
func TestReservationLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:  config.ServerConfig{RateLimitPerSec: 1000, RateLimitBurst: 1000, CacheTTL: time.Minute},
		Storage: config.StorageConfig{Driver: config.DriverSQLite},
		Database: config.DatabaseConfig{
			DSN:          "file:" + filepath.Join(t.TempDir(), "dormitory.db"),
			MaxOpenConns: 1,
			LogLevel:     "silent",
		},
	}

	first := startServer(t, cfg)
	a := first.book("A")
	b := first.book("B")
	c := first.book("C")

	t.Run("capacity is reached before the waitlist", func(t *testing.T) {
		assert.Equal(t, model.StatusConfirmed, a.Status)
		assert.Equal(t, model.StatusConfirmed, b.Status)
		assert.Equal(t, model.StatusWaitlist, c.Status)
		assert.Equal(t, 2, first.confirmedAtNine())
	})

	t.Run("cancelling a confirmed booking promotes the waitlist", func(t *testing.T) {
		w := first.call(http.MethodDelete, "/api/reservations/"+a.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, fmt.Sprintf(`{"cancelled":%q,"promoted":%q}`, a.ID, c.ID), w.Body.String())
		assert.Equal(t, 2, first.confirmedAtNine())
	})

	t.Run("a cancelled student can book again", func(t *testing.T) {
		again := first.book("A")
		assert.Equal(t, model.StatusWaitlist, again.Status)
	})

	require.NoError(t, first.backend.Close())

	second := startServer(t, cfg)
	defer second.backend.Close()

	t.Run("reservations survive a restart", func(t *testing.T) {
		assert.Equal(t, config.DriverSQLite, second.backend.Name)
		assert.Equal(t, 2, second.confirmedAtNine())

		w := second.call(http.MethodGet, "/api/reservations/all?spaceId=ROOM_A", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var rows []model.Reservation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
		require.Len(t, rows, 4)

		statuses := map[string]model.ReservationStatus{}
		for _, r := range rows {
			if r.ID == a.ID {
				statuses["A-first"] = r.Status
			} else {
				statuses[r.StudentID] = r.Status
			}
		}
		assert.Equal(t, model.StatusCancelled, statuses["A-first"])
		assert.Equal(t, model.StatusConfirmed, statuses["B"])
		assert.Equal(t, model.StatusConfirmed, statuses["C"])
		assert.Equal(t, model.StatusWaitlist, statuses["A"])
	})

	t.Run("duplicate check still applies after restart", func(t *testing.T) {
		w := second.call(http.MethodPost, "/api/reservations", reservation.CreateRequest{
			SpaceID: "ROOM_A", Date: "2025-01-10", TimeSlot: "09:00-10:00", StudentID: "B", StudentName: "B",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
