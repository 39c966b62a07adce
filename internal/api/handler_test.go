package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/filter"
	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubColleges struct {
	colleges []model.College
	err      error
	lastF    filter.FilterSet
}

func (s *stubColleges) Discover(ctx context.Context, f filter.FilterSet) ([]model.College, error) {
	s.lastF = f
	if s.err != nil {
		return nil, s.err
	}
	return filter.Apply(s.colleges, f), nil
}

func (s *stubColleges) Facets(ctx context.Context) (filter.Facets, error) {
	return filter.CollectFacets(s.colleges), s.err
}

func (s *stubColleges) GetByCode(ctx context.Context, code string) (*model.College, error) {
	for i := range s.colleges {
		if s.colleges[i].Code == code {
			return &s.colleges[i], nil
		}
	}
	return nil, model.ErrNotFound
}

type stubSlots map[uuid.UUID][]*model.ExamSlot

func (s stubSlots) Upcoming(ctx context.Context, collegeID uuid.UUID, now time.Time) ([]*model.ExamSlot, error) {
	return s[collegeID], nil
}

func newTestRouter(colleges *stubColleges, slots stubSlots) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(NewHandler(colleges, slots, zap.NewNop()), zap.NewNop(), false)
}

func get(t *testing.T, router http.Handler, target string, out any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

func sampleColleges() []model.College {
	return []model.College{
		{ID: uuid.New(), Name: "PSG Tech", Code: "PSG", City: "Coimbatore", Courses: []string{"B.E. CSE"}, HasHostel: true, IsActive: true},
		{ID: uuid.New(), Name: "Loyola College", Code: "LOY", City: "Chennai", Courses: []string{"B.Com"}, HasScholarship: true, IsActive: true},
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&stubColleges{}, nil)

	var body map[string]string
	assert.Equal(t, http.StatusOK, get(t, router, "/healthz", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestListColleges(t *testing.T) {
	colleges := &stubColleges{colleges: sampleColleges()}
	router := newTestRouter(colleges, nil)

	var body struct {
		Colleges []model.College `json:"colleges"`
		Count    int             `json:"count"`
	}

	assert.Equal(t, http.StatusOK, get(t, router, "/api/colleges", &body))
	assert.Equal(t, 2, body.Count)

	assert.Equal(t, http.StatusOK, get(t, router, "/api/colleges?search=chennai&has_scholarship=true&course=B.Com&course=MBA", &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "LOY", body.Colleges[0].Code)
	assert.Equal(t, []string{"B.Com", "MBA"}, colleges.lastF.Courses)
}

func TestListColleges_StoreFailure(t *testing.T) {
	router := newTestRouter(&stubColleges{err: errors.New("connection refused")}, nil)

	var body map[string]string
	assert.Equal(t, http.StatusInternalServerError, get(t, router, "/api/colleges", &body))
	assert.Equal(t, "Internal server error", body["error"])
}

func TestGetFacets(t *testing.T) {
	router := newTestRouter(&stubColleges{colleges: sampleColleges()}, nil)

	var facets filter.Facets
	assert.Equal(t, http.StatusOK, get(t, router, "/api/colleges/facets", &facets))
	assert.Equal(t, []string{"B.Com", "B.E. CSE"}, facets.Courses)
	assert.Equal(t, []string{"Chennai", "Coimbatore"}, facets.Cities)
}

func TestListCollegeSlots(t *testing.T) {
	colleges := sampleColleges()
	slots := stubSlots{
		colleges[0].ID: {
			{ID: uuid.New(), CollegeID: colleges[0].ID, TotalSeats: 100, BookedSeats: 100, IsActive: true},
			{ID: uuid.New(), CollegeID: colleges[0].ID, TotalSeats: 40, BookedSeats: 12, IsActive: true},
		},
	}
	router := newTestRouter(&stubColleges{colleges: colleges}, slots)

	var body struct {
		College string `json:"college"`
		Slots   []struct {
			TotalSeats     int    `json:"total_seats"`
			AvailableSeats int    `json:"available_seats"`
			IsFull         bool   `json:"is_full"`
			Badge          string `json:"badge"`
		} `json:"slots"`
	}

	assert.Equal(t, http.StatusOK, get(t, router, "/api/colleges/PSG/slots", &body))
	assert.Equal(t, "PSG", body.College)
	require.Len(t, body.Slots, 2)

	assert.Equal(t, 100, body.Slots[0].TotalSeats)
	assert.True(t, body.Slots[0].IsFull)
	assert.Equal(t, 0, body.Slots[0].AvailableSeats)
	assert.Equal(t, "Full", body.Slots[0].Badge)

	assert.Equal(t, "28 seats available", body.Slots[1].Badge)

	var missing map[string]string
	assert.Equal(t, http.StatusNotFound, get(t, router, "/api/colleges/NOPE/slots", &missing))
	assert.Equal(t, "College not found", missing["error"])
}
