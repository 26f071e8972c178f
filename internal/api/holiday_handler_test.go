package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repeatry/leitner-api/internal/api"
	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/mocks"
	"github.com/repeatry/leitner-api/internal/service/holiday"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newHolidayHandler(holidays ...*domain.Holiday) *api.HolidayHandler {
	tracker := holiday.NewTracker(nil, mocks.NewHolidayStore(holidays...), nil)
	return api.NewHolidayHandler(tracker)
}

func TestCreateHoliday(t *testing.T) {
	t.Parallel()

	handler := newHolidayHandler()
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/holidays", jsonBody(t, api.HolidayRequest{
		StartDate: "2024-06-10",
		EndDate:   "2024-06-20",
	}))
	rec := httptest.NewRecorder()

	handler.CreateHoliday(rec, authedRequest(req, userID))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp api.HolidayResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-06-10", resp.StartDate)
	assert.Equal(t, "2024-06-20", resp.EndDate)
	assert.False(t, resp.SkipCatchup)
	assert.Equal(t, 11, resp.DaysLeft)
}

func TestCreateHoliday_RejectsInvertedInterval(t *testing.T) {
	t.Parallel()

	handler := newHolidayHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/holidays", jsonBody(t, api.HolidayRequest{
		StartDate: "2024-06-20",
		EndDate:   "2024-06-10",
	}))
	rec := httptest.NewRecorder()

	handler.CreateHoliday(rec, authedRequest(req, uuid.New()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateHoliday_RejectsMalformedDate(t *testing.T) {
	t.Parallel()

	handler := newHolidayHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/holidays", jsonBody(t, api.HolidayRequest{
		StartDate: "10/06/2024",
		EndDate:   "2024-06-20",
	}))
	rec := httptest.NewRecorder()

	handler.CreateHoliday(rec, authedRequest(req, uuid.New()))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStatus(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	h, err := domain.NewHoliday(userID, day(2024, time.June, 10), day(2024, time.June, 20))
	require.NoError(t, err)

	handler := newHolidayHandler(h)

	t.Run("on holiday", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/holidays/status?today=2024-06-15", nil)
		rec := httptest.NewRecorder()

		handler.GetStatus(rec, authedRequest(req, userID))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.HolidayStatusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.OnHoliday)
		require.NotNil(t, resp.Holiday)
		assert.Equal(t, 6, resp.Holiday.DaysLeft)
	})

	t.Run("not on holiday", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/holidays/status?today=2024-07-01", nil)
		rec := httptest.NewRecorder()

		handler.GetStatus(rec, authedRequest(req, userID))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.HolidayStatusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.OnHoliday)
		assert.Nil(t, resp.Holiday)
	})
}

func TestExtendHoliday_Handler(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	h, err := domain.NewHoliday(userID, day(2024, time.June, 10), day(2024, time.June, 20))
	require.NoError(t, err)

	handler := newHolidayHandler(h)

	req := httptest.NewRequest(http.MethodPost, "/api/holidays/extend?today=2024-06-15",
		jsonBody(t, api.ExtendHolidayRequest{ExtraDays: 5}))
	rec := httptest.NewRecorder()

	handler.ExtendHoliday(rec, authedRequest(req, userID))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.HolidayResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-06-25", resp.EndDate)
}

func TestExtendHoliday_NoActiveHolidayIs404(t *testing.T) {
	t.Parallel()

	handler := newHolidayHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/holidays/extend?today=2024-06-15",
		jsonBody(t, api.ExtendHolidayRequest{ExtraDays: 5}))
	rec := httptest.NewRecorder()

	handler.ExtendHoliday(rec, authedRequest(req, uuid.New()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetSkipCatchup_Handler(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	h, err := domain.NewHoliday(userID, day(2024, time.June, 10), day(2024, time.June, 20))
	require.NoError(t, err)

	handler := newHolidayHandler(h)

	skip := true
	req := httptest.NewRequest(http.MethodPost, "/api/holidays/skip-catchup?today=2024-06-15",
		jsonBody(t, api.SkipCatchupRequest{Skip: &skip}))
	rec := httptest.NewRecorder()

	handler.SetSkipCatchup(rec, authedRequest(req, userID))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.HolidayResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.SkipCatchup)
}

func TestSetSkipCatchup_NoActiveHolidayIs404(t *testing.T) {
	t.Parallel()

	handler := newHolidayHandler()

	skip := true
	req := httptest.NewRequest(http.MethodPost, "/api/holidays/skip-catchup?today=2024-06-15",
		jsonBody(t, api.SkipCatchupRequest{Skip: &skip}))
	rec := httptest.NewRecorder()

	handler.SetSkipCatchup(rec, authedRequest(req, uuid.New()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
