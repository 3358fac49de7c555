// This file implements the scheduling engine endpoints. A schedule binds a
// hall, a showing and a movie to a date at a price. The conflict checks run
// in a fixed order (hall, showing, movie, past date, slot taken) and the
// slot-uniqueness check is backed by the schema's unique key, so a caller
// that loses a race still gets the same 409 the pre-check would produce.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking/internal/repository"
)

// ScheduleHandler bundles the repositories needed to create and validate
// schedules.
type ScheduleHandler struct {
	Schedules *repository.ScheduleRepo
	Halls     *repository.HallRepo
	Showings  *repository.ShowingRepo
	Movies    *repository.MovieRepo
}

func NewScheduleHandler(schedules *repository.ScheduleRepo, halls *repository.HallRepo, showings *repository.ShowingRepo, movies *repository.MovieRepo) *ScheduleHandler {
	if schedules == nil || halls == nil || showings == nil || movies == nil {
		panic("nil repository passed to NewScheduleHandler")
	}
	return &ScheduleHandler{Schedules: schedules, Halls: halls, Showings: showings, Movies: movies}
}

type scheduleReq struct {
	HallID    uint64  `json:"hall_id"`
	ShowingID uint64  `json:"showing_id"`
	MovieID   uint64  `json:"movie_id"`
	ShowDate  string  `json:"show_date"`
	Price     float64 `json:"price"`
}

// AddSchedule handles POST /v1/admin/schedules.
func (h *ScheduleHandler) AddSchedule(c echo.Context) error {
	var req scheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	showDate, err := time.Parse(dateLayout, req.ShowDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date format, use YYYY-MM-DD"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price cannot be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Halls.GetByID(ctx, req.HallID); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall with the specified id does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if _, err := h.Showings.GetByID(ctx, req.ShowingID); err != nil {
		if errors.Is(err, repository.ErrShowingNotFound) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "showing with the specified id does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if _, err := h.Movies.GetByID(ctx, req.MovieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "movie with the specified id does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !schedulableDate(showDate, today()) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "the show date must be today or a future date"})
	}

	s := repository.Schedule{
		HallID:    req.HallID,
		ShowingID: req.ShowingID,
		MovieID:   req.MovieID,
		ShowDate:  showDate,
		Price:     req.Price,
	}
	if err := h.Schedules.Create(ctx, &s); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "schedule already exists for the specified hall, showing and date"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create schedule failed"})
	}
	return c.JSON(http.StatusCreated, s)
}

// GetSchedule handles GET /v1/schedules/:id.
func (h *ScheduleHandler) GetSchedule(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Schedules.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// ListSchedules handles GET /v1/schedules.
func (h *ScheduleHandler) ListSchedules(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	schedules, err := h.Schedules.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if schedules == nil {
		schedules = []repository.Schedule{}
	}
	return c.JSON(http.StatusOK, schedules)
}

// DeleteSchedule handles DELETE /v1/admin/schedules/:id. Tickets of the
// schedule go first, the schedule last, in one transaction.
func (h *ScheduleHandler) DeleteSchedule(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Schedules.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "schedule not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
