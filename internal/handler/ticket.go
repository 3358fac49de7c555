// This file implements the booking engine. Booking allocates one seat of a
// schedule's hall to the calling client; the (schedule, seat) unique key in
// the schema guarantees that of two simultaneous bookings for the same seat
// exactly one succeeds. All no-session rejections here are 409, not 401;
// the ticket surface has always answered conflict for anonymous callers and
// clients depend on it.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-booking/internal/queue"
	"github.com/iliyamo/cinema-booking/internal/repository"
	queuepub "github.com/iliyamo/cinema-booking/internal/service"
)

// TicketHandler bundles the repositories required to book tickets and
// assemble ticket detail views.
type TicketHandler struct {
	Tickets   *repository.TicketRepo
	Schedules *repository.ScheduleRepo
	Halls     *repository.HallRepo
	Movies    *repository.MovieRepo
	Showings  *repository.ShowingRepo
}

func NewTicketHandler(tickets *repository.TicketRepo, schedules *repository.ScheduleRepo, halls *repository.HallRepo, movies *repository.MovieRepo, showings *repository.ShowingRepo) *TicketHandler {
	if tickets == nil || schedules == nil || halls == nil || movies == nil || showings == nil {
		panic("nil repository passed to NewTicketHandler")
	}
	return &TicketHandler{Tickets: tickets, Schedules: schedules, Halls: halls, Movies: movies, Showings: showings}
}

type bookReq struct {
	ScheduleID uint64 `json:"schedule_id"`
	Seat       int    `json:"seat"`
}

// ticketDetails is the denormalized view assembled by joining a ticket's
// schedule with its hall, movie and showing.
type ticketDetails struct {
	ShowDate    string  `json:"show_date"`
	ShowTime    string  `json:"show_time"`
	HallName    string  `json:"hall_name"`
	Seat        int     `json:"seat"`
	Title       string  `json:"title"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

// Book handles POST /v1/tickets. The checks run in a fixed order: session,
// schedule, show date, hall, seat range, seat taken. Bookings are accepted
// only for strictly future show dates, stricter than scheduling, which
// still allows today.
func (h *TicketHandler) Book(c echo.Context) error {
	clientID, _, ok := currentClient(c)
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": "user is not logged in"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sch, err := h.Schedules.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, repository.ErrScheduleNotFound) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "schedule with the specified id does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !bookableDate(dateOnly(sch.ShowDate), today()) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "the show date has already passed"})
	}
	hall, err := h.Halls.GetByID(ctx, sch.HallID)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			// store corruption, not user error: the schedule points at a hall that is gone
			log.Printf("integrity violation: schedule %d references missing hall %d", sch.ID, sch.HallID)
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall with the specified id does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !validSeat(req.Seat, hall.SeatsNumber) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "invalid seat number"})
	}
	booked, err := h.Tickets.ListBySchedule(ctx, req.ScheduleID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if seatTaken(booked, req.Seat) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "the seat is already booked"})
	}

	t := repository.Ticket{ScheduleID: req.ScheduleID, ClientID: clientID, Seat: req.Seat}
	if err := h.Tickets.Create(ctx, &t); err != nil {
		// unique key on (schedule_id, seat): a concurrent booking won the seat
		if errors.Is(err, repository.ErrSeatTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "the seat is already booked"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create ticket failed"})
	}

	// best effort: a failed publish never fails the booking
	ev := queue.TicketBookedEvent{
		TicketID:   t.ID,
		ScheduleID: t.ScheduleID,
		ClientID:   t.ClientID,
		Seat:       t.Seat,
		ShowDate:   sch.ShowDate.Format(dateLayout),
		Price:      sch.Price,
		BookedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		_ = queuepub.PublishTicketBooked(context.Background(), ev)
	}()

	return c.JSON(http.StatusCreated, t)
}

// Details handles GET /v1/tickets/:id/details. 404 when the ticket does
// not exist, 409 when it belongs to someone else; a missing joined row is
// a store-integrity violation surfaced as 409 and logged.
func (h *TicketHandler) Details(c echo.Context) error {
	clientID, _, ok := currentClient(c)
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": "user is not logged in"})
	}
	id, okID := pathID(c)
	if !okID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if t.ClientID != clientID {
		return c.JSON(http.StatusConflict, echo.Map{"error": "you do not have permission to access details for this ticket"})
	}

	sch, err := h.Schedules.GetByID(ctx, t.ScheduleID)
	if err != nil {
		return h.integrity(c, err, repository.ErrScheduleNotFound, "schedule", t.ID)
	}
	hall, err := h.Halls.GetByID(ctx, sch.HallID)
	if err != nil {
		return h.integrity(c, err, repository.ErrHallNotFound, "hall", t.ID)
	}
	movie, err := h.Movies.GetByID(ctx, sch.MovieID)
	if err != nil {
		return h.integrity(c, err, repository.ErrMovieNotFound, "movie", t.ID)
	}
	showing, err := h.Showings.GetByID(ctx, sch.ShowingID)
	if err != nil {
		return h.integrity(c, err, repository.ErrShowingNotFound, "showing", t.ID)
	}

	return c.JSON(http.StatusOK, ticketDetails{
		ShowDate:    sch.ShowDate.Format(dateLayout),
		ShowTime:    showing.ShowTime,
		HallName:    hall.Name,
		Seat:        t.Seat,
		Title:       movie.Title,
		Duration:    movie.Duration,
		Price:       sch.Price,
		Description: movie.Description,
	})
}

// integrity maps a failed join to a 409 and escalates it in the log; a
// ticket always references a live schedule/hall/movie/showing unless the
// store is corrupted.
func (h *TicketHandler) integrity(c echo.Context, err, notFound error, entity string, ticketID uint64) error {
	if errors.Is(err, notFound) {
		log.Printf("integrity violation: ticket %d references missing %s", ticketID, entity)
		return c.JSON(http.StatusConflict, echo.Map{"error": entity + " with the specified id does not exist"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
}

// Delete handles DELETE /v1/tickets/:id. Only the owner may delete a
// ticket; no cascade follows.
func (h *TicketHandler) Delete(c echo.Context) error {
	clientID, _, ok := currentClient(c)
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": "user is not logged in"})
	}
	id, okID := pathID(c)
	if !okID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if t.ClientID != clientID {
		return c.JSON(http.StatusConflict, echo.Map{"error": "you do not have permission to delete this ticket"})
	}
	if err := h.Tickets.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// My handles GET /v1/tickets/my: every ticket owned by the caller, past
// shows included.
func (h *TicketHandler) My(c echo.Context) error {
	clientID, _, ok := currentClient(c)
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": "user is not logged in"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tickets, err := h.Tickets.ListByClient(ctx, clientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if tickets == nil {
		tickets = []repository.Ticket{}
	}
	return c.JSON(http.StatusOK, tickets)
}

// All handles GET /v1/tickets.
func (h *TicketHandler) All(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tickets, err := h.Tickets.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if tickets == nil {
		tickets = []repository.Ticket{}
	}
	return c.JSON(http.StatusOK, tickets)
}
