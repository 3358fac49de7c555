// This file defines the Ticket model and repository. A Ticket allocates one
// seat of a schedule's hall to a client. The unique key on
// (schedule_id, seat) is the anti-double-booking invariant: of two
// concurrent bookings for the same seat exactly one insert succeeds and the
// loser gets ErrSeatTaken.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Ticket mirrors the 'tickets' table.
type Ticket struct {
	ID         uint64 `json:"ticket_id"`
	ScheduleID uint64 `json:"schedule_id"`
	ClientID   uint64 `json:"client_id"`
	Seat       int    `json:"seat"`
}

// ErrTicketNotFound indicates that a ticket was not located in the DB.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrSeatTaken indicates a ticket already exists for the same schedule and
// seat.
var ErrSeatTaken = errors.New("seat already booked")

type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

// Create inserts a ticket and assigns the generated ID back to the struct.
// A duplicate (schedule_id, seat) insert returns ErrSeatTaken.
func (r *TicketRepo) Create(ctx context.Context, t *Ticket) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tickets (schedule_id, client_id, seat) VALUES (?,?,?)",
		t.ScheduleID, t.ClientID, t.Seat)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSeatTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID retrieves a ticket by its ID.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (Ticket, error) {
	var t Ticket
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, schedule_id, client_id, seat FROM tickets WHERE id=? LIMIT 1", id).
		Scan(&t.ID, &t.ScheduleID, &t.ClientID, &t.Seat)
	if errors.Is(err, sql.ErrNoRows) {
		return Ticket{}, ErrTicketNotFound
	}
	return t, err
}

// ListBySchedule returns every ticket sold for the given schedule.
func (r *TicketRepo) ListBySchedule(ctx context.Context, scheduleID uint64) ([]Ticket, error) {
	return r.list(ctx,
		"SELECT id, schedule_id, client_id, seat FROM tickets WHERE schedule_id=? ORDER BY seat", scheduleID)
}

// ListByClient returns every ticket owned by the given client, past shows
// included.
func (r *TicketRepo) ListByClient(ctx context.Context, clientID uint64) ([]Ticket, error) {
	return r.list(ctx,
		"SELECT id, schedule_id, client_id, seat FROM tickets WHERE client_id=? ORDER BY id", clientID)
}

// ListAll returns every ticket.
func (r *TicketRepo) ListAll(ctx context.Context) ([]Ticket, error) {
	return r.list(ctx, "SELECT id, schedule_id, client_id, seat FROM tickets ORDER BY id")
}

func (r *TicketRepo) list(ctx context.Context, q string, args ...any) ([]Ticket, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Ticket
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.ID, &t.ScheduleID, &t.ClientID, &t.Seat); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// Delete removes a ticket by its ID. Returns ErrTicketNotFound when no row
// was deleted.
func (r *TicketRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM tickets WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTicketNotFound
	}
	return nil
}
