package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Hall mirrors the 'halls' table. SeatsNumber defines the valid seat range
// [1, SeatsNumber] for every schedule hosted in the hall.
type Hall struct {
	ID          uint64 `json:"hall_id"`
	Name        string `json:"hall_name"`
	SeatsNumber int    `json:"seats_number"`
}

// ErrHallNotFound indicates that a hall was not located in the DB.
var ErrHallNotFound = errors.New("hall not found")

type HallRepo struct{ DB *sql.DB }

func NewHallRepo(db *sql.DB) *HallRepo { return &HallRepo{DB: db} }

// Create inserts a hall and assigns the generated ID back to the struct.
func (r *HallRepo) Create(ctx context.Context, h *Hall) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO halls (name, seats_number) VALUES (?,?)", h.Name, h.SeatsNumber)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// GetByID retrieves a hall by its ID.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (Hall, error) {
	var h Hall
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, seats_number FROM halls WHERE id=? LIMIT 1", id).
		Scan(&h.ID, &h.Name, &h.SeatsNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return Hall{}, ErrHallNotFound
	}
	return h, err
}

// List returns all halls ordered by id.
func (r *HallRepo) List(ctx context.Context) ([]Hall, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, name, seats_number FROM halls ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Hall
	for rows.Next() {
		var h Hall
		if err := rows.Scan(&h.ID, &h.Name, &h.SeatsNumber); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	return result, rows.Err()
}
