// Package queue defines message payloads exchanged over the message broker.
package queue

// TicketBookedEvent is published after a ticket row is committed. It carries
// enough information for downstream consumers to log or notify without
// querying the primary database.
type TicketBookedEvent struct {
	TicketID   uint64  `json:"ticket_id"`
	ScheduleID uint64  `json:"schedule_id"`
	ClientID   uint64  `json:"client_id"`
	Seat       int     `json:"seat"`
	ShowDate   string  `json:"show_date"`
	Price      float64 `json:"price"`
	BookedAt   string  `json:"booked_at"`
}
