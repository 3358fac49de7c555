package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLine(t *testing.T) {
	ev := TicketBookedEvent{
		TicketID:   12,
		ScheduleID: 3,
		ClientID:   7,
		Seat:       14,
		ShowDate:   "2026-09-15",
		Price:      8.5,
		BookedAt:   "2026-08-31T10:00:00Z",
	}
	line := formatLine(ev)
	assert.Equal(t, "[2026-08-31T10:00:00Z] Ticket booked | ticket_id=12 | client_id=7 | schedule_id=3 | seat=14 | show_date=2026-09-15 | price=8.50\n", line)
}

func TestHandleMessage_BadJSON(t *testing.T) {
	err := handleMessage([]byte("{not json"))
	assert.Error(t, err)
}
