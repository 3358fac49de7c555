package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/cinema-booking/internal/repository"
)

func TestRegistrationIssue(t *testing.T) {
	cases := []struct {
		name     string
		fields   [5]string // name, surname, login, password, confirm
		expected string
	}{
		{"valid", [5]string{"Anna", "Ivanova", "anna", "pass", "pass"}, ""},
		{"mismatch", [5]string{"Anna", "Ivanova", "anna", "pass", "other"}, "the password and confirmation password do not match"},
		{"empty name", [5]string{"", "Ivanova", "anna", "pass", "pass"}, "all fields must be filled"},
		{"empty login", [5]string{"Anna", "Ivanova", "", "pass", "pass"}, "all fields must be filled"},
		{"digits in name", [5]string{"Anna2", "Ivanova", "anna", "pass", "pass"}, "the name and surname must contain only letters"},
		{"digits in surname", [5]string{"Anna", "Ivanova7", "anna", "pass", "pass"}, "the name and surname must contain only letters"},
		{"space in login", [5]string{"Anna", "Ivanova", "an na", "pass", "pass"}, "login and password must not contain whitespace"},
		{"tab in password", [5]string{"Anna", "Ivanova", "anna", "pa\tss", "pa\tss"}, "login and password must not contain whitespace"},
		// mismatch is reported before any field-level check
		{"mismatch wins over empty", [5]string{"", "", "", "a", "b"}, "the password and confirmation password do not match"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := registrationIssue(tc.fields[0], tc.fields[1], tc.fields[2], tc.fields[3], tc.fields[4])
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestMovieIssue(t *testing.T) {
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(-1, 0, 0)
	future := now.AddDate(0, 0, 1)

	assert.Equal(t, "", movieIssue("Solaris", 1_000_000, past, 2_000_000, 167, 8.1, now))
	assert.Equal(t, "title cannot be empty", movieIssue("", 0, past, 0, 100, 5, now))
	assert.Equal(t, "budget cannot be negative", movieIssue("Solaris", -1, past, 0, 100, 5, now))
	assert.Equal(t, "release date cannot be in the future", movieIssue("Solaris", 0, future, 0, 100, 5, now))
	assert.Equal(t, "box office cannot be negative", movieIssue("Solaris", 0, past, -1, 100, 5, now))
	assert.Equal(t, "duration must be greater than zero", movieIssue("Solaris", 0, past, 0, 0, 5, now))
	assert.Equal(t, "average rating must be between 0 and 10", movieIssue("Solaris", 0, past, 0, 100, 10.5, now))
	assert.Equal(t, "average rating must be between 0 and 10", movieIssue("Solaris", 0, past, 0, 100, -0.1, now))

	// a movie released today is not "in the future"
	assert.Equal(t, "", movieIssue("Solaris", 0, now, 0, 100, 5, now))
}

func TestShowDateRules(t *testing.T) {
	day := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	yesterday := day.AddDate(0, 0, -1)
	tomorrow := day.AddDate(0, 0, 1)

	// scheduling allows today, booking does not
	assert.False(t, schedulableDate(yesterday, day))
	assert.True(t, schedulableDate(day, day))
	assert.True(t, schedulableDate(tomorrow, day))

	assert.False(t, bookableDate(yesterday, day))
	assert.False(t, bookableDate(day, day))
	assert.True(t, bookableDate(tomorrow, day))
}

func TestValidSeat(t *testing.T) {
	assert.True(t, validSeat(1, 50))
	assert.True(t, validSeat(10, 50))
	assert.True(t, validSeat(50, 50))
	assert.False(t, validSeat(0, 50))
	assert.False(t, validSeat(51, 50))
	assert.False(t, validSeat(-3, 50))
}

func TestSeatTaken(t *testing.T) {
	booked := []repository.Ticket{
		{ID: 1, ScheduleID: 9, ClientID: 2, Seat: 4},
		{ID: 2, ScheduleID: 9, ClientID: 3, Seat: 17},
	}
	assert.True(t, seatTaken(booked, 4))
	assert.True(t, seatTaken(booked, 17))
	assert.False(t, seatTaken(booked, 5))
	assert.False(t, seatTaken(nil, 4))
}

func TestParseShowTime(t *testing.T) {
	got, ok := parseShowTime("19:30")
	assert.True(t, ok)
	assert.Equal(t, "19:30:00", got)

	got, ok = parseShowTime("09:05:30")
	assert.True(t, ok)
	assert.Equal(t, "09:05:30", got)

	_, ok = parseShowTime("25:00")
	assert.False(t, ok)
	_, ok = parseShowTime("half past seven")
	assert.False(t, ok)
	_, ok = parseShowTime("")
	assert.False(t, ok)
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2026, 8, 31, 23, 59, 59, 123, time.FixedZone("X", 3600))
	got := dateOnly(ts)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), got)
}
