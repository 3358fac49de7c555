// This file holds the pure validation rules of the booking and catalog
// operations. Keeping them as plain functions makes the ordered,
// human-readable rejection messages testable without a database: each
// function returns the first violation in source order, or "" when valid.
package handler

import (
	"strconv"
	"time"
	"unicode"

	"github.com/iliyamo/cinema-booking/internal/repository"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// today returns the current UTC calendar date.
func today() time.Time { return dateOnly(time.Now().UTC()) }

func parseUint(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }

// registrationIssue checks the field-level registration rules. The handler
// performs the login-uniqueness check separately, before calling this.
func registrationIssue(name, surname, login, password, confirm string) string {
	if password != confirm {
		return "the password and confirmation password do not match"
	}
	if name == "" || surname == "" || login == "" || password == "" {
		return "all fields must be filled"
	}
	if !lettersOnly(name) || !lettersOnly(surname) {
		return "the name and surname must contain only letters"
	}
	if containsWhitespace(login) || containsWhitespace(password) {
		return "login and password must not contain whitespace"
	}
	return ""
}

func lettersOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func containsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

// movieIssue validates movie fields in source order: title, budget, release
// date, box office, duration, rating.
func movieIssue(title string, budget float64, releaseDate time.Time, boxOffice float64, duration int, rating float64, today time.Time) string {
	if title == "" {
		return "title cannot be empty"
	}
	if budget < 0 {
		return "budget cannot be negative"
	}
	if releaseDate.After(today) {
		return "release date cannot be in the future"
	}
	if boxOffice < 0 {
		return "box office cannot be negative"
	}
	if duration <= 0 {
		return "duration must be greater than zero"
	}
	if rating < 0 || rating > 10 {
		return "average rating must be between 0 and 10"
	}
	return ""
}

// schedulableDate reports whether a show date may be scheduled: today or
// any future date.
func schedulableDate(showDate, today time.Time) bool { return !showDate.Before(today) }

// bookableDate reports whether a seat may still be booked for a show date.
// Booking is stricter than scheduling: a show scheduled for today can no
// longer be booked once today arrives.
func bookableDate(showDate, today time.Time) bool { return showDate.After(today) }

// validSeat reports whether seat falls inside the hall's linear range
// [1, seatsNumber].
func validSeat(seat, seatsNumber int) bool { return seat >= 1 && seat <= seatsNumber }

// seatTaken scans the schedule's tickets for an exact seat match; first
// match wins.
func seatTaken(tickets []repository.Ticket, seat int) bool {
	for _, t := range tickets {
		if t.Seat == seat {
			return true
		}
	}
	return false
}

// parseShowTime normalizes a time-of-day string to "HH:MM:SS". Accepts
// "HH:MM" and "HH:MM:SS".
func parseShowTime(s string) (string, bool) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format("15:04:05"), true
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return t.Format("15:04:05"), true
	}
	return "", false
}
