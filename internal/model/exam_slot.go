package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ExamSlot struct {
	ID          uuid.UUID `json:"id"`
	CollegeID   uuid.UUID `json:"college_id"`
	CollegeName string    `json:"college_name"`
	Date        time.Time `json:"date"`       // calendar day, UTC midnight
	StartTime   string    `json:"start_time"` // HH:MM
	EndTime     string    `json:"end_time"`   // HH:MM
	Venue       string    `json:"venue"`
	TotalSeats  int       `json:"total_seats"`
	BookedSeats int       `json:"booked_seats"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_date"`
}

// NewExamSlot creates an empty active slot. totalSeats must be at least 1.
func NewExamSlot(totalSeats int) (*ExamSlot, error) {
	if totalSeats < 1 {
		return nil, ErrInvalidSeats
	}
	return &ExamSlot{
		TotalSeats:  totalSeats,
		BookedSeats: 0,
		IsActive:    true,
	}, nil
}

// IsFull checks if no seats are left
func (s *ExamSlot) IsFull() bool {
	return s.BookedSeats >= s.TotalSeats
}

// AvailableSeats never goes below zero
func (s *ExamSlot) AvailableSeats() int {
	if free := s.TotalSeats - s.BookedSeats; free > 0 {
		return free
	}
	return 0
}

// BookSeat takes one seat. The slot is left untouched on error.
func (s *ExamSlot) BookSeat() error {
	if s.IsFull() {
		return ErrCapacityExceeded
	}
	s.BookedSeats++
	return nil
}

// ReleaseSeat gives one seat back. Releasing from an empty slot is a caller bug.
func (s *ExamSlot) ReleaseSeat() error {
	if s.BookedSeats == 0 {
		return ErrInvalidState
	}
	s.BookedSeats--
	return nil
}

// IsUpcoming checks if the slot is active and not in the past relative to now
func (s *ExamSlot) IsUpcoming(now time.Time) bool {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return s.IsActive && !s.Date.Before(today)
}

// Badge is the availability label shown next to a slot
func (s *ExamSlot) Badge() string {
	if s.IsFull() {
		return "Full"
	}
	return fmt.Sprintf("%d seats available", s.AvailableSeats())
}

// ExamTime formats the slot's time window for an application
func (s *ExamSlot) ExamTime() string {
	if s.EndTime == "" {
		return s.StartTime
	}
	return s.StartTime + " - " + s.EndTime
}
