package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExamSlot(t *testing.T) {
	slot, err := NewExamSlot(30)
	require.NoError(t, err)
	assert.Equal(t, 30, slot.TotalSeats)
	assert.Equal(t, 0, slot.BookedSeats)
	assert.True(t, slot.IsActive)

	for _, seats := range []int{0, -1} {
		_, err := NewExamSlot(seats)
		assert.ErrorIs(t, err, ErrInvalidSeats)
	}
}

func TestExamSlot_BookSeat(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		booked     int
		wantErr    error
		wantBooked int
		wantFull   bool
	}{
		{name: "empty slot", total: 5, booked: 0, wantBooked: 1},
		{name: "last seat", total: 5, booked: 4, wantBooked: 5, wantFull: true},
		{name: "full slot", total: 5, booked: 5, wantErr: ErrCapacityExceeded, wantBooked: 5, wantFull: true},
		{name: "overbooked slot", total: 5, booked: 7, wantErr: ErrCapacityExceeded, wantBooked: 7, wantFull: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := &ExamSlot{TotalSeats: tt.total, BookedSeats: tt.booked, IsActive: true}
			err := slot.BookSeat()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantBooked, slot.BookedSeats)
			assert.Equal(t, tt.wantFull, slot.IsFull())
		})
	}
}

func TestExamSlot_ReleaseSeat(t *testing.T) {
	slot := &ExamSlot{TotalSeats: 5, BookedSeats: 0}
	assert.ErrorIs(t, slot.ReleaseSeat(), ErrInvalidState)
	assert.Equal(t, 0, slot.BookedSeats)

	slot.BookedSeats = 5
	require.NoError(t, slot.ReleaseSeat())
	assert.Equal(t, 4, slot.BookedSeats)
	assert.False(t, slot.IsFull())
}

func TestExamSlot_AvailableSeatsAndBadge(t *testing.T) {
	tests := []struct {
		total, booked int
		want          int
		badge         string
	}{
		{total: 100, booked: 100, want: 0, badge: "Full"},
		{total: 100, booked: 40, want: 60, badge: "60 seats available"},
		{total: 3, booked: 5, want: 0, badge: "Full"},
		{total: 0, booked: 0, want: 0, badge: "Full"},
	}
	for _, tt := range tests {
		slot := &ExamSlot{TotalSeats: tt.total, BookedSeats: tt.booked}
		assert.Equal(t, tt.want, slot.AvailableSeats())
		assert.Equal(t, tt.badge, slot.Badge())
	}
}

func TestExamSlot_IsUpcoming(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, (&ExamSlot{Date: today, IsActive: true}).IsUpcoming(now))
	assert.True(t, (&ExamSlot{Date: today.AddDate(0, 0, 1), IsActive: true}).IsUpcoming(now))
	assert.False(t, (&ExamSlot{Date: today.AddDate(0, 0, -1), IsActive: true}).IsUpcoming(now))
	assert.False(t, (&ExamSlot{Date: today, IsActive: false}).IsUpcoming(now))
}
