package model

import (
	"time"

	"github.com/google/uuid"
)

type AnnouncementType string

const (
	AnnouncementTypeGeneral   AnnouncementType = "general"
	AnnouncementTypeDeadline  AnnouncementType = "deadline"
	AnnouncementTypeExam      AnnouncementType = "exam"
	AnnouncementTypeResult    AnnouncementType = "result"
	AnnouncementTypeImportant AnnouncementType = "important"
)

var AnnouncementTypes = []AnnouncementType{
	AnnouncementTypeGeneral,
	AnnouncementTypeDeadline,
	AnnouncementTypeExam,
	AnnouncementTypeResult,
	AnnouncementTypeImportant,
}

func (t AnnouncementType) Valid() bool {
	for _, known := range AnnouncementTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Announcement struct {
	ID          uuid.UUID        `json:"id"`
	CollegeID   uuid.UUID        `json:"college_id"`
	CollegeName string           `json:"college_name"`
	Title       string           `json:"title"`
	Content     string           `json:"content"`
	Type        AnnouncementType `json:"type"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   time.Time        `json:"created_date"`
}

// RelevantTo keeps announcements of the given colleges, preserving order
func RelevantTo(announcements []*Announcement, collegeIDs []uuid.UUID) []*Announcement {
	ids := make(map[uuid.UUID]struct{}, len(collegeIDs))
	for _, id := range collegeIDs {
		ids[id] = struct{}{}
	}

	var relevant []*Announcement
	for _, a := range announcements {
		if _, ok := ids[a.CollegeID]; ok {
			relevant = append(relevant, a)
		}
	}
	return relevant
}
