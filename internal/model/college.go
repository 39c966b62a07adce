package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Accreditation string

const (
	AccreditationNAACAPlusPlus Accreditation = "NAAC A++"
	AccreditationNAACAPlus     Accreditation = "NAAC A+"
	AccreditationNAACA         Accreditation = "NAAC A"
	AccreditationNAACBPlusPlus Accreditation = "NAAC B++"
	AccreditationNAACBPlus     Accreditation = "NAAC B+"
	AccreditationNAACB         Accreditation = "NAAC B"
	AccreditationNone          Accreditation = "Not Accredited"
)

// DefaultCollegeState is used when a college profile does not name a state
const DefaultCollegeState = "Tamil Nadu"

type College struct {
	ID                  uuid.UUID     `json:"id"`
	Name                string        `json:"name"`
	Code                string        `json:"code"` // unique
	Description         string        `json:"description"`
	LogoURL             string        `json:"logo_url"`
	City                string        `json:"city"`
	State               string        `json:"state"`
	Address             string        `json:"address"`
	Website             string        `json:"website"`
	Phone               string        `json:"phone"`
	Email               string        `json:"email"`
	Courses             []string      `json:"courses"`
	ApplicationFee      float64       `json:"application_fee"`
	AnnualFeesMin       *float64      `json:"annual_fees_min"`
	AnnualFeesMax       *float64      `json:"annual_fees_max"`
	HasHostel           bool          `json:"has_hostel"`
	HostelFees          *float64      `json:"hostel_fees"`
	HasScholarship      bool          `json:"has_scholarship"`
	ScholarshipDetails  string        `json:"scholarship_details"`
	Accreditation       Accreditation `json:"accreditation"`
	Ranking             *int          `json:"ranking"` // NIRF, nil if not ranked
	ApplicationDeadline *time.Time    `json:"application_deadline"`
	IsActive            bool          `json:"is_active"`
	AdminEmail          string        `json:"admin_email"`
	CreatedAt           time.Time     `json:"created_date"`
}

// OffersCourse checks if the course is in the college's course list
func (c *College) OffersCourse(course string) bool {
	for _, offered := range c.Courses {
		if offered == course {
			return true
		}
	}
	return false
}

// CourseNamed finds an offered course ignoring case and returns its canonical name
func (c *College) CourseNamed(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, offered := range c.Courses {
		if strings.EqualFold(offered, name) {
			return offered, true
		}
	}
	return "", false
}

// FeesRangeValid checks annual_fees_min <= annual_fees_max when both are set
func (c *College) FeesRangeValid() bool {
	if c.AnnualFeesMin == nil || c.AnnualFeesMax == nil {
		return true
	}
	return *c.AnnualFeesMin <= *c.AnnualFeesMax
}

var Accreditations = []Accreditation{
	AccreditationNAACAPlusPlus,
	AccreditationNAACAPlus,
	AccreditationNAACA,
	AccreditationNAACBPlusPlus,
	AccreditationNAACBPlus,
	AccreditationNAACB,
	AccreditationNone,
}

func (a Accreditation) Valid() bool {
	for _, known := range Accreditations {
		if a == known {
			return true
		}
	}
	return false
}
