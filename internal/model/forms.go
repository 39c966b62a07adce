package model

import (
	"strings"
	"time"
)

// CollegeForm is the editable part of a college profile
type CollegeForm struct {
	Name                string        `json:"name" validate:"required,notblank,max=200"`
	Code                string        `json:"code" validate:"required,notblank,max=32"`
	Description         string        `json:"description" validate:"max=4000"`
	City                string        `json:"city" validate:"required,notblank"`
	State               string        `json:"state"`
	Address             string        `json:"address"`
	Website             string        `json:"website" validate:"omitempty,url"`
	Phone               string        `json:"phone" validate:"omitempty,min=6,max=20"`
	Email               string        `json:"email" validate:"omitempty,email"`
	Courses             []string      `json:"courses" validate:"dive,notblank"`
	ApplicationFee      float64       `json:"application_fee" validate:"gte=0"`
	AnnualFeesMin       *float64      `json:"annual_fees_min" validate:"omitempty,gte=0"`
	AnnualFeesMax       *float64      `json:"annual_fees_max" validate:"omitempty,gte=0"`
	HasHostel           bool          `json:"has_hostel"`
	HostelFees          *float64      `json:"hostel_fees" validate:"omitempty,gte=0"`
	HasScholarship      bool          `json:"has_scholarship"`
	ScholarshipDetails  string        `json:"scholarship_details"`
	Accreditation       Accreditation `json:"accreditation" validate:"omitempty,accreditation"`
	Ranking             *int          `json:"ranking" validate:"omitempty,gte=1"`
	ApplicationDeadline *time.Time    `json:"application_deadline"`
}

// ApplyTo copies the form onto a college, filling defaults
func (f CollegeForm) ApplyTo(c *College) {
	c.Name = strings.TrimSpace(f.Name)
	c.Code = strings.TrimSpace(f.Code)
	c.Description = f.Description
	c.City = strings.TrimSpace(f.City)
	c.State = strings.TrimSpace(f.State)
	if c.State == "" {
		c.State = DefaultCollegeState
	}
	c.Address = f.Address
	c.Website = f.Website
	c.Phone = f.Phone
	c.Email = f.Email
	c.Courses = trimAll(f.Courses)
	c.ApplicationFee = f.ApplicationFee
	c.AnnualFeesMin = f.AnnualFeesMin
	c.AnnualFeesMax = f.AnnualFeesMax
	c.HasHostel = f.HasHostel
	c.HostelFees = f.HostelFees
	c.HasScholarship = f.HasScholarship
	c.ScholarshipDetails = f.ScholarshipDetails
	c.Accreditation = f.Accreditation
	if c.Accreditation == "" {
		c.Accreditation = AccreditationNone
	}
	c.Ranking = f.Ranking
	c.ApplicationDeadline = f.ApplicationDeadline
}

// FormFromCollege is the inverse of ApplyTo, used to edit a single field
func FormFromCollege(c *College) CollegeForm {
	return CollegeForm{
		Name:                c.Name,
		Code:                c.Code,
		Description:         c.Description,
		City:                c.City,
		State:               c.State,
		Address:             c.Address,
		Website:             c.Website,
		Phone:               c.Phone,
		Email:               c.Email,
		Courses:             append([]string(nil), c.Courses...),
		ApplicationFee:      c.ApplicationFee,
		AnnualFeesMin:       c.AnnualFeesMin,
		AnnualFeesMax:       c.AnnualFeesMax,
		HasHostel:           c.HasHostel,
		HostelFees:          c.HostelFees,
		HasScholarship:      c.HasScholarship,
		ScholarshipDetails:  c.ScholarshipDetails,
		Accreditation:       c.Accreditation,
		Ranking:             c.Ranking,
		ApplicationDeadline: c.ApplicationDeadline,
	}
}

type StudentProfileForm struct {
	FullName          string     `json:"full_name" validate:"required,notblank,max=200"`
	Phone             string     `json:"phone" validate:"required,min=6,max=20"`
	DateOfBirth       *time.Time `json:"date_of_birth" validate:"required"`
	Gender            string     `json:"gender" validate:"omitempty,oneof=male female other"`
	City              string     `json:"city"`
	Board             string     `json:"board" validate:"required,notblank"`
	TwelfthPercentage *float64   `json:"twelfth_percentage" validate:"required,gte=0,lte=100"`
	PreferredCourses  []string   `json:"preferred_courses" validate:"dive,notblank"`
}

func (f StudentProfileForm) ApplyTo(p *StudentProfile) {
	p.FullName = strings.TrimSpace(f.FullName)
	p.Phone = strings.TrimSpace(f.Phone)
	p.DateOfBirth = f.DateOfBirth
	p.Gender = f.Gender
	p.City = strings.TrimSpace(f.City)
	p.Board = strings.TrimSpace(f.Board)
	p.TwelfthPercentage = f.TwelfthPercentage
	p.PreferredCourses = trimAll(f.PreferredCourses)
}

func FormFromProfile(p *StudentProfile) StudentProfileForm {
	return StudentProfileForm{
		FullName:          p.FullName,
		Phone:             p.Phone,
		DateOfBirth:       p.DateOfBirth,
		Gender:            p.Gender,
		City:              p.City,
		Board:             p.Board,
		TwelfthPercentage: p.TwelfthPercentage,
		PreferredCourses:  append([]string(nil), p.PreferredCourses...),
	}
}

// ExamSlotForm describes a new exam slot. Times are HH:MM.
type ExamSlotForm struct {
	Date       time.Time `json:"date" validate:"required"`
	StartTime  string    `json:"start_time" validate:"required,clock"`
	EndTime    string    `json:"end_time" validate:"required,clock"`
	Venue      string    `json:"venue" validate:"required,notblank,max=300"`
	TotalSeats int       `json:"total_seats" validate:"gte=1"`
}

type AnnouncementForm struct {
	Title   string           `json:"title" validate:"required,notblank,max=200"`
	Content string           `json:"content" validate:"required,notblank"`
	Type    AnnouncementType `json:"type" validate:"required,announcement_type"`
}

type EmailForm struct {
	Email string `json:"email" validate:"required,email"`
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
