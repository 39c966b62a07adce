package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AngelinAnto/OneAdmit/internal/filter"
	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/service"
	"github.com/google/uuid"
)

// errUsage makes a handler print the command's usage line
var errUsage = errors.New("wrong command arguments")

// commandArgs drops the leading /command (and @botname) from a message text
func commandArgs(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text
	}
	_, rest, _ := strings.Cut(text, " ")
	return strings.TrimSpace(rest)
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%q is not a valid ID: %w", raw, errUsage)
	}
	return id, nil
}

var dateLayouts = []string{"2006-01-02", "02.01.2006", "02/01/2006"}

// parseDate accepts YYYY-MM-DD, DD.MM.YYYY and DD/MM/YYYY, returning UTC midnight
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q is not a date: %w", raw, errUsage)
}

// parseYesNo reads the answers of yes/no dialog questions
func parseYesNo(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true", "1", "on":
		return true, nil
	case "no", "n", "false", "0", "off":
		return false, nil
	}
	return false, fmt.Errorf("answer yes or no: %w", errUsage)
}

// parseAmount reads a rupee amount, allowing "₹" and thousands separators
func parseAmount(raw string) (float64, error) {
	cleaned := strings.NewReplacer("₹", "", ",", "", " ", "").Replace(raw)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an amount: %w", raw, errUsage)
	}
	return v, nil
}

// splitList splits a comma separated answer, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// isSkip checks if a dialog answer skips an optional question
func isSkip(raw string) bool {
	raw = strings.TrimSpace(raw)
	return raw == "-" || strings.EqualFold(raw, "skip")
}

// parseCollegeQuery turns "/colleges" arguments into a filter.
// Segments are separated by ";": course=X, city=X, hostel, scholarship,
// search=X or any other text, which is searched in names and cities.
func parseCollegeQuery(args string) filter.FilterSet {
	values := url.Values{}
	for _, segment := range strings.Split(args, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		key, value, hasValue := strings.Cut(segment, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch {
		case hasValue && (key == "course" || key == "city" || key == "search"):
			values.Add(key, value)
		case !hasValue && key == "hostel":
			values.Set("has_hostel", "true")
		case !hasValue && key == "scholarship":
			values.Set("has_scholarship", "true")
		default:
			values.Set("search", segment)
		}
	}
	return filter.ParseQuery(values)
}

// parseApply reads "<code> <course...> [hostel] [scholarship]"
func parseApply(args string) (service.ApplyRequest, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return service.ApplyRequest{}, errUsage
	}

	req := service.ApplyRequest{CollegeCode: fields[0]}
	course := fields[1:]
	for len(course) > 1 {
		last := strings.ToLower(course[len(course)-1])
		if last == "hostel" {
			req.NeedsHostel = true
		} else if last == "scholarship" {
			req.NeedsScholarship = true
		} else {
			break
		}
		course = course[:len(course)-1]
	}
	req.Course = strings.Join(course, " ")

	return req, nil
}

// parseStatus accepts "under_review" as well as "under review"
func parseStatus(raw string) model.ApplicationStatus {
	return model.ApplicationStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_"))
}

// parseSetPayment reads "<application> <status> [payment id] [amount]"
func parseSetPayment(args string) (uuid.UUID, service.PaymentUpdate, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 || len(fields) > 4 {
		return uuid.Nil, service.PaymentUpdate{}, errUsage
	}

	id, err := parseID(fields[0])
	if err != nil {
		return uuid.Nil, service.PaymentUpdate{}, err
	}

	upd := service.PaymentUpdate{Status: model.PaymentStatus(strings.ToLower(fields[1]))}
	if len(fields) >= 3 {
		upd.PaymentID = fields[2]
	}
	if len(fields) == 4 {
		amount, err := parseAmount(fields[3])
		if err != nil {
			return uuid.Nil, service.PaymentUpdate{}, err
		}
		upd.AmountPaid = &amount
	}

	return id, upd, nil
}

// parseAddSlot reads "<date> <start> <end> <seats> <venue...>"
func parseAddSlot(args string) (model.ExamSlotForm, error) {
	fields := strings.Fields(args)
	if len(fields) < 5 {
		return model.ExamSlotForm{}, errUsage
	}

	date, err := parseDate(fields[0])
	if err != nil {
		return model.ExamSlotForm{}, err
	}
	seats, err := strconv.Atoi(fields[3])
	if err != nil {
		return model.ExamSlotForm{}, fmt.Errorf("%q is not a number of seats: %w", fields[3], errUsage)
	}

	return model.ExamSlotForm{
		Date:       date,
		StartTime:  fields[1],
		EndTime:    fields[2],
		TotalSeats: seats,
		Venue:      strings.Join(fields[4:], " "),
	}, nil
}

// parseAnnounce reads "<type> <title> | <content>"
func parseAnnounce(args string) (model.AnnouncementForm, error) {
	kind, rest, ok := strings.Cut(strings.TrimSpace(args), " ")
	if !ok {
		return model.AnnouncementForm{}, errUsage
	}
	title, content, ok := strings.Cut(rest, "|")
	if !ok {
		return model.AnnouncementForm{}, errUsage
	}

	return model.AnnouncementForm{
		Type:    model.AnnouncementType(strings.ToLower(kind)),
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}, nil
}

// collegeFields are the fields /editcollege can change
var collegeFields = []string{
	"name", "description", "city", "state", "address", "website", "phone", "email",
	"courses", "fee", "fees", "hostel", "hostelfees", "scholarship", "scholarshipdetails",
	"accreditation", "ranking", "deadline",
}

// applyCollegeField sets one field of a college form from its text value.
// An empty value clears optional fields.
func applyCollegeField(form *model.CollegeForm, field, value string) error {
	value = strings.TrimSpace(value)

	switch strings.ToLower(field) {
	case "name":
		form.Name = value
	case "description":
		form.Description = value
	case "city":
		form.City = value
	case "state":
		form.State = value
	case "address":
		form.Address = value
	case "website":
		form.Website = value
	case "phone":
		form.Phone = value
	case "email":
		form.Email = value
	case "courses":
		form.Courses = splitList(value)
	case "fee":
		fee, err := parseAmount(value)
		if err != nil {
			return err
		}
		form.ApplicationFee = fee
	case "fees":
		lo, hi, err := parseRange(value)
		if err != nil {
			return err
		}
		form.AnnualFeesMin, form.AnnualFeesMax = lo, hi
	case "hostel":
		v, err := parseYesNo(value)
		if err != nil {
			return err
		}
		form.HasHostel = v
	case "hostelfees":
		v, err := optionalAmount(value)
		if err != nil {
			return err
		}
		form.HostelFees = v
	case "scholarship":
		v, err := parseYesNo(value)
		if err != nil {
			return err
		}
		form.HasScholarship = v
	case "scholarshipdetails":
		form.ScholarshipDetails = value
	case "accreditation":
		form.Accreditation = model.Accreditation(value)
		for _, known := range model.Accreditations {
			if strings.EqualFold(string(known), value) {
				form.Accreditation = known
			}
		}
	case "ranking":
		if value == "" {
			form.Ranking = nil
			return nil
		}
		rank, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%q is not a rank: %w", value, errUsage)
		}
		form.Ranking = &rank
	case "deadline":
		if value == "" {
			form.ApplicationDeadline = nil
			return nil
		}
		deadline, err := parseDate(value)
		if err != nil {
			return err
		}
		form.ApplicationDeadline = &deadline
	default:
		return fmt.Errorf("unknown field %q: %w", field, errUsage)
	}
	return nil
}

// parseRange reads "min-max"; either side may be empty
func parseRange(raw string) (*float64, *float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil, nil
	}
	loRaw, hiRaw, ok := strings.Cut(raw, "-")
	if !ok {
		return nil, nil, fmt.Errorf("use min-max, e.g. 50000-120000: %w", errUsage)
	}
	lo, err := optionalAmount(loRaw)
	if err != nil {
		return nil, nil, err
	}
	hi, err := optionalAmount(hiRaw)
	if err != nil {
		return nil, nil, err
	}
	return lo, hi, nil
}

func optionalAmount(raw string) (*float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := parseAmount(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
