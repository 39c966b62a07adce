package formatting

import (
	"fmt"
	"html"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/model"
	"github.com/AngelinAnto/OneAdmit/internal/service"
)

// Escape makes user text safe inside the HTML cards below
func Escape(s string) string {
	return html.EscapeString(s)
}

// CollegeLine is the short entry of a college in the discovery list
func CollegeLine(c *model.College) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏛 <b>%s</b> (<code>%s</code>) · %s\n", Escape(c.Name), Escape(c.Code), Escape(c.City))
	if len(c.Courses) > 0 {
		fmt.Fprintf(&sb, "   📚 %s\n", Escape(strings.Join(c.Courses, ", ")))
	}

	var tags []string
	if c.HasHostel {
		tags = append(tags, "🏠 Hostel")
	}
	if c.HasScholarship {
		tags = append(tags, "🎓 Scholarship")
	}
	if c.Ranking != nil {
		tags = append(tags, fmt.Sprintf("🏅 NIRF #%d", *c.Ranking))
	}
	if len(tags) > 0 {
		fmt.Fprintf(&sb, "   %s\n", strings.Join(tags, " · "))
	}
	return sb.String()
}

// CollegeCard is the full college profile
func CollegeCard(c *model.College) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏛 <b>%s</b>\n", Escape(c.Name))
	fmt.Fprintf(&sb, "Code: <code>%s</code>\n", Escape(c.Code))
	fmt.Fprintf(&sb, "📍 %s, %s\n", Escape(c.City), Escape(c.State))
	if c.Address != "" {
		fmt.Fprintf(&sb, "🏠 %s\n", Escape(c.Address))
	}
	if c.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", Escape(c.Description))
	}

	sb.WriteString("\n")
	if len(c.Courses) > 0 {
		fmt.Fprintf(&sb, "📚 Courses: %s\n", Escape(strings.Join(c.Courses, ", ")))
	}
	fmt.Fprintf(&sb, "🧾 Application fee: %s\n", FormatRupees(c.ApplicationFee))
	if fees := FormatFeesRange(c.AnnualFeesMin, c.AnnualFeesMax); fees != "" {
		fmt.Fprintf(&sb, "💵 Annual fees: %s\n", fees)
	}
	if c.HasHostel {
		hostel := "available"
		if c.HostelFees != nil {
			hostel = FormatRupees(*c.HostelFees) + " per year"
		}
		fmt.Fprintf(&sb, "🏠 Hostel: %s\n", hostel)
	}
	if c.HasScholarship {
		details := "available"
		if c.ScholarshipDetails != "" {
			details = Escape(c.ScholarshipDetails)
		}
		fmt.Fprintf(&sb, "🎓 Scholarship: %s\n", details)
	}
	fmt.Fprintf(&sb, "⭐ %s\n", Escape(string(c.Accreditation)))
	if c.Ranking != nil {
		fmt.Fprintf(&sb, "🏅 NIRF rank: %d\n", *c.Ranking)
	}
	if c.ApplicationDeadline != nil {
		fmt.Fprintf(&sb, "⏰ Apply by: %s\n", FormatDate(*c.ApplicationDeadline))
	}

	var contacts []string
	if c.Website != "" {
		contacts = append(contacts, Escape(c.Website))
	}
	if c.Email != "" {
		contacts = append(contacts, Escape(c.Email))
	}
	if c.Phone != "" {
		contacts = append(contacts, Escape(c.Phone))
	}
	if len(contacts) > 0 {
		fmt.Fprintf(&sb, "☎️ %s\n", strings.Join(contacts, " · "))
	}
	if !c.IsActive {
		sb.WriteString("\n🚫 Not accepting applications\n")
	}
	return sb.String()
}

// StudentApplicationCard is an application as the student sees it
func StudentApplicationCard(app *model.Application) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏛 <b>%s</b> · %s\n", Escape(app.CollegeName), Escape(app.Course))
	fmt.Fprintf(&sb, "%s · %s\n", GetApplicationStatusDisplay(app.Status), GetPaymentStatusDisplay(app.PaymentStatus))
	writeExam(&sb, app)
	if app.ResultDate != nil {
		fmt.Fprintf(&sb, "🏆 Results: %s\n", FormatDate(*app.ResultDate))
	}
	fmt.Fprintf(&sb, "ID: <code>%s</code>\n", app.ID)
	return sb.String()
}

// CollegeApplicationCard is an application as the college admin sees it
func CollegeApplicationCard(app *model.Application) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "👤 <b>%s</b> (%s)\n", Escape(app.StudentName), Escape(app.StudentEmail))
	fmt.Fprintf(&sb, "📚 %s\n", Escape(app.Course))
	fmt.Fprintf(&sb, "%s · %s", GetApplicationStatusDisplay(app.Status), GetPaymentStatusDisplay(app.PaymentStatus))
	if app.AmountPaid != nil {
		fmt.Fprintf(&sb, " (%s)", FormatRupees(*app.AmountPaid))
	}
	sb.WriteString("\n")

	var needs []string
	if app.NeedsHostel {
		needs = append(needs, "🏠 hostel")
	}
	if app.NeedsScholarship {
		needs = append(needs, "🎓 scholarship")
	}
	if len(needs) > 0 {
		fmt.Fprintf(&sb, "Needs: %s\n", strings.Join(needs, ", "))
	}
	writeExam(&sb, app)
	fmt.Fprintf(&sb, "📅 Applied: %s\n", FormatDate(app.CreatedAt))
	fmt.Fprintf(&sb, "ID: <code>%s</code>\n", app.ID)
	return sb.String()
}

func writeExam(sb *strings.Builder, app *model.Application) {
	if app.ExamDate == nil {
		return
	}
	fmt.Fprintf(sb, "📝 Exam: %s", FormatDateWithWeekday(*app.ExamDate))
	if app.ExamTime != "" {
		fmt.Fprintf(sb, ", %s", Escape(app.ExamTime))
	}
	sb.WriteString("\n")
}

// SlotLine describes an exam slot with its availability badge
func SlotLine(slot *model.ExamSlot) string {
	status := ""
	if !slot.IsActive {
		status = " · ⏸ inactive"
	}
	return fmt.Sprintf("📝 <b>%s</b>, %s\n   📍 %s · %s%s\n   ID: <code>%s</code>\n",
		FormatDateWithWeekday(slot.Date),
		Escape(slot.ExamTime()),
		Escape(slot.Venue),
		slot.Badge(),
		status,
		slot.ID,
	)
}

func AnnouncementCard(a *model.Announcement) string {
	return fmt.Sprintf("%s <b>%s</b>\n🏛 %s · %s\n\n%s\n",
		GetAnnouncementTypeDisplay(a.Type).Emoji,
		Escape(a.Title),
		Escape(a.CollegeName),
		FormatDate(a.CreatedAt),
		Escape(a.Content),
	)
}

func ProfileCard(p *model.StudentProfile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "👤 <b>%s</b>\n", Escape(p.FullName))
	fmt.Fprintf(&sb, "📧 %s\n", Escape(p.UserEmail))
	fmt.Fprintf(&sb, "📞 %s\n", Escape(p.Phone))
	if p.DateOfBirth != nil {
		fmt.Fprintf(&sb, "🎂 %s\n", FormatDate(*p.DateOfBirth))
	}
	if p.Gender != "" {
		fmt.Fprintf(&sb, "⚧ %s\n", Escape(p.Gender))
	}
	if p.City != "" {
		fmt.Fprintf(&sb, "📍 %s\n", Escape(p.City))
	}
	fmt.Fprintf(&sb, "🏫 %s", Escape(p.Board))
	if p.TwelfthPercentage != nil {
		fmt.Fprintf(&sb, " · 12th: %.1f%%", *p.TwelfthPercentage)
	}
	sb.WriteString("\n")
	if len(p.PreferredCourses) > 0 {
		fmt.Fprintf(&sb, "📚 %s\n", Escape(strings.Join(p.PreferredCourses, ", ")))
	}
	if p.PhotoURL != "" {
		fmt.Fprintf(&sb, "🖼 <a href=\"%s\">photo</a>\n", Escape(p.PhotoURL))
	}
	if !p.IsComplete() {
		sb.WriteString("\n⚠️ Profile incomplete. Colleges need name, phone, date of birth, board and 12th percentage.\n")
	}
	return sb.String()
}

func DashboardText(d *service.Dashboard) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 <b>%s</b>\n\n", Escape(d.College.Name))
	fmt.Fprintf(&sb, "📥 Applications: %d\n", d.TotalApplications)
	fmt.Fprintf(&sb, "⏳ Pending review: %d\n", d.PendingApplications)
	fmt.Fprintf(&sb, "💰 Revenue: %s\n", FormatRupees(d.Revenue))
	fmt.Fprintf(&sb, "📝 Upcoming exam slots: %d\n", d.UpcomingSlots)
	if !d.College.IsActive {
		sb.WriteString("🚫 College is hidden from students\n")
	}

	if len(d.Recent) > 0 {
		sb.WriteString("\n<b>Recent applications</b>\n")
		for _, app := range d.Recent {
			fmt.Fprintf(&sb, "%s %s · %s\n",
				GetApplicationStatusDisplay(app.Status).Emoji, Escape(app.StudentName), Escape(app.Course))
		}
	}
	return sb.String()
}

func HistoryText(app *model.Application, changes []*model.ApplicationStatusChange) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🗂 <b>%s</b> · %s\n\n", Escape(app.StudentName), Escape(app.Course))
	if len(changes) == 0 {
		sb.WriteString("No status changes yet.\n")
		return sb.String()
	}
	for _, c := range changes {
		fmt.Fprintf(&sb, "%s %s → %s (%s)\n",
			FormatDateTime(c.ChangedAt),
			GetApplicationStatusDisplay(c.FromStatus).Text,
			GetApplicationStatusDisplay(c.ToStatus).Text,
			Escape(c.ActorEmail),
		)
	}
	return sb.String()
}
