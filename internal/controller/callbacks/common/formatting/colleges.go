package formatting

import (
	"fmt"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/filter"
	"github.com/AngelinAnto/OneAdmit/internal/model"
)

// CollegesPerPage is the page size of the discovery list
const CollegesPerPage = 10

// PageCount returns how many pages hold total items, at least one
func PageCount(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// ClampPage keeps page inside [0, pages)
func ClampPage(page, pages int) int {
	return max(0, min(page, pages-1))
}

// CollegeListPage renders one page of the filtered colleges. Every college
// of the result is reachable through some page.
func CollegeListPage(colleges []model.College, f filter.FilterSet, page int) string {
	pages := PageCount(len(colleges), CollegesPerPage)
	page = ClampPage(page, pages)

	var sb strings.Builder
	fmt.Fprintf(&sb, "🔍 <b>%d %s</b>\n", len(colleges), Plural(len(colleges), "college", "colleges"))
	if !f.IsEmpty() {
		sb.WriteString(FilterLine(f))
	}
	sb.WriteString("\n")

	start := page * CollegesPerPage
	end := min(start+CollegesPerPage, len(colleges))
	for i := start; i < end; i++ {
		sb.WriteString(CollegeLine(&colleges[i]))
	}

	if pages > 1 {
		fmt.Fprintf(&sb, "\nPage %d of %d\n", page+1, pages)
	}
	sb.WriteString("\nDetails: /college &lt;code&gt;")
	return sb.String()
}

// FilterLine renders the active predicates of a filter
func FilterLine(f filter.FilterSet) string {
	var parts []string
	if f.Search != "" {
		parts = append(parts, "“"+Escape(f.Search)+"”")
	}
	if len(f.Courses) > 0 {
		parts = append(parts, "📚 "+Escape(strings.Join(f.Courses, ", ")))
	}
	if len(f.Cities) > 0 {
		parts = append(parts, "📍 "+Escape(strings.Join(f.Cities, ", ")))
	}
	if f.HasHostel {
		parts = append(parts, "🏠 hostel")
	}
	if f.HasScholarship {
		parts = append(parts, "🎓 scholarship")
	}
	return "Filters: " + strings.Join(parts, " · ") + "\n"
}
