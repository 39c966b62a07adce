// Package filter implements college discovery: a set of optional predicates
// applied over a list of colleges.
package filter

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/model"
)

// FilterSet holds the discovery predicates. Zero values mean "no constraint".
type FilterSet struct {
	Search         string   `json:"search" form:"search"`
	Courses        []string `json:"courses" form:"course"`
	Cities         []string `json:"cities" form:"city"`
	HasHostel      bool     `json:"has_hostel" form:"has_hostel"`
	HasScholarship bool     `json:"has_scholarship" form:"has_scholarship"`
}

// IsEmpty checks if no predicate is active
func (f FilterSet) IsEmpty() bool {
	return f.searchTerm() == "" &&
		len(f.Courses) == 0 &&
		len(f.Cities) == 0 &&
		!f.HasHostel &&
		!f.HasScholarship
}

func (f FilterSet) searchTerm() string {
	return strings.ToLower(strings.TrimSpace(f.Search))
}

// Apply returns the colleges matching every active predicate, in input order.
// The input slice is never modified.
func Apply(colleges []model.College, f FilterSet) []model.College {
	if f.IsEmpty() {
		return colleges
	}

	search := f.searchTerm()
	result := make([]model.College, 0, len(colleges))
	for i := range colleges {
		if matches(&colleges[i], f, search) {
			result = append(result, colleges[i])
		}
	}
	return result
}

// Matches checks a single college against the filter set
func Matches(college *model.College, f FilterSet) bool {
	return matches(college, f, f.searchTerm())
}

func matches(c *model.College, f FilterSet, search string) bool {
	if search != "" {
		nameMatch := strings.Contains(strings.ToLower(c.Name), search)
		cityMatch := c.City != "" && strings.Contains(strings.ToLower(c.City), search)
		if !nameMatch && !cityMatch {
			return false
		}
	}

	if len(f.Courses) > 0 && !anyCourse(c, f.Courses) {
		return false
	}

	if len(f.Cities) > 0 && !contains(f.Cities, c.City) {
		return false
	}

	if f.HasHostel && !c.HasHostel {
		return false
	}

	if f.HasScholarship && !c.HasScholarship {
		return false
	}

	return true
}

func anyCourse(c *model.College, courses []string) bool {
	for _, course := range courses {
		if c.OffersCourse(course) {
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	if v == "" {
		return false
	}
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseQuery builds a FilterSet from query parameters:
// search, course (repeatable), city (repeatable), has_hostel, has_scholarship.
func ParseQuery(values url.Values) FilterSet {
	return FilterSet{
		Search:         strings.TrimSpace(values.Get("search")),
		Courses:        nonEmpty(values["course"]),
		Cities:         nonEmpty(values["city"]),
		HasHostel:      parseBool(values.Get("has_hostel")),
		HasScholarship: parseBool(values.Get("has_scholarship")),
	}
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

// Facets lists the filter options offered by a set of colleges
type Facets struct {
	Courses []string `json:"courses"`
	Cities  []string `json:"cities"`
}

// CollectFacets returns the sorted distinct courses and cities of the colleges
func CollectFacets(colleges []model.College) Facets {
	courses := make(map[string]struct{})
	cities := make(map[string]struct{})
	for _, c := range colleges {
		for _, course := range c.Courses {
			courses[course] = struct{}{}
		}
		if c.City != "" {
			cities[c.City] = struct{}{}
		}
	}
	return Facets{
		Courses: sortedKeys(courses),
		Cities:  sortedKeys(cities),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
