package formatting

import (
	"fmt"
	"math"
	"strings"
)

// FormatRupees prints an amount in rupees with Indian digit grouping: ₹1,50,000
func FormatRupees(amount float64) string {
	rupees := int64(math.Round(amount))
	sign := ""
	if rupees < 0 {
		sign = "-"
		rupees = -rupees
	}

	digits := fmt.Sprintf("%d", rupees)
	if len(digits) <= 3 {
		return "₹" + sign + digits
	}

	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)

	return "₹" + sign + strings.Join(groups, ",") + "," + tail
}

// FormatFeesRange prints the annual fee range, or "" when neither bound is known
func FormatFeesRange(lo, hi *float64) string {
	switch {
	case lo != nil && hi != nil:
		return FormatRupees(*lo) + " - " + FormatRupees(*hi)
	case lo != nil:
		return "from " + FormatRupees(*lo)
	case hi != nil:
		return "up to " + FormatRupees(*hi)
	}
	return ""
}
