package formatting

import "time"

func FormatDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}

func FormatDateTime(t time.Time) string {
	return t.Format("02 Jan 2006 15:04")
}

// FormatDateWithWeekday is used for exam days
func FormatDateWithWeekday(t time.Time) string {
	return t.Format("Mon, 02 Jan 2006")
}

// Plural picks the word form for count
func Plural(count int, one, many string) string {
	if count == 1 {
		return one
	}
	return many
}
