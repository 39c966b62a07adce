package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// PrefixCollegesPage pages through the discovery list: colleges_page:<page>
const PrefixCollegesPage = "colleges_page:"

// PaginationButtons builds the previous / page / next row.
// currentPage is 0-based; nothing is returned for a single page.
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}

	buttons = append(buttons, Button(fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages), Noop))

	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}

	return buttons
}

// AddPagination appends the pagination row, if any
func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	if buttons := PaginationButtons(prefix, currentPage, totalPages); len(buttons) > 0 {
		b.Row(buttons...)
	}
	return b
}

// CollegesPageKeyboard returns nil when the list fits one page
func CollegesPageKeyboard(currentPage, totalPages int) *models.InlineKeyboardMarkup {
	b := NewBuilder().AddPagination(PrefixCollegesPage, currentPage, totalPages)
	if b.IsEmpty() {
		return nil
	}
	return b.Build()
}
