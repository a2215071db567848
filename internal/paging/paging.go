// Package paging computes page offsets and total-page counts for the list
// views.
package paging

// Clamp normalizes a requested 1-indexed page number.
func Clamp(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset returns the row offset for a 1-indexed page.
func Offset(page, size int) int {
	return (Clamp(page) - 1) * size
}

// TotalPages returns ceil(total/size), with a minimum of 1 so an empty result
// still renders as page 1 of 1.
func TotalPages(total, size int) int {
	pages := (total + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}
