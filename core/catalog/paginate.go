package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidPageSize is returned for a non-positive page size. It signals
// caller misconfiguration and must not be shown to end users.
var ErrInvalidPageSize = errors.New("catalog: page size must be positive")

// Paginate slices one page out of filtered and display-transforms it.
// Pages past the end (or before page 1) yield no items; totalPages is
// never below 1. Neither argument is modified.
func Paginate(filtered []Item, req PageRequest) (PageResult, error) {
	if req.PageSize <= 0 {
		return PageResult{}, fmt.Errorf("%w: got %d", ErrInvalidPageSize, req.PageSize)
	}
	total := len(filtered)
	res := PageResult{
		Items:       []DisplayItem{},
		TotalItems:  total,
		TotalPages:  TotalPages(total, req.PageSize),
		CurrentPage: req.PageNumber,
		PageSize:    req.PageSize,
	}
	// compare by division so huge page numbers or sizes cannot overflow
	if req.PageNumber < 1 || total == 0 || req.PageNumber-1 > (total-1)/req.PageSize {
		return res, nil
	}
	start := (req.PageNumber - 1) * req.PageSize
	end := start + min(req.PageSize, total-start)
	res.Items = make([]DisplayItem, 0, end-start)
	for _, it := range filtered[start:end] {
		res.Items = append(res.Items, Display(it))
	}
	return res, nil
}

// TotalPages is max(1, ceil(total/size)). size must be positive.
func TotalPages(total, size int) int {
	pages := total / size
	if total%size != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ClampPage moves page into [1, max(totalPages, 1)].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
