package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Paging defaults and limits.
const (
	DefaultCardPageSize = 5
	DefaultUserPageSize = 3
	MaxPageSize         = 100
)

// Sort directions accepted by [CardFilter].
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// ErrInvalidFilter is returned by [CardFilter.Validate] and [Page.Validate].
var ErrInvalidFilter = errors.New("invalid filter")

// cardSortColumns maps API sort fields to table columns.
var cardSortColumns = map[string]string{
	"id":             "c.id",
	"balance":        "c.balance",
	"status":         "c.status",
	"validityPeriod": "c.validity_period",
}

// Page is a zero-based page request.
type Page struct {
	Page int
	Size int
}

// Offset returns the number of rows to skip.
func (p Page) Offset() uint64 {
	return uint64(p.Page) * uint64(p.Size)
}

// Validate checks page ≥ 0, size within 1..MaxPageSize and that the offset
// fits a signed 64-bit OFFSET.
func (p Page) Validate() error {
	if p.Page < 0 {
		return fmt.Errorf("%w: page must not be negative", ErrInvalidFilter)
	}
	if p.Size < 1 || p.Size > MaxPageSize {
		return fmt.Errorf("%w: size must be in range 1..%d", ErrInvalidFilter, MaxPageSize)
	}
	if int64(p.Page) > math.MaxInt64/int64(p.Size) {
		return fmt.Errorf("%w: page is too large", ErrInvalidFilter)
	}
	return nil
}

// CardFilter selects, sorts and pages cards.
// OwnerID and RequestedStatus are honoured only for administrators.
type CardFilter struct {
	Status          *CardStatus
	OwnerID         *uuid.UUID
	RequestedStatus *CardStatus
	SortBy          string
	SortDirection   string
	Page
	// Fields limits the response to the named card fields.
	Fields []string
}

// Normalize applies the default page size when none was requested.
func (f *CardFilter) Normalize() {
	if f.Size == 0 {
		f.Size = DefaultCardPageSize
	}
}

// Validate checks paging, sort field and sort direction.
func (f CardFilter) Validate() error {
	if err := f.Page.Validate(); err != nil {
		return err
	}
	if f.SortBy != "" {
		if _, ok := cardSortColumns[f.SortBy]; !ok {
			return fmt.Errorf("%w: unsupported sort field %q", ErrInvalidFilter, f.SortBy)
		}
	}
	if f.SortDirection != "" && f.SortDirection != SortAsc && f.SortDirection != SortDesc {
		return fmt.Errorf("%w: direction must be ASC or DESC", ErrInvalidFilter)
	}
	if f.Status != nil && !f.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, *f.Status)
	}
	if f.RequestedStatus != nil && !f.RequestedStatus.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, *f.RequestedStatus)
	}
	return nil
}

// OrderBy returns the ORDER BY clause for the filter, or an empty string
// when no sort field was requested.
func (f CardFilter) OrderBy() string {
	col, ok := cardSortColumns[f.SortBy]
	if !ok {
		return ""
	}
	if f.SortDirection == SortDesc {
		return col + " DESC"
	}
	return col + " ASC"
}

// OwnOnly restricts the filter to the cards of ownerID, dropping the
// administrator-only criteria.
func (f CardFilter) OwnOnly(ownerID uuid.UUID) CardFilter {
	f.OwnerID = &ownerID
	f.RequestedStatus = nil
	return f
}
