// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Envelope is the uniform wrapper the exam platform puts around every
// response body. Success must be checked before Data is trusted: a response
// with Success == false carries its reason in Message and ErrorData and its
// Data is meaningless.
type Envelope[T any] struct {
	// Success reports whether the backend accepted and executed the request.
	Success bool `json:"success"`

	// Status mirrors the HTTP status code chosen by the backend.
	Status int `json:"status"`

	// Data is the payload of a successful response.
	Data T `json:"data"`

	// Message is a human-readable summary, present on both outcomes.
	Message string `json:"message"`

	// ErrorData describes an application-level failure.
	ErrorData *ErrorData `json:"errorData,omitempty"`

	// PageableResponse is set by list endpoints that paginate.
	PageableResponse *Pageable `json:"pageableResponse,omitempty"`
}

// ErrorData is the structured failure description carried by an [Envelope]
// whose Success flag is false.
type ErrorData struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
	Details      any    `json:"details,omitempty"`
}

// Pageable is the pagination block returned by list endpoints.
type Pageable struct {
	// Total is the number of items across all pages.
	Total int64 `json:"total"`
	// Current is the zero-based index of the returned page.
	Current int `json:"current"`
	// TotalPages is the number of pages for the requested page size.
	TotalPages int `json:"totalPages"`
	// PerPages is the page size the backend applied.
	PerPages int `json:"perPages"`
}

// Page sizes applied when a request omits or exceeds the size.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest selects a page of a list endpoint. Page is zero-based.
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps the page to zero or more and the size to
// (0, MaxPageSize], substituting DefaultPageSize for a missing size.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// NewPageable builds the pagination block for page of a list holding total
// items.
func NewPageable(page PageRequest, total int64) Pageable {
	page = page.Normalize()
	return Pageable{
		Total:      total,
		Current:    page.Page,
		TotalPages: int((total + int64(page.Size) - 1) / int64(page.Size)),
		PerPages:   page.Size,
	}
}

// Page is a single page of items together with the pagination block the
// backend returned for it. Pageable is zero when the endpoint does not
// paginate.
type Page[T any] struct {
	Items    []T
	Pageable Pageable
}
