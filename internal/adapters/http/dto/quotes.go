package dto

// ListQuotesQuery holds the query parameters for quote listings.
// Pointers distinguish "absent" from "zero": a missing filter means no
// filtering, an explicit non-positive value is rejected.
type ListQuotesQuery struct {
	Season  *int `form:"season"  json:"season"  validate:"omitempty,min=1"`
	Episode *int `form:"episode" json:"episode" validate:"omitempty,min=1"`
}

// SearchQuotesQuery holds the query parameters for quote search.
// Queries shorter than three characters are rejected at the boundary;
// the index additionally treats trimmed queries below the minimum as
// matching nothing.
type SearchQuotesQuery struct {
	Query string `form:"query" json:"query" validate:"required,min=3"`
}
