package model

// Meta is the pagination block the server attaches to every list response.
// The server recomputes it on each fetch; the client's page number is only
// advisory and is corrected from these values.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// ListEnvelope is the wire shape of a list fetch: `{ data: [...], meta: {...} }`.
type ListEnvelope[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// ItemEnvelope is the wire shape of a single-entity fetch: `{ data: {...} }`.
type ItemEnvelope[T any] struct {
	Data T `json:"data"`
}
