// Package wire is the single schema between the HTTP contract and the in-app
// models. Wire types use the server's snake_case field names; every type has
// a From* constructor and a Model method so both directions live side by side.
//
// Timestamps are RFC 3339 strings on the wire and time.Time in the models.
package wire

import "github.com/priyankaj04/Gymlogs/internal/models"

// Envelope is the success body shared by every endpoint.
type Envelope[T any] struct {
	Data       T           `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Token      string      `json:"token,omitempty"`
	Message    string      `json:"message,omitempty"`
}

// ErrorBody is the failure body. Either field may be missing.
type ErrorBody struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Text prefers the human-readable message over the error code.
func (b ErrorBody) Text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

type MessageBody struct {
	Message string `json:"message"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func FromPagination(p models.PaginationMeta) *Pagination {
	return &Pagination{Page: p.Page, Limit: p.Limit, Total: p.Total, TotalPages: p.TotalPages}
}

func (p *Pagination) Model() models.PaginationMeta {
	if p == nil {
		return models.PaginationMeta{}
	}
	return models.PaginationMeta{Page: p.Page, Limit: p.Limit, Total: p.Total, TotalPages: p.TotalPages}
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// cloneStrings copies in, keeping nil as nil so null stays null on the wire.
func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// convertAll maps in through convert, keeping nil as nil.
func convertAll[In, Out any](in []In, convert func(In) Out) []Out {
	if in == nil {
		return nil
	}
	out := make([]Out, 0, len(in))
	for _, v := range in {
		out = append(out, convert(v))
	}
	return out
}
