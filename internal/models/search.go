package models

// SearchParams captures one page request sent to the job source.
type SearchParams struct {
	Query   string
	Page    int
	PerPage int
}
