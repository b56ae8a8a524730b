package hh

// SearchPage is one page of the /vacancies listing.
type SearchPage struct {
	Items   []Vacancy `json:"items"`
	Found   int       `json:"found"`
	Pages   int       `json:"pages"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
}

// Vacancy is a listing record as returned by /vacancies.
type Vacancy struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Salary   *Salary  `json:"salary"`
	Employer Employer `json:"employer"`
	Snippet  *Snippet `json:"snippet"`
}

type Salary struct {
	From     *int    `json:"from"`
	To       *int    `json:"to"`
	Currency *string `json:"currency"`
	Gross    *bool   `json:"gross"`
}

type Employer struct {
	Name     string    `json:"name"`
	LogoURLs *LogoURLs `json:"logo_urls"`
}

// LogoURLs is keyed by pixel size in the API payload.
type LogoURLs struct {
	Original *string `json:"original"`
	Medium   *string `json:"240"`
	Small    *string `json:"90"`
}

type Snippet struct {
	Requirement    *string `json:"requirement"`
	Responsibility *string `json:"responsibility"`
}

// VacancyDetail is the full record returned by /vacancies/{id}.
type VacancyDetail struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Salary      *Salary  `json:"salary"`
	Description string   `json:"description"`
	Address     *Address `json:"address"`
}

type Address struct {
	City     string `json:"city"`
	Street   string `json:"street"`
	Building string `json:"building"`
}
