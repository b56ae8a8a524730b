package models

// Job is the normalized, display-ready search result.
type Job struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Company        string `json:"company"`
	Salary         string `json:"salary,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
	Requirement    string `json:"requirement,omitempty"`
	Responsibility string `json:"responsibility,omitempty"`
}

// DetailedJob is the normalized single vacancy shown on the detail view.
type DetailedJob struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Salary          string   `json:"salary,omitempty"`
	Description     string   `json:"description"`
	DescriptionHTML string   `json:"-"`
	Address         *Address `json:"address,omitempty"`
}

// Address is only set on DetailedJob when every part is non-empty.
type Address struct {
	City     string `json:"city"`
	Street   string `json:"street"`
	Building string `json:"building"`
}

func (a Address) String() string {
	return a.City + ", " + a.Street + ", " + a.Building
}
