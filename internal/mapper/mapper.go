package mapper

import (
	"regexp"
	"strconv"

	"github.com/jimezsa/jobsearch/internal/hh"
	"github.com/jimezsa/jobsearch/internal/models"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// StripHTML removes every tag sequence and keeps the text between them as is.
func StripHTML(value string) string {
	return tagPattern.ReplaceAllString(value, "")
}

// salaryWording holds the prefixes used when only one bound is known.
type salaryWording struct {
	fromOnly string
	toOnly   string
}

var (
	listWording   = salaryWording{}
	detailWording = salaryWording{fromOnly: "от ", toOnly: "до "}
)

// ListSalary formats the salary shown on a search result.
func ListSalary(salary *hh.Salary) string {
	return formatSalary(salary, listWording)
}

// DetailSalary formats the salary shown on the detail view.
func DetailSalary(salary *hh.Salary) string {
	return formatSalary(salary, detailWording)
}

func formatSalary(salary *hh.Salary, wording salaryWording) string {
	if salary == nil {
		return ""
	}

	var text string
	switch {
	case salary.From != nil && salary.To != nil:
		text = strconv.Itoa(*salary.From) + " – " + strconv.Itoa(*salary.To)
	case salary.From != nil:
		text = wording.fromOnly + strconv.Itoa(*salary.From)
	case salary.To != nil:
		text = wording.toOnly + strconv.Itoa(*salary.To)
	}

	if text != "" && salary.Currency != nil && *salary.Currency != "" {
		text += " " + *salary.Currency
	}
	return text
}

// MapListItem converts an API listing record into a display item.
func MapListItem(v hh.Vacancy) models.Job {
	job := models.Job{
		ID:      v.ID,
		Title:   v.Name,
		Company: v.Employer.Name,
		Salary:  ListSalary(v.Salary),
	}
	if v.Employer.LogoURLs != nil {
		job.LogoURL = deref(v.Employer.LogoURLs.Medium)
	}
	if v.Snippet != nil {
		job.Requirement = StripHTML(deref(v.Snippet.Requirement))
		job.Responsibility = StripHTML(deref(v.Snippet.Responsibility))
	}
	return job
}

// MapListItems keeps API order.
func MapListItems(items []hh.Vacancy) []models.Job {
	jobs := make([]models.Job, 0, len(items))
	for _, item := range items {
		jobs = append(jobs, MapListItem(item))
	}
	return jobs
}

// MapDetail converts a full vacancy record into the detail view shape.
func MapDetail(v hh.VacancyDetail) models.DetailedJob {
	return models.DetailedJob{
		ID:              v.ID,
		Name:            v.Name,
		Salary:          DetailSalary(v.Salary),
		Description:     StripHTML(v.Description),
		DescriptionHTML: v.Description,
		Address:         DisplayAddress(v.Address),
	}
}

// DisplayAddress returns nil unless city, street and building are all set.
func DisplayAddress(a *hh.Address) *models.Address {
	if a == nil || a.City == "" || a.Street == "" || a.Building == "" {
		return nil
	}
	return &models.Address{City: a.City, Street: a.Street, Building: a.Building}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
