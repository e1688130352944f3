package selectors

import "github.com/ngoconnect/ngoconnect/internal/models"

// OrganizationFilter narrows a list of organizations
type OrganizationFilter struct {
	Text     string
	City     string
	Category string
	Status   models.Status
}

func orgName(o models.Organization) string        { return o.Name }
func orgDescription(o models.Organization) string { return o.Description }
func orgCity(o models.Organization) string        { return o.City }
func orgCategory(o models.Organization) string    { return o.Category }
func orgStatus(o models.Organization) string      { return string(o.Status) }

// OrganizationView applies f to orgs. Text matches name or description.
func OrganizationView(orgs []models.Organization, f OrganizationFilter) []models.Organization {
	return Filter(orgs,
		Text(f.Text, orgName, orgDescription),
		Equal(f.City, orgCity),
		Equal(f.Category, orgCategory),
		Equal(string(f.Status), orgStatus),
	)
}

// Cities returns the distinct cities of orgs, sorted
func Cities(orgs []models.Organization) []string {
	return Distinct(orgs, orgCity)
}

// Categories returns the distinct categories of orgs, sorted
func Categories(orgs []models.Organization) []string {
	return Distinct(orgs, orgCategory)
}

// RequirementFilter narrows a list of requirements
type RequirementFilter struct {
	Text     string
	NGOEmail string
	Status   models.Status
}

func reqItem(r models.Requirement) string        { return r.Item }
func reqDescription(r models.Requirement) string { return r.Description }
func reqOwner(r models.Requirement) string       { return r.NGOEmail }
func reqStatus(r models.Requirement) string      { return string(r.Status) }

// RequirementView applies f to reqs. Text matches item or description.
func RequirementView(reqs []models.Requirement, f RequirementFilter) []models.Requirement {
	return Filter(reqs,
		Text(f.Text, reqItem, reqDescription),
		Equal(f.NGOEmail, reqOwner),
		Equal(string(f.Status), reqStatus),
	)
}

// Items returns the distinct requirement items, sorted
func Items(reqs []models.Requirement) []string {
	return Distinct(reqs, reqItem)
}
