package selectors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ngoconnect/ngoconnect/internal/models"
)

var orgs = []models.Organization{
	{ID: "1", Name: "Food Bank", City: "Pune", Category: "Food", Description: "Meals for families", Status: models.StatusApproved},
	{ID: "2", Name: "Medics United", City: "Mumbai", Category: "Health", Status: models.StatusApproved},
	{ID: "3", Name: "Blanket Drive", City: "Pune", Category: "Shelter", Description: "winter FOOD kits", Status: models.StatusPending},
	{ID: "4", Name: "Open Books", City: "", Category: "Education", Status: models.StatusApproved},
}

func orgIDs(list []models.Organization) []string {
	out := make([]string, 0, len(list))
	for _, o := range list {
		out = append(out, o.ID)
	}
	return out
}

func TestOrganizationView(t *testing.T) {
	tests := []struct {
		name   string
		filter OrganizationFilter
		want   []string
	}{
		{"identity", OrganizationFilter{}, []string{"1", "2", "3", "4"}},
		{"whitespace text is identity", OrganizationFilter{Text: "   "}, []string{"1", "2", "3", "4"}},
		{"text matches name or description case-insensitively", OrganizationFilter{Text: "food"}, []string{"1", "3"}},
		{"city exact", OrganizationFilter{City: "Pune"}, []string{"1", "3"}},
		{"city is not substring", OrganizationFilter{City: "Pun"}, []string{}},
		{"category", OrganizationFilter{Category: "Health"}, []string{"2"}},
		{"status", OrganizationFilter{Status: models.StatusPending}, []string{"3"}},
		{"combined", OrganizationFilter{Text: "food", City: "Pune", Category: "Food"}, []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orgIDs(OrganizationView(orgs, tt.filter)))
		})
	}
}

func TestFilters_Commute(t *testing.T) {
	text := Text[models.Organization]("food", orgName, orgDescription)
	city := Equal("Pune", orgCity)

	a := Filter(Filter(orgs, text), city)
	b := Filter(Filter(orgs, city), text)
	assert.Equal(t, a, b)
	assert.Equal(t, a, Filter(orgs, text, city))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	before := append([]models.Organization(nil), orgs...)
	_ = OrganizationView(orgs, OrganizationFilter{City: "Pune"})
	assert.Equal(t, before, orgs)
}

func TestDistinct(t *testing.T) {
	assert.Equal(t, []string{"Mumbai", "Pune"}, Cities(orgs))
	assert.Equal(t, []string{"Education", "Food", "Health", "Shelter"}, Categories(orgs))
	assert.Empty(t, Cities(nil))
}

func TestRequirementView(t *testing.T) {
	reqs := []models.Requirement{
		{ID: "r1", NGOEmail: "a@ngo.org", Item: "Rice", Description: "50kg", Status: models.StatusApproved},
		{ID: "r2", NGOEmail: "b@ngo.org", Item: "Blankets", Description: "for rice farmers", Status: models.StatusApproved},
		{ID: "r3", NGOEmail: "a@ngo.org", Item: "Rice", Status: models.StatusPending},
	}

	got := RequirementView(reqs, RequirementFilter{Text: "RICE"})
	assert.Len(t, got, 3)

	got = RequirementView(reqs, RequirementFilter{Text: "rice", NGOEmail: "a@ngo.org", Status: models.StatusApproved})
	assert.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)

	assert.Equal(t, []string{"Blankets", "Rice"}, Items(reqs))
}
