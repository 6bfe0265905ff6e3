package renderer

import "github.com/marwank/zakah"

// PersonRow is one person in the store.
type PersonRow struct {
	ID       string
	Name     string
	Active   bool
	Holdings int
	Payments int
}

// People is the pre-formatted view of everyone in the store.
type People struct {
	Rows []PersonRow
}

// BuildPeople formats the person list for rendering.
func BuildPeople(people []zakah.Person, activeID string) *People {
	v := &People{}
	for _, p := range people {
		v.Rows = append(v.Rows, PersonRow{
			ID:       p.ID,
			Name:     p.Name,
			Active:   p.ID == activeID,
			Holdings: len(p.Data.CurrencyHoldings) + len(p.Data.MetalHoldings),
			Payments: len(p.Data.Payments),
		})
	}
	return v
}

// RenderPeople renders the People view to a markdown string.
func RenderPeople(p *People) string {
	return renderTemplate("people", "people.md", nil, p)
}
