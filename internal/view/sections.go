package view

// Page section ids, in display order.
const (
	SectionConsumer = "cadastro-consumidor"
	SectionSeller   = "cadastro-vendedor"
	SectionProduct  = "cadastro-produto"
)

// Sections is the fixed navigation set. The first one is the default.
var Sections = []Section{
	{ID: SectionConsumer, Title: "Consumer Registration"},
	{ID: SectionSeller, Title: "Seller Registration"},
	{ID: SectionProduct, Title: "Products"},
}

type Section struct {
	ID      string
	Title   string
	Visible bool
}

// Show returns every section with only target visible. An unknown target
// shows the default section.
func Show(target string) []Section {
	if !knownSection(target) {
		target = Sections[0].ID
	}
	out := make([]Section, len(Sections))
	for i, s := range Sections {
		s.Visible = s.ID == target
		out[i] = s
	}
	return out
}

func knownSection(id string) bool {
	for _, s := range Sections {
		if s.ID == id {
			return true
		}
	}
	return false
}
