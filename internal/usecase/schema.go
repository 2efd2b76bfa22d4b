package usecase

import "resume-editor/internal/domain"

// FieldSpec describes one editable field of a section: its canonical key,
// its display label, and an optional legacy key consulted when the
// canonical one is empty. Aliases are read-only; parsing always writes the
// canonical key.
type FieldSpec struct {
	Key   string
	Label string
	Alias string
}

var sectionFields = map[domain.SectionName][]FieldSpec{
	domain.SectionContact: {
		{Key: "location", Label: "Location"},
		{Key: "email", Label: "Email"},
		{Key: "phone", Label: "Phone"},
		{Key: "linkedin_url", Label: "LinkedIn", Alias: "linkedin"},
		{Key: "portfolio_url", Label: "Portfolio", Alias: "portfolio"},
		{Key: "github", Label: "GitHub"},
	},
	domain.SectionExperience: {
		{Key: "company", Label: "Company"},
		{Key: "role", Label: "Role", Alias: "title"},
		{Key: "location", Label: "Location"},
		{Key: "dates", Label: "Dates", Alias: "date"},
	},
	domain.SectionProjects: {
		{Key: "name", Label: "Name"},
		{Key: "tech", Label: "Tech"},
		{Key: "dates", Label: "Dates"},
	},
	domain.SectionLeadership: {
		{Key: "organization", Label: "Organization"},
		{Key: "role", Label: "Role", Alias: "title"},
		{Key: "location", Label: "Location"},
		{Key: "dates", Label: "Dates"},
	},
}

// FieldsFor returns the editable fields of a section in display order.
func FieldsFor(name domain.SectionName) []FieldSpec {
	return sectionFields[name]
}

// Placeholder pair seeded when the user adds a skills category.
const (
	placeholderCategory = "New Category"
	placeholderSkills   = "Skill1, Skill2"
)

// EntryTemplate returns the default entry form appended when the user adds
// a new entry to a list section.
func EntryTemplate(name domain.SectionName) EntryForm {
	switch name {
	case domain.SectionExperience:
		return newEntryForm(name, map[string]string{
			"company":  "New Company",
			"role":     "Role",
			"location": "Location",
			"dates":    "Present",
		}, []string{"New bullet"})
	case domain.SectionProjects:
		return newEntryForm(name, map[string]string{
			"name":  "New Project",
			"tech":  "Tech Stack",
			"dates": "2024",
		}, []string{"New bullet"})
	case domain.SectionLeadership:
		return newEntryForm(name, map[string]string{
			"organization": "Organization",
			"role":         "Role",
			"location":     "Location",
			"dates":        "Dates",
		}, []string{"New bullet"})
	}
	return EntryForm{}
}

func newEntryForm(name domain.SectionName, values map[string]string, bullets []string) EntryForm {
	form := EntryForm{Bullets: append([]string{}, bullets...)}
	for _, fs := range sectionFields[name] {
		form.Fields = append(form.Fields, Field{Key: fs.Key, Label: fs.Label, Value: values[fs.Key]})
	}
	return form
}
