package usecase

import (
	"bytes"
	"encoding/json"

	"resume-editor/internal/domain"
)

// Render builds the editable view for one section of the document. It is
// pure view construction and never mutates the document.
func Render(name domain.SectionName, doc *domain.Document) *View {
	v := &View{Section: name}
	switch name {
	case domain.SectionSummary:
		v.Text = doc.Summary
	case domain.SectionContact:
		for _, fs := range FieldsFor(name) {
			val := doc.Contact[fs.Key]
			if val == "" && fs.Alias != "" {
				val = doc.Contact[fs.Alias]
			}
			v.Fields = append(v.Fields, Field{Key: fs.Key, Label: fs.Label, Value: val})
		}
	case domain.SectionSkills:
		for _, sg := range doc.Skills {
			v.Categories = append(v.Categories, CategoryForm{Name: sg.Category, Skills: sg.Skills})
		}
	case domain.SectionExperience:
		for _, e := range doc.Experience {
			v.Entries = append(v.Entries, newEntryForm(name, map[string]string{
				"company":  e.Company,
				"role":     e.Role,
				"location": e.Location,
				"dates":    e.Dates,
			}, e.Bullets))
		}
	case domain.SectionProjects:
		for _, p := range doc.Projects {
			v.Entries = append(v.Entries, newEntryForm(name, map[string]string{
				"name":  p.Name,
				"tech":  p.Tech,
				"dates": p.Dates,
			}, p.Bullets))
		}
	case domain.SectionLeadership:
		for _, l := range doc.Leadership {
			v.Entries = append(v.Entries, newEntryForm(name, map[string]string{
				"organization": l.Organization,
				"role":         l.Role,
				"location":     l.Location,
				"dates":        l.Dates,
			}, l.Bullets))
		}
	default:
		// fallback mode: unknown sections are edited as raw JSON text
		v.IsRaw = true
		if raw, ok := doc.Section(name).(json.RawMessage); ok && len(raw) > 0 {
			var buf bytes.Buffer
			if err := json.Indent(&buf, raw, "", "  "); err == nil {
				v.Raw = buf.String()
			} else {
				v.Raw = string(raw)
			}
		}
	}
	return v
}
