package usecase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"resume-editor/internal/domain"
)

// ErrRawSection reports an unknown-section edit whose text is not valid
// JSON. The caller must keep the previous canonical value for that section.
var ErrRawSection = errors.New("raw section is not valid JSON")

// Parse converts an edited view back into canonical section data; the
// inverse of Render. A non-nil error means the section must not be
// overwritten. An empty map or list is a normal, overwritable result.
func Parse(v *View) (interface{}, error) {
	switch v.Section {
	case domain.SectionSummary:
		// keep user whitespace exactly as typed
		return v.Text, nil
	case domain.SectionContact:
		m := map[string]string{}
		for _, f := range v.Fields {
			if val := strings.TrimSpace(f.Value); val != "" {
				m[f.Key] = val
			}
		}
		return m, nil
	case domain.SectionSkills:
		// current display order, renamed categories honored; duplicates
		// after a rename are passed through untouched
		out := domain.SkillGroups{}
		for _, c := range v.Categories {
			out = append(out, domain.SkillGroup{
				Category: strings.TrimSpace(c.Name),
				Skills:   strings.TrimSpace(c.Skills),
			})
		}
		return out, nil
	case domain.SectionExperience:
		out := make([]domain.ExperienceEntry, 0, len(v.Entries))
		for _, e := range v.Entries {
			out = append(out, domain.ExperienceEntry{
				Company:  strings.TrimSpace(e.field("company")),
				Role:     strings.TrimSpace(e.field("role")),
				Location: strings.TrimSpace(e.field("location")),
				Dates:    strings.TrimSpace(e.field("dates")),
				Bullets:  cleanBullets(e.Bullets),
			})
		}
		return out, nil
	case domain.SectionProjects:
		out := make([]domain.ProjectEntry, 0, len(v.Entries))
		for _, e := range v.Entries {
			out = append(out, domain.ProjectEntry{
				Name:    strings.TrimSpace(e.field("name")),
				Tech:    strings.TrimSpace(e.field("tech")),
				Dates:   strings.TrimSpace(e.field("dates")),
				Bullets: cleanBullets(e.Bullets),
			})
		}
		return out, nil
	case domain.SectionLeadership:
		out := make([]domain.LeadershipEntry, 0, len(v.Entries))
		for _, e := range v.Entries {
			out = append(out, domain.LeadershipEntry{
				Organization: strings.TrimSpace(e.field("organization")),
				Role:         strings.TrimSpace(e.field("role")),
				Location:     strings.TrimSpace(e.field("location")),
				Dates:        strings.TrimSpace(e.field("dates")),
				Bullets:      cleanBullets(e.Bullets),
			})
		}
		return out, nil
	default:
		raw := strings.TrimSpace(v.Raw)
		if raw == "" {
			return nil, fmt.Errorf("%w: section %s is empty", ErrRawSection, v.Section)
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, []byte(raw)); err != nil {
			return nil, fmt.Errorf("%w: section %s: %v", ErrRawSection, v.Section, err)
		}
		return json.RawMessage(buf.Bytes()), nil
	}
}

// cleanBullets trims every bullet row and drops the blank ones.
func cleanBullets(in []string) []string {
	out := make([]string, 0, len(in))
	for _, b := range in {
		if t := strings.TrimSpace(b); t != "" {
			out = append(out, t)
		}
	}
	return out
}
