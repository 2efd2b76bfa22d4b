package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Legacy keys accepted when reading documents produced by older parts of
// the system. They are folded into the canonical key on decode and never
// written back.
var ContactAliases = map[string]string{
	"linkedin":  "linkedin_url",
	"portfolio": "portfolio_url",
}

// ExperienceEntry is one position in the experience section.
type ExperienceEntry struct {
	Company  string   `json:"company,omitempty"`
	Role     string   `json:"role,omitempty"`
	Location string   `json:"location,omitempty"`
	Dates    string   `json:"dates,omitempty"`
	Bullets  []string `json:"bullets,omitempty"`
}

// UnmarshalJSON folds the legacy title/date keys into role/dates.
func (e *ExperienceEntry) UnmarshalJSON(b []byte) error {
	var raw struct {
		Company  string   `json:"company"`
		Role     string   `json:"role"`
		Title    string   `json:"title"`
		Location string   `json:"location"`
		Dates    string   `json:"dates"`
		Date     string   `json:"date"`
		Bullets  []string `json:"bullets"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	e.Company = raw.Company
	e.Role = raw.Role
	if e.Role == "" {
		e.Role = raw.Title
	}
	e.Location = raw.Location
	e.Dates = raw.Dates
	if e.Dates == "" {
		e.Dates = raw.Date
	}
	e.Bullets = raw.Bullets
	return nil
}

// ProjectEntry is one project in the projects section.
type ProjectEntry struct {
	Name    string   `json:"name,omitempty"`
	Tech    string   `json:"tech,omitempty"`
	Dates   string   `json:"dates,omitempty"`
	Bullets []string `json:"bullets,omitempty"`
}

// LeadershipEntry is one role in the leadership section. The wider system
// disagrees on role vs title for these entries; both are accepted on read
// and only role is ever written.
type LeadershipEntry struct {
	Organization string   `json:"organization,omitempty"`
	Role         string   `json:"role,omitempty"`
	Location     string   `json:"location,omitempty"`
	Dates        string   `json:"dates,omitempty"`
	Bullets      []string `json:"bullets,omitempty"`
}

func (e *LeadershipEntry) UnmarshalJSON(b []byte) error {
	var raw struct {
		Organization string   `json:"organization"`
		Role         string   `json:"role"`
		Title        string   `json:"title"`
		Location     string   `json:"location"`
		Dates        string   `json:"dates"`
		Date         string   `json:"date"`
		Bullets      []string `json:"bullets"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	e.Organization = raw.Organization
	e.Role = raw.Role
	if e.Role == "" {
		e.Role = raw.Title
	}
	e.Location = raw.Location
	e.Dates = raw.Dates
	if e.Dates == "" {
		e.Dates = raw.Date
	}
	e.Bullets = raw.Bullets
	return nil
}

// SkillGroup is one named skills category with a comma-delimited skill
// string.
type SkillGroup struct {
	Category string
	Skills   string
}

// SkillGroups keeps the user's category order across JSON round-trips,
// which a plain map cannot. Duplicate categories are passed through
// unchanged.
type SkillGroups []SkillGroup

func (g SkillGroups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sg := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(sg.Category)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(sg.Skills)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (g *SkillGroups) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*g = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("skills: expected object, got %v", tok)
	}
	out := SkillGroups{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var val string
		if err := json.Unmarshal(raw, &val); err != nil {
			// tolerate non-string values from drifting payloads
			val = string(raw)
		}
		out = append(out, SkillGroup{Category: key, Skills: val})
	}
	*g = out
	return nil
}

// Get returns the skill string for the first category with the given name.
func (g SkillGroups) Get(category string) (string, bool) {
	for _, sg := range g {
		if sg.Category == category {
			return sg.Skills, true
		}
	}
	return "", false
}

// RawSection is a top-level section this engine has no schema for. It is
// edited as raw JSON text and otherwise round-tripped untouched.
type RawSection struct {
	Name  SectionName
	Value json.RawMessage
}

// Document is the canonical in-memory resume document: one value per
// section name. Sections with a nil slice/map are treated as absent.
type Document struct {
	Summary    string
	Contact    map[string]string
	Skills     SkillGroups
	Experience []ExperienceEntry
	Projects   []ProjectEntry
	Leadership []LeadershipEntry
	Extra      []RawSection
}

func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	field := func(name string, v interface{}) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal section %s: %w", name, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		k, _ := json.Marshal(name)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(b)
		return nil
	}
	if err := field("summary", d.Summary); err != nil {
		return nil, err
	}
	if d.Contact != nil {
		if err := field("contact", d.Contact); err != nil {
			return nil, err
		}
	}
	if d.Skills != nil {
		if err := field("skills", d.Skills); err != nil {
			return nil, err
		}
	}
	if d.Experience != nil {
		if err := field("experience", d.Experience); err != nil {
			return nil, err
		}
	}
	if d.Projects != nil {
		if err := field("projects", d.Projects); err != nil {
			return nil, err
		}
	}
	if d.Leadership != nil {
		if err := field("leadership", d.Leadership); err != nil {
			return nil, err
		}
	}
	for _, ex := range d.Extra {
		if err := field(string(ex.Name), ex.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *Document) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*d = Document{}
		return nil
	}
	if dl, ok := tok.(json.Delim); !ok || dl != '{' {
		return fmt.Errorf("document: expected object, got %v", tok)
	}
	*d = Document{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode section %s: %w", key, err)
		}
		switch SectionName(key) {
		case SectionSummary:
			if err := json.Unmarshal(raw, &d.Summary); err != nil {
				return fmt.Errorf("section summary: %w", err)
			}
		case SectionContact:
			m, err := decodeContact(raw)
			if err != nil {
				return fmt.Errorf("section contact: %w", err)
			}
			d.Contact = m
		case SectionSkills:
			if err := json.Unmarshal(raw, &d.Skills); err != nil {
				return fmt.Errorf("section skills: %w", err)
			}
		case SectionExperience:
			if err := json.Unmarshal(raw, &d.Experience); err != nil {
				return fmt.Errorf("section experience: %w", err)
			}
		case SectionProjects:
			if err := json.Unmarshal(raw, &d.Projects); err != nil {
				return fmt.Errorf("section projects: %w", err)
			}
		case SectionLeadership:
			if err := json.Unmarshal(raw, &d.Leadership); err != nil {
				return fmt.Errorf("section leadership: %w", err)
			}
		default:
			d.Extra = append(d.Extra, RawSection{Name: SectionName(key), Value: raw})
		}
	}
	return nil
}

func decodeContact(raw json.RawMessage) (map[string]string, error) {
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	for legacy, canonical := range ContactAliases {
		if v, ok := m[legacy]; ok {
			if _, exists := m[canonical]; !exists {
				m[canonical] = v
			}
			delete(m, legacy)
		}
	}
	return m, nil
}

// Section returns the canonical value held for name. Unknown sections
// return their raw JSON, or nil when absent.
func (d *Document) Section(name SectionName) interface{} {
	switch name {
	case SectionSummary:
		return d.Summary
	case SectionContact:
		return d.Contact
	case SectionSkills:
		return d.Skills
	case SectionExperience:
		return d.Experience
	case SectionProjects:
		return d.Projects
	case SectionLeadership:
		return d.Leadership
	default:
		for _, ex := range d.Extra {
			if ex.Name == name {
				return ex.Value
			}
		}
		return nil
	}
}

// SetSection writes a parsed section value. The value's dynamic type must
// match the section's shape.
func (d *Document) SetSection(name SectionName, value interface{}) error {
	switch name {
	case SectionSummary:
		s, ok := value.(string)
		if !ok {
			return sectionTypeError(name, value)
		}
		d.Summary = s
	case SectionContact:
		m, ok := value.(map[string]string)
		if !ok {
			return sectionTypeError(name, value)
		}
		d.Contact = m
	case SectionSkills:
		g, ok := value.(SkillGroups)
		if !ok {
			return sectionTypeError(name, value)
		}
		d.Skills = g
	case SectionExperience:
		es, ok := value.([]ExperienceEntry)
		if !ok {
			return sectionTypeError(name, value)
		}
		d.Experience = es
	case SectionProjects:
		ps, ok := value.([]ProjectEntry)
		if !ok {
			return sectionTypeError(name, value)
		}
		d.Projects = ps
	case SectionLeadership:
		ls, ok := value.([]LeadershipEntry)
		if !ok {
			return sectionTypeError(name, value)
		}
		d.Leadership = ls
	default:
		raw, ok := value.(json.RawMessage)
		if !ok {
			return sectionTypeError(name, value)
		}
		for i, ex := range d.Extra {
			if ex.Name == name {
				d.Extra[i].Value = raw
				return nil
			}
		}
		d.Extra = append(d.Extra, RawSection{Name: name, Value: raw})
	}
	return nil
}

func sectionTypeError(name SectionName, value interface{}) error {
	return fmt.Errorf("section %s: unexpected value type %T", name, value)
}

// Clone returns a structural deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{Summary: d.Summary}
	if d.Contact != nil {
		out.Contact = make(map[string]string, len(d.Contact))
		for k, v := range d.Contact {
			out.Contact[k] = v
		}
	}
	if d.Skills != nil {
		out.Skills = append(SkillGroups{}, d.Skills...)
	}
	if d.Experience != nil {
		out.Experience = make([]ExperienceEntry, len(d.Experience))
		for i, e := range d.Experience {
			e.Bullets = cloneStrings(e.Bullets)
			out.Experience[i] = e
		}
	}
	if d.Projects != nil {
		out.Projects = make([]ProjectEntry, len(d.Projects))
		for i, p := range d.Projects {
			p.Bullets = cloneStrings(p.Bullets)
			out.Projects[i] = p
		}
	}
	if d.Leadership != nil {
		out.Leadership = make([]LeadershipEntry, len(d.Leadership))
		for i, l := range d.Leadership {
			l.Bullets = cloneStrings(l.Bullets)
			out.Leadership[i] = l
		}
	}
	if d.Extra != nil {
		out.Extra = make([]RawSection, len(d.Extra))
		for i, ex := range d.Extra {
			out.Extra[i] = RawSection{
				Name:  ex.Name,
				Value: append(json.RawMessage{}, ex.Value...),
			}
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}
