package domain

// SectionName identifies one independently-typed region of a resume
// document. The set of typed sections is closed; any other name is carried
// as an opaque raw section.
type SectionName string

const (
	SectionSummary    SectionName = "summary"
	SectionContact    SectionName = "contact"
	SectionSkills     SectionName = "skills"
	SectionExperience SectionName = "experience"
	SectionProjects   SectionName = "projects"
	SectionLeadership SectionName = "leadership"
)

// KnownSections returns the typed sections in canonical display order.
func KnownSections() []SectionName {
	return []SectionName{
		SectionSummary,
		SectionContact,
		SectionSkills,
		SectionExperience,
		SectionProjects,
		SectionLeadership,
	}
}

// Known reports whether s is one of the typed sections.
func (s SectionName) Known() bool {
	switch s {
	case SectionSummary, SectionContact, SectionSkills,
		SectionExperience, SectionProjects, SectionLeadership:
		return true
	}
	return false
}
