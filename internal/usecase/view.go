package usecase

import "resume-editor/internal/domain"

// Field is one labeled text input in an editable view.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// EntryForm is the editable block for one list-section entry.
type EntryForm struct {
	Fields  []Field  `json:"fields"`
	Bullets []string `json:"bullets"`
}

// field reads a value by key, tolerating removed inputs: missing keys read
// as the empty string so one lost field never fails a whole parse.
func (f EntryForm) field(key string) string {
	for _, fl := range f.Fields {
		if fl.Key == key {
			return fl.Value
		}
	}
	return ""
}

// CategoryForm is the editable block for one skills category. Renaming the
// category is done by editing Name directly.
type CategoryForm struct {
	Name   string `json:"name"`
	Skills string `json:"skills"`
}

// View is the editable projection of one section. It is transient: user
// edits and the add/remove affordances touch only the view until a parse
// commits it back into the canonical document.
type View struct {
	Section    domain.SectionName `json:"section"`
	Text       string             `json:"text,omitempty"`
	Fields     []Field            `json:"fields,omitempty"`
	Categories []CategoryForm     `json:"categories,omitempty"`
	Entries    []EntryForm        `json:"entries,omitempty"`
	Raw        string             `json:"raw,omitempty"`
	IsRaw      bool               `json:"is_raw,omitempty"`
}

// AddEntry appends a fresh default-template entry to the live view. The
// entry is not committed until the next parse.
func (v *View) AddEntry() {
	v.Entries = append(v.Entries, EntryTemplate(v.Section))
}

// RemoveEntry drops the entry block at i from the live view.
func (v *View) RemoveEntry(i int) {
	if i < 0 || i >= len(v.Entries) {
		return
	}
	v.Entries = append(v.Entries[:i], v.Entries[i+1:]...)
}

// AddBullet appends an empty bullet row to the given entry.
func (v *View) AddBullet(entry int) {
	if entry < 0 || entry >= len(v.Entries) {
		return
	}
	v.Entries[entry].Bullets = append(v.Entries[entry].Bullets, "")
}

// RemoveBullet drops one bullet row from the given entry.
func (v *View) RemoveBullet(entry, i int) {
	if entry < 0 || entry >= len(v.Entries) {
		return
	}
	bs := v.Entries[entry].Bullets
	if i < 0 || i >= len(bs) {
		return
	}
	v.Entries[entry].Bullets = append(bs[:i], bs[i+1:]...)
}

// AddCategory appends a placeholder skills category to the live view.
func (v *View) AddCategory() {
	v.Categories = append(v.Categories, CategoryForm{Name: placeholderCategory, Skills: placeholderSkills})
}

// RemoveCategory drops the category block at i from the live view.
func (v *View) RemoveCategory(i int) {
	if i < 0 || i >= len(v.Categories) {
		return
	}
	v.Categories = append(v.Categories[:i], v.Categories[i+1:]...)
}
