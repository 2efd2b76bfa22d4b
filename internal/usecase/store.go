package usecase

import "resume-editor/internal/domain"

// DocumentStore owns the canonical document for one edit session. All
// mutation flows through Commit with a parsed section value; everything
// else reads through Document.
type DocumentStore struct {
	doc *domain.Document
}

func NewDocumentStore(doc *domain.Document) *DocumentStore {
	return &DocumentStore{doc: doc}
}

// Document returns the canonical in-session document.
func (s *DocumentStore) Document() *domain.Document {
	return s.doc
}

// Commit writes a parsed section value into the document.
func (s *DocumentStore) Commit(name domain.SectionName, value interface{}) error {
	return s.doc.SetSection(name, value)
}
