package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"resume-editor/internal/domain"
	"resume-editor/internal/model"

	"github.com/google/uuid"
)

// DefaultFilename is the fixed output name the rebuild collaborator writes
// the regenerated artifact under.
const DefaultFilename = "Tailored_Resume.pdf"

// RebuildRequest is the payload submitted to the external rebuild
// collaborator.
type RebuildRequest struct {
	ResumeData  json.RawMessage `json:"resume_data"`
	CompanyName string          `json:"company_name"`
	Filename    string          `json:"filename"`
}

// Rebuilder regenerates the artifact from a serialized document and
// returns the new artifact reference.
type Rebuilder interface {
	Rebuild(ctx context.Context, req RebuildRequest) (viewURL string, err error)
}

// HistoryRecorder persists regeneration attempts. A nil recorder disables
// history; failures are logged and never fail a rebuild.
type HistoryRecorder interface {
	Record(ctx context.Context, rec *domain.RegenRecord) error
}

// Coordinator serializes the full document and hands it to the rebuild
// collaborator. On success the edited document strictly replaces the
// persisted snapshot and the artifact reference is updated; on failure
// nothing is persisted.
type Coordinator struct {
	rebuilder Rebuilder
	snapshots SnapshotStore
	history   HistoryRecorder
	filename  string
}

func NewCoordinator(r Rebuilder, snapshots SnapshotStore, history HistoryRecorder, filename string) *Coordinator {
	if filename == "" {
		filename = DefaultFilename
	}
	return &Coordinator{rebuilder: r, snapshots: snapshots, history: history, filename: filename}
}

// Regenerate submits the document under the artifact's stable company key
// and returns the new artifact reference.
func (c *Coordinator) Regenerate(ctx context.Context, doc *domain.Document, company string) (string, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("serialize document: %w", err)
	}
	if err := model.Validate(payload); err != nil {
		// advisory: the collaborator owns final acceptance
		log.Printf("coordinator: document failed schema validation: %v", err)
	}

	viewURL, err := c.rebuilder.Rebuild(ctx, RebuildRequest{
		ResumeData:  payload,
		CompanyName: company,
		Filename:    c.filename,
	})
	if err != nil {
		c.record(ctx, company, "failed", "", payload, err)
		return "", err
	}

	// persisted writes are fire-and-forget: a snapshot-store hiccup must
	// not undo a successful rebuild
	if err := c.snapshots.SaveResult(ctx, doc, viewURL, "success"); err != nil {
		log.Printf("coordinator: warning: failed to persist snapshot: %v", err)
	}
	c.record(ctx, company, "success", viewURL, payload, nil)
	return viewURL, nil
}

func (c *Coordinator) record(ctx context.Context, company, status, viewURL string, doc json.RawMessage, cause error) {
	if c.history == nil {
		return
	}
	rec := &domain.RegenRecord{
		ID:        uuid.New(),
		Company:   company,
		Status:    status,
		ViewURL:   viewURL,
		Document:  doc,
		CreatedAt: time.Now(),
	}
	if cause != nil {
		rec.Error = cause.Error()
	}
	if err := c.history.Record(ctx, rec); err != nil {
		log.Printf("coordinator: warning: failed to record history: %v", err)
	}
}
