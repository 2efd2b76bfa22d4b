package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RegenRecord captures one attempt to rebuild the artifact from an edited
// document.
type RegenRecord struct {
	ID        uuid.UUID       `json:"id"`
	Company   string          `json:"company"`
	Status    string          `json:"status"`
	ViewURL   string          `json:"view_url,omitempty"`
	Document  json.RawMessage `json:"document,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
