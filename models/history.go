package models

import (
	"encoding/json"
	"time"
)

// PredictionHistory rows are written once and never mutated. Treatment and
// ExtraMetadata hold serialized JSON; rows written by older deployments may
// contain arbitrary text, which the read path must tolerate.
type PredictionHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
	Label         string    `gorm:"size:200" json:"label"`
	Confidence    *float64  `json:"confidence"`
	Treatment     *string   `gorm:"type:text" json:"-"`
	ExtraMetadata *string   `gorm:"type:text" json:"-"`
}

func (PredictionHistory) TableName() string { return "prediction_history" }

// HistoryEntryResponse is the wire form of a history row. Treatment and
// Metadata carry the decoded JSON document when the stored text parses, and
// the raw stored string otherwise, so callers can tell structured payloads
// from legacy unparsed ones by type.
type HistoryEntryResponse struct {
	ID         uint        `json:"id"`
	UserID     uint        `json:"user_id"`
	CreatedAt  time.Time   `json:"created_at"`
	Label      string      `json:"label"`
	Confidence *float64    `json:"confidence"`
	Treatment  interface{} `json:"treatment"`
	Metadata   interface{} `json:"metadata"`
}

func (h *PredictionHistory) AsResponse() HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:         h.ID,
		UserID:     h.UserID,
		CreatedAt:  h.CreatedAt,
		Label:      h.Label,
		Confidence: h.Confidence,
		Treatment:  decodeLenient(h.Treatment),
		Metadata:   decodeLenient(h.ExtraMetadata),
	}
}

// decodeLenient attempts a structured decode of a stored blob and falls back
// to the raw text when it is not valid JSON. Reads never fail on bad blobs.
func decodeLenient(stored *string) interface{} {
	if stored == nil {
		return nil
	}
	var value interface{}
	if err := json.Unmarshal([]byte(*stored), &value); err != nil {
		return *stored
	}
	return value
}

type CreateHistoryRequest struct {
	Label      string          `json:"label" binding:"required"`
	Confidence *float64        `json:"confidence"`
	Treatment  json.RawMessage `json:"treatment"`
	Metadata   json.RawMessage `json:"metadata"`
}

type PredictResponse struct {
	Label          string          `json:"label"`
	ClassIndex     int             `json:"class_index"`
	Confidence     float64         `json:"confidence"`
	Treatment      json.RawMessage `json:"treatment"`
	SavedHistoryID *uint           `json:"saved_history_id,omitempty"`
}
