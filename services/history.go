package services

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/shivamkr-03/plantGuardAI/models"
)

// historyListLimit caps listings; there is no pagination beyond it.
const historyListLimit = 500

// NewHistoryEntry is the write-side payload. Treatment and Metadata are
// opaque JSON documents stored serialized; nil means absent.
type NewHistoryEntry struct {
	Label      string
	Confidence *float64
	Treatment  json.RawMessage
	Metadata   json.RawMessage
}

type HistoryService interface {
	Record(ctx context.Context, userID uint, entry NewHistoryEntry) (*models.PredictionHistory, error)
	List(ctx context.Context, userID uint) ([]models.HistoryEntryResponse, error)
}

type historyService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) HistoryService {
	return &historyService{db: db}
}

// Record persists one prediction result. Writes are strict: a storage failure
// is returned to the caller, who decides whether it is fatal.
func (s *historyService) Record(ctx context.Context, userID uint, entry NewHistoryEntry) (*models.PredictionHistory, error) {
	row := models.PredictionHistory{
		UserID:        userID,
		Label:         entry.Label,
		Confidence:    entry.Confidence,
		Treatment:     serializeBlob(entry.Treatment),
		ExtraMetadata: serializeBlob(entry.Metadata),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns up to 500 most-recent entries, newest first. The id tiebreak
// keeps the order strict when timestamps collide within a clock tick.
func (s *historyService) List(ctx context.Context, userID uint) ([]models.HistoryEntryResponse, error) {
	var rows []models.PredictionHistory
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(historyListLimit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]models.HistoryEntryResponse, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].AsResponse())
	}
	return entries, nil
}

func serializeBlob(raw json.RawMessage) *string {
	if raw == nil {
		return nil
	}
	s := string(raw)
	return &s
}
