package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/shivamkr-03/plantGuardAI/inference"
	"github.com/shivamkr-03/plantGuardAI/middleware"
	"github.com/shivamkr-03/plantGuardAI/models"
)

// Classifier is the opaque inference function: tensor in, class scores out.
// *inference.Model satisfies it; tests substitute their own.
type Classifier interface {
	Run(pixels []float32) (scores []float32, shape []int64, err error)
}

type PredictService interface {
	Predict(ctx context.Context, imageBytes []byte, ident middleware.TokenIdentity) (*models.PredictResponse, error)
}

type predictService struct {
	model    Classifier
	pre      *inference.Preprocessor
	resolver *inference.Resolver
	history  HistoryService
}

// NewPredictService wires the prediction pipeline. model may be nil when
// loading failed at startup; the service then reports ErrModelUnavailable
// per request while the rest of the API keeps working.
func NewPredictService(model Classifier, pre *inference.Preprocessor, resolver *inference.Resolver, history HistoryService) PredictService {
	return &predictService{
		model:    model,
		pre:      pre,
		resolver: resolver,
		history:  history,
	}
}

// Predict runs decode → inference → score normalization → label/treatment
// resolution, then attaches a history record best-effort. Only decode and
// inference failures are hard errors; a missing catalog entry, an anonymous
// or degraded caller, and a failed history write all still produce a
// successful response with reduced fields.
func (s *predictService) Predict(ctx context.Context, imageBytes []byte, ident middleware.TokenIdentity) (*models.PredictResponse, error) {
	if s.model == nil {
		return nil, ErrModelUnavailable
	}

	pixels, err := s.pre.Normalize(imageBytes)
	if err != nil {
		return nil, err
	}

	scores, shape, err := s.model.Run(pixels)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}

	probs := inference.Probabilities(inference.Squeeze(scores, shape))
	if len(probs) == 0 {
		return nil, fmt.Errorf("%w: empty score vector", ErrInference)
	}
	topIdx, confidence := inference.Best(probs)
	label, treatment := s.resolver.Resolve(topIdx)

	response := &models.PredictResponse{
		Label:      label,
		ClassIndex: topIdx,
		Confidence: confidence,
		Treatment:  treatment,
	}

	// Best-effort history capture: only a fully resolved numeric identity
	// attaches a record, and a failed write never fails the prediction.
	if ident.State == middleware.TokenValid {
		entry := NewHistoryEntry{
			Label:      label,
			Confidence: &confidence,
			Treatment:  treatment,
			Metadata:   predictMetadata(),
		}
		if saved, err := s.history.Record(ctx, ident.UserID, entry); err != nil {
			log.Printf("failed to save prediction history for user %d: %v", ident.UserID, err)
		} else {
			response.SavedHistoryID = &saved.ID
		}
	}

	return response, nil
}

func predictMetadata() json.RawMessage {
	raw, _ := json.Marshal(map[string]string{
		"source":     "predict_endpoint",
		"request_id": uuid.NewString(),
	})
	return raw
}
