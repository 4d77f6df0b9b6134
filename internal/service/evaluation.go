package service

import (
	"context"
	"net/http"

	"github.com/apeerhq/apeer/internal/api"
	"github.com/apeerhq/apeer/internal/errors"
	"github.com/google/uuid"
)

// EvaluationService submits peer evaluations.
type EvaluationService struct {
	client *api.Client
	mock   bool
}

// NewEvaluationService creates the evaluation façade.
func NewEvaluationService(client *api.Client, mock bool) *EvaluationService {
	return &EvaluationService{client: client, mock: mock}
}

type submitEvaluationRequest struct {
	ActivityID      string  `json:"activityId"`
	TargetStudentID string  `json:"targetStudentId"`
	Comment         string  `json:"comment"`
	Scores          []Score `json:"scores"`
}

// Submit sends one peer evaluation. Validation happens entirely client
// side before any network call; the backend remains the source of truth
// for idempotency of rapid double-submits.
func (s *EvaluationService) Submit(ctx context.Context, activityID, targetStudentID, comment string, scores []Score) (EvaluationReceipt, error) {
	if activityID == "" {
		return EvaluationReceipt{}, errors.NewFieldRequiredError("activity id")
	}
	if targetStudentID == "" {
		return EvaluationReceipt{}, errors.NewFieldRequiredError("target student")
	}
	if comment == "" {
		return EvaluationReceipt{}, errors.NewFieldRequiredError("comment")
	}
	if len(scores) == 0 {
		return EvaluationReceipt{}, errors.NewValidationError("scores", "at least one criterion score is required")
	}
	for _, score := range scores {
		if score.CriterionName == "" {
			return EvaluationReceipt{}, errors.NewFieldRequiredError("criterion name")
		}
		if score.Score < 1 || score.Score > 5 {
			return EvaluationReceipt{}, errors.NewValidationError(score.CriterionName, "score must be between 1 and 5")
		}
	}

	if s.mock {
		return EvaluationReceipt{
			ID:      "eval-" + uuid.NewString(),
			Message: "Evaluation submitted successfully",
			Analysis: Analysis{
				Tags:            []string{"Constructive", "Specific", "Polite"},
				SentimentScore:  0.85,
				UsefulnessScore: 92,
				IsFlagged:       false,
			},
		}, nil
	}

	var receipt EvaluationReceipt
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/student/evaluations/submit",
		Body: submitEvaluationRequest{
			ActivityID:      activityID,
			TargetStudentID: targetStudentID,
			Comment:         comment,
			Scores:          scores,
		},
	}, &receipt)
	return receipt, err
}
