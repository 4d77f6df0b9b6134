package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apeerhq/apeer/internal/api"
	"github.com/apeerhq/apeer/internal/errors"
)

func TestEvaluationService_ValidationNeverReachesNetwork(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	svc := NewEvaluationService(api.NewClient(server.URL), false)
	good := []Score{{CriterionName: "Communication", Score: 4}}

	tests := []struct {
		name    string
		submit  func() error
	}{
		{"missing activity", func() error {
			_, err := svc.Submit(context.Background(), "", "s2", "nice work", good)
			return err
		}},
		{"missing target", func() error {
			_, err := svc.Submit(context.Background(), "a1", "", "nice work", good)
			return err
		}},
		{"empty comment", func() error {
			_, err := svc.Submit(context.Background(), "a1", "s2", "", good)
			return err
		}},
		{"no scores", func() error {
			_, err := svc.Submit(context.Background(), "a1", "s2", "nice work", nil)
			return err
		}},
		{"score out of range", func() error {
			_, err := svc.Submit(context.Background(), "a1", "s2", "nice work",
				[]Score{{CriterionName: "Communication", Score: 6}})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.submit()
			require.Error(t, err)
			assert.Equal(t, errors.KindValidation, errors.KindOf(err))
		})
	}
	assert.Zero(t, calls, "validation errors must be resolved before any network call")
}

func TestEvaluationService_Submit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/student/evaluations/submit", r.URL.Path)

		var req submitEvaluationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a1", req.ActivityID)
		assert.Equal(t, "s2", req.TargetStudentID)
		require.Len(t, req.Scores, 2)

		json.NewEncoder(w).Encode(EvaluationReceipt{
			ID:      "e1",
			Message: "Evaluation submitted successfully",
			Analysis: Analysis{
				Tags:            []string{"Constructive"},
				SentimentScore:  0.7,
				UsefulnessScore: 80,
			},
		})
	}))
	defer server.Close()

	svc := NewEvaluationService(api.NewClient(server.URL), false)
	receipt, err := svc.Submit(context.Background(), "a1", "s2", "clear and helpful reviews",
		[]Score{
			{CriterionName: "Communication", Score: 4},
			{CriterionName: "Contribution", Score: 5},
		})
	require.NoError(t, err)
	assert.Equal(t, "e1", receipt.ID)
	assert.False(t, receipt.Analysis.IsFlagged)
}

func TestEvaluationService_MockSubmit(t *testing.T) {
	svc := NewEvaluationService(nil, true)
	receipt, err := svc.Submit(context.Background(), "a1", "s2", "good",
		[]Score{{CriterionName: "Communication", Score: 3}})
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.ID)
	assert.Equal(t, []string{"Constructive", "Specific", "Polite"}, receipt.Analysis.Tags)
}
