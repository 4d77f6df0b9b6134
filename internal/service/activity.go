package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/apeerhq/apeer/internal/api"
	"github.com/apeerhq/apeer/internal/errors"
	"github.com/google/uuid"
)

// ActivityService manages a teacher's evaluation activities and rubrics.
type ActivityService struct {
	client *api.Client
	mock   bool
}

// NewActivityService creates the activity façade.
func NewActivityService(client *api.Client, mock bool) *ActivityService {
	return &ActivityService{client: client, mock: mock}
}

// List returns all activities.
func (s *ActivityService) List(ctx context.Context) ([]Activity, error) {
	if s.mock {
		return mockActivities(), nil
	}

	var activities []Activity
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/teacher/activities",
	}, &activities)
	return activities, err
}

type createActivityRequest struct {
	Name           string   `json:"name"`
	RubricID       string   `json:"rubricId"`
	DueDate        string   `json:"dueDate"`
	ParticipantIDs []string `json:"participantIds"`
}

// Create creates a new activity.
func (s *ActivityService) Create(ctx context.Context, name, rubricID, dueDate string, participantIDs []string) (Activity, error) {
	if name == "" {
		return Activity{}, errors.NewFieldRequiredError("activity name")
	}
	if rubricID == "" {
		return Activity{}, errors.NewFieldRequiredError("rubric")
	}

	if s.mock {
		return Activity{
			ID:           "a-" + uuid.NewString(),
			Name:         name,
			RubricID:     rubricID,
			DueDate:      dueDate,
			Status:       "active",
			Participants: len(participantIDs),
		}, nil
	}

	if participantIDs == nil {
		participantIDs = []string{}
	}
	var activity Activity
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodPost,
		Path:   "/teacher/activities",
		Body: createActivityRequest{
			Name:           name,
			RubricID:       rubricID,
			DueDate:        dueDate,
			ParticipantIDs: participantIDs,
		},
	}, &activity)
	return activity, err
}

// Rubrics returns all rubrics.
func (s *ActivityService) Rubrics(ctx context.Context) ([]Rubric, error) {
	if s.mock {
		return mockRubrics(), nil
	}

	var rubrics []Rubric
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/teacher/rubrics",
	}, &rubrics)
	return rubrics, err
}

// ExportCSV downloads an activity's results to dest. The export endpoint
// moved between backend versions, so the current path is tried first with
// one fallback against the teacher-scoped path.
func (s *ActivityService) ExportCSV(ctx context.Context, activityID, dest string) error {
	if activityID == "" {
		return errors.NewFieldRequiredError("activity id")
	}

	return api.First(ctx,
		func(ctx context.Context) error {
			return s.client.Download(ctx, fmt.Sprintf("/activities/%s/export", activityID), dest)
		},
		func(ctx context.Context) error {
			return s.client.Download(ctx, fmt.Sprintf("/teacher/activities/%s/export", activityID), dest)
		},
	)
}
