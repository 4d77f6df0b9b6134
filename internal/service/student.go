package service

import (
	"context"
	"net/http"

	"github.com/apeerhq/apeer/internal/api"
)

// StudentService covers the student's own feedback history and report
// export.
type StudentService struct {
	client *api.Client
	mock   bool
}

// NewStudentService creates the student façade.
func NewStudentService(client *api.Client, mock bool) *StudentService {
	return &StudentService{client: client, mock: mock}
}

// FeedbackHistory returns the feedback the student has received.
func (s *StudentService) FeedbackHistory(ctx context.Context) ([]FeedbackEntry, error) {
	if s.mock {
		return mockFeedback(), nil
	}

	var entries []FeedbackEntry
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/student/feedback-history",
	}, &entries)
	return entries, err
}

// ExportPDF downloads the student's personal report to dest.
func (s *StudentService) ExportPDF(ctx context.Context, dest string) error {
	return s.client.Download(ctx, "/student/export/pdf", dest)
}
