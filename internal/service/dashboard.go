package service

import (
	"context"
	"net/http"

	"github.com/apeerhq/apeer/internal/api"
)

// DashboardService fetches role-specific dashboard data.
type DashboardService struct {
	client *api.Client
	mock   bool
}

// NewDashboardService creates the dashboard façade.
func NewDashboardService(client *api.Client, mock bool) *DashboardService {
	return &DashboardService{client: client, mock: mock}
}

// Student returns the signed-in student's dashboard.
func (s *DashboardService) Student(ctx context.Context) (Student, error) {
	if s.mock {
		return mockStudents()[0], nil
	}

	var student Student
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/student/dashboard",
	}, &student)
	return student, err
}

// ClassAnalytics returns the teacher's class overview.
func (s *DashboardService) ClassAnalytics(ctx context.Context) (ClassAnalytics, error) {
	if s.mock {
		return mockClassAnalytics(), nil
	}

	var analytics ClassAnalytics
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/teacher/class-overview",
	}, &analytics)
	return analytics, err
}

// Students returns the teacher's student list.
func (s *DashboardService) Students(ctx context.Context) ([]Student, error) {
	if s.mock {
		return mockStudents(), nil
	}

	var students []Student
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/teacher/students",
	}, &students)
	return students, err
}

// Ungrouped returns students not yet assigned to a group.
func (s *DashboardService) Ungrouped(ctx context.Context) ([]Student, error) {
	if s.mock {
		var ungrouped []Student
		for _, student := range mockStudents() {
			if student.GroupID == "" {
				ungrouped = append(ungrouped, student)
			}
		}
		return ungrouped, nil
	}

	var students []Student
	err := s.client.DoJSON(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/teacher/students/ungrouped",
	}, &students)
	return students, err
}
