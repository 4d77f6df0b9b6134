package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mock fixtures returned by every façade when the mock-data flag is set.
// Deterministic apart from generated ids, mirroring the seed data the
// platform demos with.

func mockStudents() []Student {
	return []Student{
		{
			ID: "s1", Name: "Alice Chen", Email: "alice.student@university.edu",
			OverallScore: 87, EvaluationsGiven: 12, EvaluationsReceived: 15,
			FeedbackQuality: 92, ParticipationRate: 92, PendingReviews: 3,
			SentimentTrend: []SentimentPoint{
				{Week: "W1", Score: 78}, {Week: "W2", Score: 82},
				{Week: "W3", Score: 85}, {Week: "W4", Score: 87},
			},
			AISummary: "Consistently provides constructive and detailed feedback.",
			FeedbackSummary: &FeedbackSummary{
				Strengths:  "Exceptional leadership and communication skills",
				Weaknesses: "Could improve time management",
				Themes:     []string{"Collaborative", "Creative", "Detail-oriented"},
			},
		},
		{
			ID: "s2", Name: "Bob Martinez", Email: "bob.student@university.edu",
			OverallScore: 76, EvaluationsGiven: 8, EvaluationsReceived: 10,
			FeedbackQuality: 68, ParticipationRate: 85, PendingReviews: 5,
			SentimentTrend: []SentimentPoint{
				{Week: "W1", Score: 72}, {Week: "W2", Score: 74},
				{Week: "W3", Score: 75}, {Week: "W4", Score: 76},
			},
			AISummary: "Needs improvement in providing specific examples.",
			FeedbackSummary: &FeedbackSummary{
				Strengths:  "Strong technical skills and problem-solving",
				Weaknesses: "Needs to be more vocal in team discussions",
				Themes:     []string{"Technical", "Reliable", "Independent"},
			},
		},
		{
			ID: "s3", Name: "Carol Zhang", Email: "carol.student@university.edu",
			OverallScore: 94, EvaluationsGiven: 18, EvaluationsReceived: 16,
			FeedbackQuality: 96, ParticipationRate: 95, PendingReviews: 1,
			SentimentTrend: []SentimentPoint{
				{Week: "W1", Score: 90}, {Week: "W2", Score: 92},
				{Week: "W3", Score: 93}, {Week: "W4", Score: 94},
			},
			AISummary: "Exceptional feedback quality with balanced tone.",
			FeedbackSummary: &FeedbackSummary{
				Strengths:  "Outstanding analytical thinking and presentation skills",
				Weaknesses: "Could delegate more effectively",
				Themes:     []string{"Analytical", "Organized", "Proactive"},
			},
		},
		{
			ID: "s4", Name: "David Kim", Email: "david.student@university.edu",
			OverallScore: 81, EvaluationsGiven: 10, EvaluationsReceived: 12,
			FeedbackQuality: 79, ParticipationRate: 80, PendingReviews: 4,
			IsBiased: true, BiasScore: 2.3,
			SentimentTrend: []SentimentPoint{
				{Week: "W1", Score: 79}, {Week: "W2", Score: 80},
				{Week: "W3", Score: 82}, {Week: "W4", Score: 81},
			},
			AISummary: "Shows signs of grade inflation in peer reviews.",
			FeedbackSummary: &FeedbackSummary{
				Strengths:  "Good team player and reliable contributor",
				Weaknesses: "Tends to inflate peer scores",
				Themes:     []string{"Supportive", "Friendly", "Generous"},
			},
		},
		{
			ID: "s5", Name: "Emma Wilson", Email: "emma.student@university.edu",
			OverallScore: 89, EvaluationsGiven: 14, EvaluationsReceived: 14,
			FeedbackQuality: 88, ParticipationRate: 90, PendingReviews: 2,
			SentimentTrend: []SentimentPoint{
				{Week: "W1", Score: 84}, {Week: "W2", Score: 86},
				{Week: "W3", Score: 88}, {Week: "W4", Score: 89},
			},
			AISummary: "Well-balanced evaluations with helpful suggestions.",
			FeedbackSummary: &FeedbackSummary{
				Strengths:  "Excellent communication and balanced feedback",
				Weaknesses: "Could provide more technical depth",
				Themes:     []string{"Balanced", "Thoughtful", "Constructive"},
			},
		},
	}
}

func mockRubrics() []Rubric {
	return []Rubric{
		{
			ID: "r1", Name: "Team Collaboration",
			Criteria: []Criterion{
				{ID: "c1", Name: "Communication", Weight: 30, MaxScore: 5},
				{ID: "c2", Name: "Contribution", Weight: 40, MaxScore: 5},
				{ID: "c3", Name: "Reliability", Weight: 30, MaxScore: 5},
			},
		},
		{
			ID: "r2", Name: "Code Quality",
			Criteria: []Criterion{
				{ID: "c4", Name: "Clean Code", Weight: 35, MaxScore: 5},
				{ID: "c5", Name: "Documentation", Weight: 25, MaxScore: 5},
				{ID: "c6", Name: "Testing", Weight: 40, MaxScore: 5},
			},
		},
		{
			ID: "r3", Name: "Presentation Skills",
			Criteria: []Criterion{
				{ID: "c7", Name: "Clarity", Weight: 40, MaxScore: 5},
				{ID: "c8", Name: "Engagement", Weight: 30, MaxScore: 5},
				{ID: "c9", Name: "Content", Weight: 30, MaxScore: 5},
			},
		},
	}
}

func mockActivities() []Activity {
	return []Activity{
		{ID: "a1", Name: "Sprint 1 Evaluation", RubricID: "r1", DueDate: "2025-01-15", Status: "active", Participants: 25},
		{ID: "a2", Name: "Midterm Project Review", RubricID: "r2", DueDate: "2025-01-20", Status: "active", Participants: 28},
	}
}

func mockClassAnalytics() ClassAnalytics {
	return ClassAnalytics{
		Name:           "CS401 - Software Engineering",
		TotalStudents:  30,
		AverageScore:   84.2,
		SubmissionRate: 88,
		BiasFlags:      3,
		FlaggedStudents: []FlaggedStudent{
			{ID: "s4", Name: "David Kim", Reason: "Score deviation > 2.5σ", Severity: "HIGH"},
		},
	}
}

func mockUsers() []User {
	return []User{
		{ID: "s1", Name: "Alice Chen", Email: "alice.student@university.edu", Role: "Student", Status: "Active"},
		{ID: "s2", Name: "Bob Martinez", Email: "bob.student@university.edu", Role: "Student", Status: "Active"},
		{ID: "s3", Name: "Carol Zhang", Email: "carol.student@university.edu", Role: "Student", Status: "Active"},
		{ID: "s4", Name: "David Kim", Email: "david.student@university.edu", Role: "Student", Status: "Active"},
		{ID: "s5", Name: "Emma Wilson", Email: "emma.student@university.edu", Role: "Student", Status: "Active"},
		{ID: "t1", Name: "Prof. Smith", Email: "smith.teacher@university.edu", Role: "Teacher", Status: "Active"},
	}
}

func mockFeedback() []FeedbackEntry {
	return []FeedbackEntry{
		{
			ID:             "1",
			Comment:        "Great collaboration skills!",
			EvaluatorName:  "Anonymous Peer",
			SentimentScore: 0.8,
			SentimentLabel: "Positive",
			OverallScore:   85,
			SubmittedAt:    time.Now(),
			ActivityName:   "Midterm Peer Review",
		},
	}
}

// mockToken fabricates an opaque token for mock-mode sign-ins.
func mockToken() string {
	return "mock_token_" + uuid.NewString()
}

// mockRoleFor mirrors the demo convention: the email names the role.
func mockRoleFor(email string) string {
	switch {
	case strings.Contains(email, RoleTeacher):
		return RoleTeacher
	case strings.Contains(email, RoleAdmin):
		return RoleAdmin
	default:
		return RoleStudent
	}
}

// mockNameFor derives a display name from the email's local part.
func mockNameFor(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return strings.ReplaceAll(local, ".", " ")
}
