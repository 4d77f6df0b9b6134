package service

import "time"

// Roles recognized by the platform.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// SentimentPoint is one reading in a student's weekly sentiment trend.
type SentimentPoint struct {
	Week  string  `json:"week"`
	Score float64 `json:"score"`
}

// FeedbackSummary is the AI-generated digest of feedback a student received.
type FeedbackSummary struct {
	Strengths  string   `json:"strengths"`
	Weaknesses string   `json:"weaknesses"`
	Themes     []string `json:"themes"`
}

// Student is the dashboard representation of a student, including the
// AI-derived quality and bias signals computed server-side.
type Student struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Email               string           `json:"email"`
	GroupID             string           `json:"groupId,omitempty"`
	OverallScore        float64          `json:"overallScore"`
	EvaluationsGiven    int              `json:"evaluationsGiven"`
	EvaluationsReceived int              `json:"evaluationsReceived"`
	FeedbackQuality     float64          `json:"feedbackQuality"`
	ParticipationRate   float64          `json:"participationRate"`
	PendingReviews      int              `json:"pendingReviews"`
	IsBiased            bool             `json:"isBiased,omitempty"`
	BiasScore           float64          `json:"biasScore,omitempty"`
	SentimentTrend      []SentimentPoint `json:"sentimentTrend,omitempty"`
	AISummary           string           `json:"aiSummary,omitempty"`
	FeedbackSummary     *FeedbackSummary `json:"feedbackSummary,omitempty"`
}

// Activity is a peer-evaluation activity owned by a teacher.
type Activity struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RubricID     string `json:"rubricId"`
	DueDate      string `json:"dueDate"`
	Status       string `json:"status"`
	Participants int    `json:"participants"`
}

// Criterion is one rubric line item.
type Criterion struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	MaxScore float64 `json:"maxScore"`
}

// Rubric is a scoring template.
type Rubric struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Criteria []Criterion `json:"criteria"`
}

// Group is a named set of students within a class.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Members     []Student `json:"members"`
	MemberCount int       `json:"memberCount"`
}

// FlaggedStudent is one bias-detection flag in the class overview.
type FlaggedStudent struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Reason   string `json:"reason"`
	Severity string `json:"severity"`
}

// ClassAnalytics is the teacher's class overview.
type ClassAnalytics struct {
	Name            string           `json:"name"`
	TotalStudents   int              `json:"totalStudents"`
	AverageScore    float64          `json:"averageScore"`
	SubmissionRate  float64          `json:"submissionRate"`
	BiasFlags       int              `json:"biasFlags"`
	FlaggedStudents []FlaggedStudent `json:"flaggedStudents,omitempty"`
}

// User is the admin view of an account.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// Profile is the current user's editable profile.
type Profile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Department string    `json:"department,omitempty"`
	AvatarURL  string    `json:"avatarUrl,omitempty"`
	JoinedDate time.Time `json:"joinedDate"`
}

// Score is one criterion score within an evaluation.
type Score struct {
	CriterionName string  `json:"criterionName"`
	Score         float64 `json:"score"`
}

// Analysis is the AI service's verdict on a submitted evaluation.
type Analysis struct {
	Tags            []string `json:"tags"`
	SentimentScore  float64  `json:"sentimentScore"`
	UsefulnessScore float64  `json:"usefulnessScore"`
	IsFlagged       bool     `json:"isFlagged"`
}

// EvaluationReceipt is returned after submitting an evaluation.
type EvaluationReceipt struct {
	ID       string   `json:"id"`
	Message  string   `json:"message"`
	Analysis Analysis `json:"analysis"`
}

// FeedbackEntry is one piece of feedback a student received.
type FeedbackEntry struct {
	ID             string    `json:"id"`
	Comment        string    `json:"comment"`
	EvaluatorName  string    `json:"evaluatorName"`
	SentimentScore float64   `json:"sentimentScore"`
	SentimentLabel string    `json:"sentimentLabel"`
	OverallScore   float64   `json:"overallScore"`
	SubmittedAt    time.Time `json:"submittedAt"`
	ActivityName   string    `json:"activityName"`
}
