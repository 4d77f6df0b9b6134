package tui

import (
	"fmt"
	"strings"

	"github.com/apeerhq/apeer/internal/guard"
	"github.com/apeerhq/apeer/internal/health"
)

// View renders the current state (required by Bubble Tea)
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// The availability gate wraps everything: nothing renders until the
	// first probe resolves, and an unreachable backend blocks the app.
	switch m.backend.Status {
	case health.StatusChecking:
		if m.firstCheck {
			return m.renderChecking()
		}
	case health.StatusUnreachable:
		return m.renderUnreachable()
	}

	var b strings.Builder
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	switch m.view {
	case guard.ViewLanding:
		b.WriteString(m.renderLanding())
	case guard.ViewStudentDashboard:
		b.WriteString(m.renderStudentDashboard())
	case guard.ViewTeacherDashboard:
		b.WriteString(m.renderTeacherDashboard())
	case guard.ViewAdminDashboard:
		b.WriteString(m.renderAdminDashboard())
	case guard.ViewProfile:
		b.WriteString(m.renderProfile())
	case guard.ViewFeedback:
		b.WriteString(m.renderFeedback())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderChecking() string {
	return m.styles.Border.Render(fmt.Sprintf(
		"%s Checking backend availability...",
		m.spinner.View(),
	))
}

func (m Model) renderUnreachable() string {
	var b strings.Builder
	b.WriteString(m.styles.Error.Render("Backend unavailable"))
	b.WriteString("\n\n")
	b.WriteString("Cannot reach the APeer backend. It retries automatically\n")
	b.WriteString("every few seconds; make sure the server is running.\n")
	if !m.backend.CheckedAt.IsZero() {
		b.WriteString(m.styles.Muted.Render(
			fmt.Sprintf("\nLast checked %s", m.backend.CheckedAt.Format("15:04:05"))))
		b.WriteString("\n")
	}
	if m.retryPending {
		b.WriteString(fmt.Sprintf("\n%s Checking...\n", m.spinner.View()))
	} else {
		b.WriteString(m.styles.Help.Render("\nr check now • ctrl+c quit"))
	}
	return m.styles.Border.Render(b.String())
}

func (m Model) renderStatusBar() string {
	status := m.styles.Success.Render("● online")
	if m.backend.Status != health.StatusReady {
		status = m.styles.Muted.Render("● checking")
	}

	who := m.styles.Muted.Render("not signed in")
	if identity, ok := m.sessions.Current(); ok {
		who = m.styles.Subtitle.Render(fmt.Sprintf("%s (%s)", identity.Email, identity.Role))
	}

	return fmt.Sprintf("%s  %s  %s", m.styles.Title.Render("APeer"), status, who)
}

func (m Model) renderLanding() string {
	var b strings.Builder
	if m.authErr != "" {
		b.WriteString(m.styles.Error.Render(m.authErr))
		b.WriteString("\n\n")
	}
	if m.authBusy {
		b.WriteString(fmt.Sprintf("%s Signing in...\n", m.spinner.View()))
		return b.String()
	}
	b.WriteString(m.form.View())
	return b.String()
}

func (m Model) renderStudentDashboard() string {
	if m.loading {
		return fmt.Sprintf("%s Loading dashboard...", m.spinner.View())
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Student Dashboard"))
	b.WriteString("\n")
	b.WriteString(m.renderViewError())

	if m.student == nil {
		b.WriteString(m.styles.Muted.Render("No dashboard data."))
		return b.String()
	}

	s := m.student
	b.WriteString(fmt.Sprintf("Overall score       %.1f\n", s.OverallScore))
	b.WriteString(fmt.Sprintf("Evaluations given   %d\n", s.EvaluationsGiven))
	b.WriteString(fmt.Sprintf("Feedback quality    %.0f%%\n", s.FeedbackQuality))
	b.WriteString(fmt.Sprintf("Participation       %.0f%%\n", s.ParticipationRate))
	b.WriteString(fmt.Sprintf("Pending reviews     %d\n", s.PendingReviews))

	if s.FeedbackSummary != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render("Feedback summary"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Strengths: %s\n", s.FeedbackSummary.Strengths))
		b.WriteString(fmt.Sprintf("Areas to improve: %s\n", s.FeedbackSummary.Weaknesses))
	}
	if len(s.SentimentTrend) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render("Sentiment trend"))
		b.WriteString("\n")
		for _, p := range s.SentimentTrend {
			b.WriteString(fmt.Sprintf("  %-8s %s %.0f\n", p.Week, sentimentBar(p.Score), p.Score))
		}
	}
	return b.String()
}

func (m Model) renderTeacherDashboard() string {
	if m.loading {
		return fmt.Sprintf("%s Loading class overview...", m.spinner.View())
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Class Overview"))
	b.WriteString("\n")
	b.WriteString(m.renderViewError())

	if m.analytics != nil {
		a := m.analytics
		b.WriteString(fmt.Sprintf("%s\n", m.styles.Subtitle.Render(a.Name)))
		b.WriteString(fmt.Sprintf("Students         %d\n", a.TotalStudents))
		b.WriteString(fmt.Sprintf("Average score    %.1f\n", a.AverageScore))
		b.WriteString(fmt.Sprintf("Submission rate  %.0f%%\n", a.SubmissionRate))
		if a.BiasFlags > 0 {
			b.WriteString(m.styles.Error.Render(fmt.Sprintf("Bias flags       %d\n", a.BiasFlags)))
			for _, f := range a.FlaggedStudents {
				b.WriteString(fmt.Sprintf("  %s (%s): %s\n", f.Name, f.Severity, f.Reason))
			}
		}
	}

	if len(m.students) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render("Students"))
		b.WriteString("\n")
		for _, s := range m.students {
			flag := ""
			if s.IsBiased {
				flag = m.styles.Error.Render("  [bias]")
			}
			b.WriteString(fmt.Sprintf("  %-20s score %.1f  given %d%s\n",
				s.Name, s.OverallScore, s.EvaluationsGiven, flag))
		}
	}
	return b.String()
}

func (m Model) renderAdminDashboard() string {
	if m.loading {
		return fmt.Sprintf("%s Loading users...", m.spinner.View())
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("User Management"))
	b.WriteString("\n")
	b.WriteString(m.renderViewError())

	for _, u := range m.users {
		status := m.styles.Success.Render(u.Status)
		if !strings.EqualFold(u.Status, "active") {
			status = m.styles.Muted.Render(u.Status)
		}
		b.WriteString(fmt.Sprintf("  %-20s %-28s %-8s %s\n", u.Name, u.Email, u.Role, status))
	}
	if len(m.users) == 0 {
		b.WriteString(m.styles.Muted.Render("No users."))
	}
	return b.String()
}

func (m Model) renderProfile() string {
	if m.loading {
		return fmt.Sprintf("%s Loading profile...", m.spinner.View())
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Profile"))
	b.WriteString("\n")
	b.WriteString(m.renderViewError())

	if m.profile == nil {
		b.WriteString(m.styles.Muted.Render("No profile data."))
		return b.String()
	}
	p := m.profile
	b.WriteString(fmt.Sprintf("Name        %s\n", p.Name))
	b.WriteString(fmt.Sprintf("Email       %s\n", p.Email))
	b.WriteString(fmt.Sprintf("Role        %s\n", p.Role))
	if p.Department != "" {
		b.WriteString(fmt.Sprintf("Department  %s\n", p.Department))
	}
	if !p.JoinedDate.IsZero() {
		b.WriteString(fmt.Sprintf("Joined      %s\n", p.JoinedDate.Format("Jan 2, 2006")))
	}
	return b.String()
}

func (m Model) renderFeedback() string {
	if m.loading {
		return fmt.Sprintf("%s Loading feedback...", m.spinner.View())
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Feedback History"))
	b.WriteString("\n")
	b.WriteString(m.renderViewError())

	if len(m.feedback) == 0 {
		b.WriteString(m.styles.Muted.Render("No feedback yet."))
		return b.String()
	}
	for _, f := range m.feedback {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			m.styles.Subtitle.Render(f.ActivityName),
			m.styles.Muted.Render(f.SubmittedAt.Format("Jan 2"))))
		b.WriteString(fmt.Sprintf("  %q\n", f.Comment))
		b.WriteString(m.styles.Muted.Render(
			fmt.Sprintf("  %s · sentiment %s · score %.1f\n", f.EvaluatorName, f.SentimentLabel, f.OverallScore)))
		b.WriteString("\n")
	}
	return b.String()
}

// renderViewError shows a dismissible inline error; the stale view data
// underneath stays visible.
func (m Model) renderViewError() string {
	if m.viewErr == "" {
		return ""
	}
	return m.styles.Error.Render(m.viewErr) + m.styles.Muted.Render("  (x to dismiss)") + "\n\n"
}

func (m Model) renderHelp() string {
	if m.view == guard.ViewLanding {
		return m.styles.Help.Render("ctrl+c quit")
	}
	return m.styles.Help.Render("h home • p profile • f feedback • ctrl+l sign out • q quit")
}

// sentimentBar draws a tiny bar for a sentiment score on the 0 to 100 scale.
func sentimentBar(score float64) string {
	n := int(score / 10)
	if n < 0 {
		n = 0
	}
	if n > 10 {
		n = 10
	}
	return strings.Repeat("█", n) + strings.Repeat("░", 10-n)
}
