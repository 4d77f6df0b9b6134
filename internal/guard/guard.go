package guard

import (
	"strings"

	"github.com/apeerhq/apeer/internal/session"
)

// View identifies a navigable view.
type View string

// Application views
const (
	ViewLanding          View = "landing"
	ViewStudentDashboard View = "student-dashboard"
	ViewTeacherDashboard View = "teacher-dashboard"
	ViewAdminDashboard   View = "admin-dashboard"
	ViewProfile          View = "profile"
	ViewFeedback         View = "feedback"
)

// rules is the static route authorization table, view to allowed roles.
// A nil role set admits any authenticated session; ViewLanding is public
// and has no rule.
var rules = map[View][]string{
	ViewStudentDashboard: {"student"},
	ViewTeacherDashboard: {"teacher"},
	ViewAdminDashboard:   {"admin"},
	ViewProfile:          nil,
	ViewFeedback:         nil,
}

// CanEnter reports whether the session may open the view. Pure: the
// redirect on denial is the caller's concern (replace, not push, so back
// navigation cannot return to the denied view).
func CanEnter(view View, identity *session.Identity) bool {
	if view == ViewLanding {
		return true
	}
	if identity == nil {
		return false
	}

	allowed, known := rules[view]
	if !known {
		return false
	}
	if allowed == nil {
		return true
	}

	role := strings.ToLower(identity.Role)
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// HomeView returns the dashboard a role lands on after login.
func HomeView(role string) View {
	switch strings.ToLower(role) {
	case "teacher":
		return ViewTeacherDashboard
	case "admin":
		return ViewAdminDashboard
	case "student":
		return ViewStudentDashboard
	default:
		return ViewLanding
	}
}
