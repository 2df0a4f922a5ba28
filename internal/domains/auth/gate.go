package auth

// Access gate: pure decision function cho role-gated views.
// Navigation side effect (redirect) thuộc về HTTP layer - ở đây chỉ
// quyết định, để policy test được không cần rendering environment.

const (
	LoginPath = "/login"
	HomePath  = "/"
)

type DecisionKind int

const (
	// Pending - session chưa resolve xong, render nothing, chưa redirect
	Pending DecisionKind = iota
	// Allow - cho vào view
	Allow
	// Redirect - đẩy sang Target
	Redirect
)

type Decision struct {
	Kind   DecisionKind
	Target string // chỉ set khi Kind == Redirect
}

// Decide map (required roles, session, loading) → decision
//   - loading → Pending
//   - anonymous → redirect login
//   - admin → allow tất cả (bypass role checks)
//   - required chứa "user" → allow
//   - còn lại → redirect home
func Decide(required []Role, sess *SessionUser, loading bool) Decision {
	if loading {
		return Decision{Kind: Pending}
	}
	if sess == nil {
		return Decision{Kind: Redirect, Target: LoginPath}
	}
	if sess.Role == RoleAdmin {
		return Decision{Kind: Allow}
	}
	for _, role := range required {
		if role == RoleUser {
			return Decision{Kind: Allow}
		}
	}
	return Decision{Kind: Redirect, Target: HomePath}
}
