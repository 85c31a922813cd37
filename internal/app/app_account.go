package app

import (
	"sketch/internal/domain"
)

// ============================================================
// Accounts
// ============================================================

// Route sends an authenticated user to their role's screen.
func (a *App) Route(username string) (*domain.User, error) {
	return a.accts.Route(a.ctx, username)
}

// Register creates an account. passwordHash is stored as given.
func (a *App) Register(username, passwordHash, role string) (bool, error) {
	return a.accts.Register(a.ctx, username, passwordHash, domain.Role(role))
}

// SignOut returns to the login screen from the admin or user views.
func (a *App) SignOut() error {
	return a.accts.Logout(a.ctx)
}

// ============================================================
// MCP approvals
// ============================================================

func (a *App) ApproveMCPAction(actionID string) {
	a.mcp.Approve(actionID)
}

func (a *App) RejectMCPAction(actionID string) {
	a.mcp.Reject(actionID)
}
