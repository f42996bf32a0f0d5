package testutil

import "context"

// MockRoleChecker grants the bonus role to a fixed set of users. A nil map
// means nobody holds the role.
type MockRoleChecker struct {
	Holders map[string]bool

	HasRoleFunc func(ctx context.Context, guildID, userID, roleID string) (bool, error)
}

func (m *MockRoleChecker) HasRole(
	ctx context.Context, guildID, userID, roleID string,
) (bool, error) {
	if m.HasRoleFunc != nil {
		return m.HasRoleFunc(ctx, guildID, userID, roleID)
	}

	return m.Holders[userID], nil
}
