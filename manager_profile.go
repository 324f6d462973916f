package sessionkit

import (
	"context"

	"github.com/aurawell/sessionkit/internal/state"
)

// UpdateProfile describes the updateprofile operation and its observable behavior.
//
// UpdateProfile may return an error when input validation, dependency calls, or security checks fail.
// UpdateProfile pushes the partial update to the profile service and, on
// success, replaces the in-memory record with the deterministic local merge.
// Nested sections merge independently: setting a single preference never
// clobbers its siblings. An empty update is a no-op.
func (m *Manager) UpdateProfile(ctx context.Context, update ProfileUpdate) (*UserRecord, error) {
	if err := m.beginOp(); err != nil {
		return nil, err
	}
	defer m.endOp()

	st := m.currentState()
	if !st.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	if update.Empty() {
		return m.CurrentUser(), nil
	}
	rec, _ := st.User.(*UserRecord)
	externalID := ""
	if rec != nil {
		externalID = rec.ID
	}

	merged, err := m.flows.UpdateProfile(ctx, st.User, externalID, st.Token, st.RefreshToken, update)
	if err != nil {
		return nil, err
	}
	m.apply(state.UserReplaced{User: merged})
	return m.CurrentUser(), nil
}
