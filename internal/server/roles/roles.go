// Package roles maintains the closed set of role names recognized by the
// application and the sufficiency check used on every authenticated request.
// No new roles are ever invented at runtime.
package roles

// The full set of grantable roles.
const (
	ShowUsers            = "role_show_users"
	CreateUser           = "role_create_user"
	ShowOwnedCampaigns   = "role_show_owned_campaigns"
	CreateCampaign       = "role_create_campaign"
	CreateSessionSummary = "role_create_session_summary"
)

var all = []string{
	ShowUsers,
	CreateUser,
	ShowOwnedCampaigns,
	CreateCampaign,
	CreateSessionSummary,
}

// All returns a copy of every recognized role name.
func All() []string {
	out := make([]string, len(all))
	copy(out, all)
	return out
}

// IsValid reports whether name is a recognized role.
func IsValid(name string) bool {
	for _, r := range all {
		if r == name {
			return true
		}
	}
	return false
}

// Sufficient reports whether the granted roles satisfy the required set.
// An empty required set means no restriction; otherwise any single match
// grants access (OR semantics, not all-of).
func Sufficient(granted, required []string) bool {
	if len(required) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(granted))
	for _, g := range granted {
		have[g] = struct{}{}
	}
	for _, r := range required {
		if _, ok := have[r]; ok {
			return true
		}
	}
	return false
}
