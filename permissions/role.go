package permissions

// Role is the caller's permission level within their organization.
// The identity provider encodes roles as "org:"-prefixed claim strings;
// ParseRole is the only place those strings are interpreted.
type Role int

const (
	// RoleUnknown is any role value this service does not recognize,
	// including an absent claim. It never satisfies a requirement.
	RoleUnknown Role = iota
	RoleAdmin
	RoleManager
	RoleClient
	RoleMember
	RoleNonMember
)

// Raw claim values issued by the identity provider.
const (
	claimAdmin     = "org:admin"
	claimManager   = "org:manager_organization"
	claimClient    = "org:clients"
	claimMember    = "org:member"
	claimNonMember = "org:non_member"
)

// ParseRole maps a raw organization-role claim to a Role.
// Unrecognized values map to RoleUnknown so that authorization fails closed.
func ParseRole(raw string) Role {
	switch raw {
	case claimAdmin:
		return RoleAdmin
	case claimManager:
		return RoleManager
	case claimClient:
		return RoleClient
	case claimMember:
		return RoleMember
	case claimNonMember:
		return RoleNonMember
	default:
		return RoleUnknown
	}
}

// String returns a stable short name for the role, used in responses and logs.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleManager:
		return "manager_organization"
	case RoleClient:
		return "clients"
	case RoleMember:
		return "member"
	case RoleNonMember:
		return "non_member"
	default:
		return "unknown"
	}
}

// ClaimString returns the identity provider's claim value for the role.
// RoleUnknown has no claim value and returns an empty string.
func (r Role) ClaimString() string {
	switch r {
	case RoleAdmin:
		return claimAdmin
	case RoleManager:
		return claimManager
	case RoleClient:
		return claimClient
	case RoleMember:
		return claimMember
	case RoleNonMember:
		return claimNonMember
	default:
		return ""
	}
}
