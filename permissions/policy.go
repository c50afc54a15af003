package permissions

import "errors"

var (
	// ErrUnauthenticated is returned when no identity is present at all.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrInsufficientPermission is returned when the caller's role does not
	// satisfy the operation's requirement.
	ErrInsufficientPermission = errors.New("insufficient permissions")
	// ErrInvalidToken is returned when a verified token is missing one of the
	// identity fields this service depends on.
	ErrInvalidToken = errors.New("invalid token format")
)

// Claims is the subset of verified identity-token fields this service reads.
// Signature validation happens upstream; these values are trusted as-is.
type Claims struct {
	Subject          string
	OrganizationID   string
	OrganizationRole string
	Email            string
	Name             string
}

// UserData is the typed identity record every tenant-scoped operation works
// from. OrganizationID is the tenant partition key.
type UserData struct {
	UserID         string `json:"user_id"`
	OrganizationID string `json:"organization_id"`
	Role           Role   `json:"-"`
	Email          string `json:"email"`
	Name           string `json:"name"`
}

// ExtractUserData validates a verified token's claims and produces a UserData.
// Every field must be present; an unrecognized role string is not an error
// here, it becomes RoleUnknown and is denied by Authorize.
func ExtractUserData(claims Claims) (*UserData, error) {
	if claims.Subject == "" ||
		claims.OrganizationID == "" ||
		claims.OrganizationRole == "" ||
		claims.Email == "" ||
		claims.Name == "" {
		return nil, ErrInvalidToken
	}

	return &UserData{
		UserID:         claims.Subject,
		OrganizationID: claims.OrganizationID,
		Role:           ParseRole(claims.OrganizationRole),
		Email:          claims.Email,
		Name:           claims.Name,
	}, nil
}

// Authorize decides whether user may perform an operation that requires one of
// the given roles. Rules, in order:
//
//  1. no identity -> ErrUnauthenticated
//  2. admin satisfies any requirement
//  3. a member requirement is satisfied by member, manager or admin
//  4. otherwise the role must match a requirement exactly
//
// RoleUnknown never satisfies anything. This is the only authorization check
// in the codebase; callers must not re-derive role conditions inline.
func Authorize(user *UserData, required ...Role) (*UserData, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}

	if user.Role == RoleAdmin {
		return user, nil
	}

	for _, req := range required {
		if req == RoleUnknown {
			continue
		}
		if req == RoleMember && (user.Role == RoleMember || user.Role == RoleManager) {
			return user, nil
		}
		if req == user.Role {
			return user, nil
		}
	}

	return nil, ErrInsufficientPermission
}
