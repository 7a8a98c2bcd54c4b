package constants

const (
	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"

	// MinPasswordLength is enforced at registration and profile update.
	MinPasswordLength = 8
)
