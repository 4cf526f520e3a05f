package handler

const (
	errInternalServer     = "Internal server error"
	errAllFieldsRequired  = "All fields are required"
	errEmailAndPassword   = "Email and password are required"
	errEmailTaken         = "Email already in use"
	errInvalidCredentials = "Invalid credentials"
	errUserNotFound       = "User not found"
	errTokenRequired      = "Token is required"
	errTokenInvalid       = "Invalid token"

	errNoteNotFound         = "Note not found"
	errTitleContentRequired = "Title and content are required"
	errNoChanges     = "No changes provided"
	errQueryRequired = "Search query is required"
	errInvalidUserID = "Invalid user ID"
)
