package handler

// Response messages shared across handlers. The exact wording is part of the
// API contract consumed by the frontend.
const (
	MessageAdded              = "Added successfully"
	MessageUpdated            = "Updated successfully"
	MessageDeleted            = "Deleted successfully"
	MessageAssigned           = "Assigned successfully"
	MessageExists             = "Name already exists"
	MessageRequired           = "Name is required"
	MessageAssignmentRequired = "role_id and permission_id are required"
	MessageAlreadyAssigned    = "Permission is already assigned to this role"
	MessageNotFound           = "Not found"
	MessageRoleNotFound       = "Role not found"
	MessageRoleReferenced     = "Role is referenced by existing accounts"
	MessageEmailExists        = "Email already exists"
	MessagePhoneFormat        = "Phone number must start with 0 and contain exactly 10 digits"
	MessagePasswordTooShort   = "Password must be at least 8 characters"
	MessageChangedPassword    = "Password changed successfully"
	MessageIncorrectPassword  = "Old password is incorrect"
	MessageLoggedOut          = "Logged out successfully"
	MessageRequiredLogin      = "Login is required"
	MessageBadCredentials     = "Email or password is incorrect"
	MessageInvalidMethod      = "Invalid request method"
	MessageInvalidPayload     = "Invalid request payload"
)
