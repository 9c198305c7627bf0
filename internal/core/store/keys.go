package store

// Stored keys. Their names and value shapes are shared with existing
// device stores and must not change.
const (
	KeyUserToken        = "userToken"
	KeyUsername         = "username"
	KeyEmployeeData     = "employeeData"
	KeyLoggedInEmployee = "loggedInEmployee"
	KeyBookings         = "bookings"
	KeyUserProfile      = "userProfile"

	userKeyPrefix = "user_"
)

// UserKey is the key holding the account of username.
func UserKey(username string) string {
	return userKeyPrefix + username
}
