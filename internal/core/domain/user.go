package domain

// Session is the derived authentication state of the device.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// SessionToken is the stored marker of a logged-in user or employee.
type SessionToken struct {
	Username string `json:"username"`
}

// UserAccount is stored under user_<username>. The password is kept as
// entered so existing device stores stay readable.
type UserAccount struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Professions accepted at employee signup.
var Professions = []string{
	"Electrician",
	"Plumber",
	"Carpenter",
	"Mechanic",
	"Caretaker",
	"BikeRental",
	"PestControl",
	"Homemaids",
	"Paintings",
	"Clinic",
	"HomeShifters",
}

// MaxAddressLength bounds the employee address field.
const MaxAddressLength = 100

// EmployeeAccount occupies the single employeeData slot.
type EmployeeAccount struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Profession string `json:"profession"`
	Address    string `json:"address"`
}

// IsProfession reports whether p is one of Professions.
func IsProfession(p string) bool {
	for _, known := range Professions {
		if known == p {
			return true
		}
	}
	return false
}
