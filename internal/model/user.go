package model

// CurrentUser is the signed-in parent, fetched once per session and treated
// as read-only afterwards.
type CurrentUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
}

// FullName joins first and last name for display.
func (u CurrentUser) FullName() string {
	switch {
	case u.FirstName == "" && u.LastName == "":
		return u.Email
	case u.LastName == "":
		return u.FirstName
	case u.FirstName == "":
		return u.LastName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// IsAdmin reports whether the user may access the admin views.
func (u CurrentUser) IsAdmin() bool {
	return u.Role == "admin"
}

// SignupRequest is the payload for creating an account.
type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}
