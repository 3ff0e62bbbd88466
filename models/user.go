package models

// UserProfile is the server-side user record as returned by the auth
// endpoints. It is persisted encrypted on the client so the UI can greet the
// user after a restart without a network round-trip.
type UserProfile struct {
	// ID is the server-assigned unique identifier of the user.
	ID string `json:"id"`

	// Email is the login identifier; it is what the user signs in with.
	Email string `json:"email"`

	// FirstName and LastName are non-sensitive and may be shown in UI.
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// PhoneNumber is optional; the server omits it for OTP-less accounts.
	PhoneNumber string `json:"phoneNumber,omitempty"`
}
