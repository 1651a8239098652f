package dto

// Envelope is the uniform response shape: status is "success" or "error",
// token and data are present on authenticated successes, message on errors
// and informational successes.
type Envelope struct {
	Status  string    `json:"status"`
	Token   string    `json:"token,omitempty"`
	Data    *UserData `json:"data,omitempty"`
	Message string    `json:"message,omitempty"`
}

type UserData struct {
	User *UserOutput `json:"user,omitempty"`
	// Users is only populated by the admin listing.
	Users []UserOutput `json:"users,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)
