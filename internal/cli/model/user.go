package model

// User is the staff identity returned by the login endpoint.
type User struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phoneNumber"`
}
