package models

// User is a staff account. The ID is the store-assigned key and the
// password field holds a bcrypt hash, never plain text.
type User struct {
	ID        string `json:"id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CreatedAt string `json:"createdAt"`
}
