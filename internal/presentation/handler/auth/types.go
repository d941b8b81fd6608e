package auth

// registerRequest represents the request to create an account
type registerRequest struct {
	Fullname string `json:"fullname" example:"Jane Doe" minLength:"2"`   // Display name
	Email    string `json:"email" example:"jane@example.com"`            // Login email
	Password string `json:"password" example:"hunter2hunter2" minLength:"8"` // Plaintext password, hashed server-side
}

// loginRequest represents login credentials
type loginRequest struct {
	Email    string `json:"email" example:"jane@example.com"` // Login email
	Password string `json:"password" example:"hunter2hunter2"` // Plaintext password
}

// userResponse represents the public slice of an account
type userResponse struct {
	ID       string `json:"_id" example:"550e8400-e29b-41d4-a716-446655440000"` // Unique user identifier
	Fullname string `json:"fullname" example:"Jane Doe"`                        // Display name
	Email    string `json:"email" example:"jane@example.com"`                   // Login email
}

// authResponse wraps the authenticated user
type authResponse struct {
	User userResponse `json:"user"` // The session's user
}
