package dto

// AuthResponse holds the verified claims of a bearer token.
type AuthResponse struct {
	UserID string  `json:"user_id"`
	Iat    float64 `json:"iat"`
	Expiry float64 `json:"expiry"`
}
