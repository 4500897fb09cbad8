package dto

// ── auth requests ──

// RegisterRequest account sign-up
type RegisterRequest struct {
	Email          string  `json:"email"           binding:"required,email,max=255"`
	Password       string  `json:"password"        binding:"required,min=6,max=72"`
	FirstName      string  `json:"first_name"      binding:"required,max=100"`
	LastName       string  `json:"last_name"       binding:"required,max=100"`
	Major          *string `json:"major"           binding:"omitempty,max=100"`
	GraduationYear *int    `json:"graduation_year" binding:"omitempty,min=1900,max=2100"`
}

// LoginRequest email/password login
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest partial profile update
type UpdateProfileRequest struct {
	FirstName      *string `json:"first_name"      binding:"omitempty,min=1,max=100"`
	LastName       *string `json:"last_name"       binding:"omitempty,min=1,max=100"`
	Major          *string `json:"major"           binding:"omitempty,max=100"`
	GraduationYear *int    `json:"graduation_year" binding:"omitempty,min=1900,max=2100"`
}

// ── auth responses ──

// UserResponse public view of a user
type UserResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Major          *string `json:"major"`
	GraduationYear *int    `json:"graduation_year"`
	Role           string  `json:"role"`
	CreatedAt      string  `json:"created_at"`
}

// AuthResponse user plus token pair
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // access token lifetime in seconds
}
