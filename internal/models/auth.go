package models

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=20"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Age       int    `json:"age" validate:"required,gte=18,lte=100"`
	Gender    string `json:"gender" validate:"required,oneof=male female other"`
	Bio       string `json:"bio" validate:"omitempty,max=500"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// UpdateProfileRequest is a partial overwrite: nil fields stay untouched.
// Coordinates, when present, exclusively replace the stored location and are
// applied separately from the scalar fields.
type UpdateProfileRequest struct {
	FirstName   *string   `json:"firstName" validate:"omitempty,min=1"`
	LastName    *string   `json:"lastName" validate:"omitempty,min=1"`
	Age         *int      `json:"age" validate:"omitempty,gte=18,lte=100"`
	Bio         *string   `json:"bio" validate:"omitempty,max=500"`
	Coordinates []float64 `json:"coordinates" validate:"omitempty,len=2"`
}

type RegisterResponse struct {
	User        RegisteredUser `json:"user"`
	AccessToken string         `json:"access_token"`
}

type LoginResponse struct {
	User        LoggedInUser `json:"user"`
	AccessToken string       `json:"access_token"`
}
