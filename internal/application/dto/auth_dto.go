package dto

// RegisterRequest entrada para el registro de empresa + primer usuario.
// El email hace también de username del usuario creado.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	CompanyName string `json:"company_name" validate:"required,min=1,max=255"`
	PhoneNumber string `json:"phone_number" validate:"required,max=13"`
	TaxID       string `json:"tax_id" validate:"required,max=11"`
}

// RegisterResponse salida del registro: empresa y usuario creados juntos.
type RegisterResponse struct {
	Company CompanyResponse `json:"company"`
	User    UserResponse    `json:"user"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
