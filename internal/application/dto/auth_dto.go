package dto

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido más datos básicos del usuario.
type LoginResponse struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// ValidateTokenRequest token a verificar.
type ValidateTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// ValidateTokenResponse resultado booleano; cualquier fallo de firma,
// expiración o parseo se reporta como isValid=false sin detalle.
type ValidateTokenResponse struct {
	IsValid bool `json:"isValid"`
}
