package entity

import "time"

// Role es el nivel de autorización de un usuario. Se serializa siempre como
// string canónico; el orden se consulta solo vía Level.
type Role string

// Roles válidos, de menor a mayor privilegio.
const (
	RoleCashier    Role = "Cashier"
	RoleModerator  Role = "Moderator"
	RoleSuperAdmin Role = "SuperAdmin"
)

// Level devuelve el ordinal del rol (0 si es desconocido).
func (r Role) Level() int {
	switch r {
	case RoleCashier:
		return 1
	case RoleModerator:
		return 2
	case RoleSuperAdmin:
		return 3
	default:
		return 0
	}
}

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	return r.Level() > 0
}

// AtLeast indica si el rol alcanza el nivel mínimo requerido.
func (r Role) AtLeast(min Role) bool {
	return r.Level() >= min.Level()
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string // único, sensible a mayúsculas
	Email        string // único, sensible a mayúsculas
	PasswordHash string // bcrypt, nunca en plano después de persistir
	Role         Role
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
