package entity

import "time"

// Role rol plano de un usuario.
type Role string

// Roles válidos para User.
const (
	RoleAdmin       Role = "admin"
	RoleSupervisor  Role = "supervisor"
	RoleTrabajadorA Role = "trabajador-a"
	RoleTrabajadorB Role = "trabajador-b"
	RoleAlmacen     Role = "almacen"
)

// RoleSet conjunto explícito de roles; toda verificación de autorización consulta uno de estos.
type RoleSet []Role

// Allows indica si r pertenece al conjunto.
func (s RoleSet) Allows(r Role) bool {
	for _, x := range s {
		if x == r {
			return true
		}
	}
	return false
}

// Strings devuelve los roles como texto (middleware HTTP).
func (s RoleSet) Strings() []string {
	out := make([]string, len(s))
	for i, r := range s {
		out[i] = string(r)
	}
	return out
}

// Conjuntos de roles por operación.
var (
	AllRoles         = RoleSet{RoleAdmin, RoleSupervisor, RoleTrabajadorA, RoleTrabajadorB, RoleAlmacen}
	ScanRoles        = RoleSet{RoleAdmin, RoleTrabajadorA, RoleTrabajadorB, RoleAlmacen}
	MovementRoles    = RoleSet{RoleAdmin, RoleSupervisor}
	PalletWriteRoles = RoleSet{RoleAdmin, RoleTrabajadorA, RoleTrabajadorB}
	WarehouseRoles   = RoleSet{RoleAdmin, RoleAlmacen}
	BoxRoles         = RoleSet{RoleAdmin, RoleAlmacen, RoleSupervisor}
	AdminRoles       = RoleSet{RoleAdmin}
)

// Actor identidad que envía una petición (extraída del token).
type Actor struct {
	ID   string
	Name string
	Role Role
}

// User usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
