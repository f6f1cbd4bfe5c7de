package model

import "fmt"

// Role : роль пользователя. Набор закрыт, новая роль добавляется только здесь
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleCustomer Role = "customer"
)

var knownRoles = map[Role]struct{}{
	RoleAdmin:    {},
	RoleManager:  {},
	RoleCustomer: {},
}

func (r Role) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

// ParseRole : строка из токена или БД -> Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}
