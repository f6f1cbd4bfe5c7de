package requestresponse

// CreateUserRequest : админ создает менеджера
type CreateUserRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	TenantID  *int64 `json:"tenantId,omitempty"`
}

// UpdateUserRequest : тело запроса на обновление пользователя
type UpdateUserRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Role      string `json:"role" example:"manager"`
	TenantID  *int64 `json:"tenantId,omitempty"`
}
