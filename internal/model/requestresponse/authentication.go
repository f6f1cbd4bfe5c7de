package requestresponse

// RegisterRequest : тело запроса регистрации
type RegisterRequest struct {
	Firstname string `json:"firstname" example:"Anuj"`
	Lastname  string `json:"lastname" example:"Negi"`
	Email     string `json:"email" example:"anuj.negi@mern.space"`
	Password  string `json:"password" example:"password"`
}

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Email    string `json:"email" example:"anuj.negi@mern.space"`
	Password string `json:"password" example:"password"`
}

// IDResponse : ответ с id созданной/найденной сущности
type IDResponse struct {
	ID int64 `json:"id" example:"1"`
}
