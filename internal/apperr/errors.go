// Package apperr содержит типизированные ошибки сервиса.
// Компоненты оборачивают их через %w, а util.WriteError превращает в HTTP статус.
package apperr

import "errors"

var (
	// ErrKeyUnavailable : ключ подписи не загружен или не читается
	ErrKeyUnavailable = errors.New("signing key unavailable")
	// ErrInvalidCredential : токена нет, он битый, просрочен или отозван
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrForbidden : пользователь известен, но роль не подходит
	ErrForbidden = errors.New("forbidden")
	// ErrUserNotFound : пользователь из токена больше не существует
	ErrUserNotFound = errors.New("user with the token could not be found")

	ErrNotFound       = errors.New("not found")
	ErrAlreadyExists  = errors.New("already exists")
	ErrBadCredentials = errors.New("email or password does not match")
	ErrValidation     = errors.New("validation failed")
)

// Error : ошибка с текстом, который можно показать клиенту.
// Kind : одна из ошибок выше, по ней выбирается HTTP статус
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// PublicMessage : текст для клиента или fallback, если его нет
func PublicMessage(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}
