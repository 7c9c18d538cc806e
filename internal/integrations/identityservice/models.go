package identityservice

// User модель пользователя из IdentityService
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`   // "user" или "admin"
	Status      string `json:"status"` // "active" или "suspended"
}

// IsAdmin возвращает true, если пользователь администратор
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// ErrorResponse модель ошибки от IdentityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
