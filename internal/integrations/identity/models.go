package identity

// Session активная сессия из IdentityService
type Session struct {
	Token      string `json:"token"`
	UserID     int64  `json:"user_id"`
	BusinessID int64  `json:"business_id"`
	Role       string `json:"role"` // "owner" | "manager" | "staff"
}

// User текущий аутентифицированный пользователь
type User struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"business_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
}

// ErrorResponse модель ошибки от IdentityService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CanManage возвращает true, если роль позволяет управлять бизнесом
func (s *Session) CanManage() bool {
	return s.Role == "owner" || s.Role == "manager"
}
