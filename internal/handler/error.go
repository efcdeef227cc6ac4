package handler

// ErrorResponse — стандартный формат ошибки API
// Тексты ошибок совпадают с оригинальным протоколом прошивки
type ErrorResponse struct {
	Error string `json:"error"` // Сообщение об ошибке
}
