package userservice

// MemberProfile профиль участника коворкинга из UserService
type MemberProfile struct {
	UserID     int64  `json:"user_id"`
	MemberType string `json:"member_type"`
	Active     bool   `json:"active"`
}
