package models

// Organizer 是擁有活動的帳號；Email 同時是登入帳號
type Organizer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"-"` // bcrypt hash，不輸出
}
