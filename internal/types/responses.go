package types

type ProfileResponse struct {
	ID       uint   `json:"id"`
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}
