package dto

type RegisterDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname" binding:"required,min=2,max=20"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

type CredentialDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserInfoDTO struct {
	UserID   uint64  `json:"user_id"`
	Email    string  `json:"email"`
	Nickname string  `json:"nickname"`
	ImageURL *string `json:"image_url"`
}

type LoginResultDTO struct {
	Token string       `json:"token"`
	User  *UserInfoDTO `json:"user"`
}

type ImageUploadResultDTO struct {
	ImageURL string `json:"image_url"`
}
