package admin

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// LoginRequest - password sign-in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse - session token plus the signed-in identity
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Admin       AdminDTO  `json:"admin"`
}

// InviteRequest - invite a new administrator by email
type InviteRequest struct {
	Email string `json:"email" binding:"required"`
}

func (r InviteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("e-mail é obrigatório"),
			is.Email.Error("formato de e-mail inválido"),
		),
	)
}

// AcceptInviteRequest - consume an invite token and set the password
type AcceptInviteRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r AcceptInviteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Token, validation.Required),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(8, 128).Error("a senha deve ter entre 8 e 128 caracteres"),
			validation.Match(regexp.MustCompile(`[A-Z]`)).Error("a senha deve conter ao menos uma letra maiúscula"),
			validation.Match(regexp.MustCompile(`[a-z]`)).Error("a senha deve conter ao menos uma letra minúscula"),
			validation.Match(regexp.MustCompile(`[0-9]`)).Error("a senha deve conter ao menos um número"),
		),
	)
}
