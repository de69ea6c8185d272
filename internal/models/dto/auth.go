package dto

import "github.com/hongminglow/quantum-trade/internal/models"

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User models.PublicUser `json:"user"`
}

type LanguageRequest struct {
	Language string `json:"language"`
}

type TabResponse struct {
	Tab string `json:"tab"`
}
