package dto

import "github.com/BruksfildServices01/court-scheduler/internal/models"

type UserDTO struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Phone:  u.Phone,
		Role:   u.Role,
		Active: u.Active,
	}
}
