package dto

import (
	"resort/internal/domains/user/model"
	"resort/permissions"
	"resort/shared"
	gDto "resort/shared/dto"
)

type UserResponse struct {
	ID       string           `json:"id"`
	Username string           `json:"username"`
	Role     permissions.Role `json:"role"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Username = model.Username
	r.Role = model.Role
	r.Metadata.FromModel(model.Metadata)
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,role"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
