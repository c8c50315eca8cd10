package model

import (
	"resort/permissions"
	gDto "resort/shared/dto"
	"resort/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldRole     = "role"
)

type User struct {
	ID       string           `db:"id"`
	Username string           `db:"username"`
	Password string           `db:"password"`
	Role     permissions.Role `db:"role"`
	model.Metadata
}

func FilterByUsername(username string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    FieldUsername,
				Operator: gDto.FilterOperatorEq,
				Value:    username,
				Table:    TableName,
			},
		},
	}
}
