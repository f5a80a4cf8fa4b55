package dto

// CreateUserRequest registers an application user.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required,max=120"`
	Role     string `json:"role" validate:"required,oneof=MANAGER EMPLOYEE"`
}

// UpdateUserRequest modifies mutable user fields.
type UpdateUserRequest struct {
	FullName string `json:"fullName" validate:"required,max=120"`
	Role     string `json:"role" validate:"required,oneof=MANAGER EMPLOYEE"`
	Active   *bool  `json:"active"`
}
