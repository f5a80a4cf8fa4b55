package dto

// CreateBranchRequest registers a new branch.
type CreateBranchRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Address string `json:"address" validate:"omitempty,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
}

// UpdateBranchRequest modifies branch fields.
type UpdateBranchRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Address string `json:"address" validate:"omitempty,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Active  *bool  `json:"active"`
}

// CreateEmployeeRequest adds an employee to a branch roster.
type CreateEmployeeRequest struct {
	BranchID string `json:"branchId" validate:"required"`
	FullName string `json:"fullName" validate:"required,max=120"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	UserID   string `json:"userId"`
}

// UpdateEmployeeRequest modifies employee fields.
type UpdateEmployeeRequest struct {
	BranchID string `json:"branchId" validate:"required"`
	FullName string `json:"fullName" validate:"required,max=120"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Status   string `json:"status" validate:"omitempty,oneof=Active Inactive"`
}
