package request_models

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=tourist guide organiser admin"`
}

// ListUsersQuery filters the admin user index.
type ListUsersQuery struct {
	Role   string `form:"role" binding:"omitempty,oneof=tourist guide organiser admin"`
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
	Search string `form:"q"`
}
