package response_models

import "tourship/internal/models/db_models"

type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

// AccountResponse never carries the password hash. Exactly one profile
// pointer is set, matching the role.
type AccountResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
	LastLoginAt *int64 `json:"last_login_at,omitempty"`
	CreatedAt   int64  `json:"created_at"`

	TouristProfile   *db_models.TouristProfile   `json:"tourist_profile,omitempty"`
	GuideProfile     *db_models.GuideProfile     `json:"guide_profile,omitempty"`
	OrganiserProfile *db_models.OrganiserProfile `json:"organiser_profile,omitempty"`
	AdminProfile     *db_models.AdminProfile     `json:"admin_profile,omitempty"`
}

// NewAccountResponse maps a user row to its public view.
func NewAccountResponse(u *db_models.User) AccountResponse {
	resp := AccountResponse{
		ID:          u.ID.String(),
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		AvatarURL:   u.AvatarURL,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
	switch u.Role {
	case db_models.RoleTourist:
		p := u.TouristProfile.Data()
		resp.TouristProfile = &p
	case db_models.RoleGuide:
		p := u.GuideProfile.Data()
		resp.GuideProfile = &p
	case db_models.RoleOrganiser:
		p := u.OrganiserProfile.Data()
		resp.OrganiserProfile = &p
	case db_models.RoleAdmin:
		p := u.AdminProfile.Data()
		resp.AdminProfile = &p
	}
	return resp
}

// VerificationResponse is the admin review-queue line item.
type VerificationResponse struct {
	UserID          string `json:"user_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	Status          string `json:"status"`
	SubmittedAt     *int64 `json:"submitted_at,omitempty"`
	ReviewedAt      *int64 `json:"reviewed_at,omitempty"`
	ReviewerID      string `json:"reviewer_id,omitempty"`
	RejectionReason string `json:"rejection_reason,omitempty"`

	GuideProfile     *db_models.GuideProfile     `json:"guide_profile,omitempty"`
	OrganiserProfile *db_models.OrganiserProfile `json:"organiser_profile,omitempty"`
}

func NewVerificationResponse(u *db_models.User) VerificationResponse {
	resp := VerificationResponse{
		UserID: u.ID.String(),
		Name:   u.Name,
		Email:  u.Email,
		Role:   string(u.Role),
	}
	if v := u.Verification(); v != nil {
		resp.Status = string(v.Status)
		resp.SubmittedAt = v.SubmittedAt
		resp.ReviewedAt = v.ReviewedAt
		resp.RejectionReason = v.RejectionReason
		if v.ReviewerID != nil {
			resp.ReviewerID = v.ReviewerID.String()
		}
	}
	switch u.Role {
	case db_models.RoleGuide:
		p := u.GuideProfile.Data()
		resp.GuideProfile = &p
	case db_models.RoleOrganiser:
		p := u.OrganiserProfile.Data()
		resp.OrganiserProfile = &p
	}
	return resp
}
