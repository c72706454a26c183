package request_models

// SubmitGuideVerificationRequest carries the fields an admin reviews.
// Submission also updates the matching profile fields.
type SubmitGuideVerificationRequest struct {
	LicenseNumber   string   `json:"license_number" binding:"required"`
	Languages       []string `json:"languages"`
	YearsExperience int      `json:"years_experience" binding:"gte=0"`
	Specialties     []string `json:"specialties"`
}

type SubmitOrganiserVerificationRequest struct {
	CompanyName        string `json:"company_name" binding:"required"`
	CompanyType        string `json:"company_type" binding:"required"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
	Website            string `json:"website"`
}

type ReviewVerificationRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
	Reason   string `json:"reason" binding:"required_if=Decision rejected,max=500"`
}

// ListVerificationsQuery filters the admin review queue.
type ListVerificationsQuery struct {
	Role   string `form:"role" binding:"omitempty,oneof=guide organiser"`
	Status string `form:"status" binding:"omitempty,oneof=pending under_review approved rejected"`
}
