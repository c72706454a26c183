package request_models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RegisterRequest carries the shared fields plus the profile block
// matching the requested role. Admin accounts are seeded, not registered.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required,oneof=tourist guide organiser"`

	TouristProfile   *TouristProfilePayload   `json:"tourist_profile"`
	GuideProfile     *GuideProfilePayload     `json:"guide_profile"`
	OrganiserProfile *OrganiserProfilePayload `json:"organiser_profile"`
}

type TouristProfilePayload struct {
	PreferredLanguage string `json:"preferred_language"`
}

type GuideProfilePayload struct {
	LicenseNumber   string   `json:"license_number"`
	Languages       []string `json:"languages"`
	YearsExperience int      `json:"years_experience" binding:"gte=0"`
	Specialties     []string `json:"specialties"`
}

type OrganiserProfilePayload struct {
	CompanyName        string `json:"company_name"`
	CompanyType        string `json:"company_type"`
	RegistrationNumber string `json:"registration_number"`
	Website            string `json:"website"`
}

// UpdateProfileRequest is a typed patch: nil means leave unchanged.
type UpdateProfileRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=2,max=100"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`

	TouristProfile   *TouristProfilePayload   `json:"tourist_profile"`
	GuideProfile     *GuideProfilePayload     `json:"guide_profile"`
	OrganiserProfile *OrganiserProfilePayload `json:"organiser_profile"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}
