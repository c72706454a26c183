package db_models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleTourist   Role = "tourist"
	RoleGuide     Role = "guide"
	RoleOrganiser Role = "organiser"
	RoleAdmin     Role = "admin"
)

type VerificationStatus string

const (
	VerificationPending     VerificationStatus = "pending"
	VerificationUnderReview VerificationStatus = "under_review"
	VerificationApproved    VerificationStatus = "approved"
	VerificationRejected    VerificationStatus = "rejected"
)

// verificationTransitions lists the allowed next states. Resubmission
// after a rejection re-enters the review queue.
var verificationTransitions = map[VerificationStatus][]VerificationStatus{
	VerificationPending:     {VerificationUnderReview},
	VerificationUnderReview: {VerificationApproved, VerificationRejected},
	VerificationRejected:    {VerificationUnderReview},
}

func (s VerificationStatus) CanTransitionTo(next VerificationStatus) bool {
	for _, allowed := range verificationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Verification tracks the review of a guide or organiser profile.
type Verification struct {
	Status          VerificationStatus `json:"status"`
	SubmittedAt     *int64             `json:"submitted_at,omitempty"`
	ReviewedAt      *int64             `json:"reviewed_at,omitempty"`
	ReviewerID      *uuid.UUID         `json:"reviewer_id,omitempty"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
}

type TouristProfile struct {
	PreferredLanguage string      `json:"preferred_language,omitempty"`
	Wishlist          []uuid.UUID `json:"wishlist,omitempty"`
	BookingsCount     int         `json:"bookings_count"`
}

type GuideProfile struct {
	LicenseNumber   string       `json:"license_number,omitempty"`
	Languages       []string     `json:"languages,omitempty"`
	YearsExperience int          `json:"years_experience"`
	Specialties     []string     `json:"specialties,omitempty"`
	ToursAssigned   int          `json:"tours_assigned"`
	ToursCompleted  int          `json:"tours_completed"`
	Verification    Verification `json:"verification"`
}

type OrganiserProfile struct {
	CompanyName        string       `json:"company_name,omitempty"`
	CompanyType        string       `json:"company_type,omitempty"`
	RegistrationNumber string       `json:"registration_number,omitempty"`
	Website            string       `json:"website,omitempty"`
	TripsPublished     int          `json:"trips_published"`
	Verification       Verification `json:"verification"`
}

type AdminProfile struct {
	Permissions []string `json:"permissions,omitempty"`
}

// User is one account. Role decides which profile column is meaningful;
// the other three stay at their zero value and are ignored.
type User struct {
	BaseModel
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Phone        string
	AvatarURL    string

	Role        Role  `gorm:"index"`
	IsActive    bool  `gorm:"default:true"`
	LastLoginAt *int64

	TouristProfile   datatypes.JSONType[TouristProfile]   `gorm:"type:jsonb;default:'{}'"`
	GuideProfile     datatypes.JSONType[GuideProfile]     `gorm:"type:jsonb;default:'{}'"`
	OrganiserProfile datatypes.JSONType[OrganiserProfile] `gorm:"type:jsonb;default:'{}'"`
	AdminProfile     datatypes.JSONType[AdminProfile]     `gorm:"type:jsonb;default:'{}'"`
}

// Verification returns the review sub-document for guide and organiser
// accounts; other roles carry none.
func (u *User) Verification() *Verification {
	switch u.Role {
	case RoleGuide:
		p := u.GuideProfile.Data()
		return &p.Verification
	case RoleOrganiser:
		p := u.OrganiserProfile.Data()
		return &p.Verification
	default:
		return nil
	}
}

// SetVerification writes the review sub-document back into the profile
// column matching the user's role.
func (u *User) SetVerification(v Verification) {
	switch u.Role {
	case RoleGuide:
		p := u.GuideProfile.Data()
		p.Verification = v
		u.GuideProfile = datatypes.NewJSONType(p)
	case RoleOrganiser:
		p := u.OrganiserProfile.Data()
		p.Verification = v
		u.OrganiserProfile = datatypes.NewJSONType(p)
	}
}

// IsVerified reports whether the account may perform actions gated on an
// approved profile. Tourists and admins have no review step.
func (u *User) IsVerified() bool {
	v := u.Verification()
	if v == nil {
		return u.Role == RoleTourist || u.Role == RoleAdmin
	}
	return v.Status == VerificationApproved
}

// Deactivate soft-deletes the account: the email is mangled so the
// address can register again later.
func (u *User) Deactivate() {
	u.IsActive = false
	u.Email = fmt.Sprintf("deleted_%d_%s", time.Now().Unix(), u.Email)
}
