package db_models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestVerificationTransitions(t *testing.T) {
	assert.True(t, VerificationPending.CanTransitionTo(VerificationUnderReview))
	assert.True(t, VerificationUnderReview.CanTransitionTo(VerificationApproved))
	assert.True(t, VerificationUnderReview.CanTransitionTo(VerificationRejected))
	assert.True(t, VerificationRejected.CanTransitionTo(VerificationUnderReview))

	assert.False(t, VerificationPending.CanTransitionTo(VerificationApproved))
	assert.False(t, VerificationApproved.CanTransitionTo(VerificationRejected))
	assert.False(t, VerificationApproved.CanTransitionTo(VerificationUnderReview))
}

func TestUserVerificationByRole(t *testing.T) {
	tourist := User{Role: RoleTourist}
	assert.Nil(t, tourist.Verification())
	assert.True(t, tourist.IsVerified())

	admin := User{Role: RoleAdmin}
	assert.Nil(t, admin.Verification())
	assert.True(t, admin.IsVerified())

	guide := User{Role: RoleGuide}
	assert.NotNil(t, guide.Verification())
	assert.False(t, guide.IsVerified())

	guide.SetVerification(Verification{Status: VerificationApproved})
	assert.True(t, guide.IsVerified())
	assert.Equal(t, VerificationApproved, guide.GuideProfile.Data().Verification.Status)

	organiser := User{Role: RoleOrganiser}
	organiser.SetVerification(Verification{Status: VerificationRejected, RejectionReason: "missing registration number"})
	assert.False(t, organiser.IsVerified())
	assert.Equal(t, "missing registration number", organiser.Verification().RejectionReason)
}

func TestSetVerificationKeepsProfileFields(t *testing.T) {
	guide := User{Role: RoleGuide}
	guide.GuideProfile = datatypes.NewJSONType(GuideProfile{
		LicenseNumber: "GD-1042",
		Languages:     []string{"en", "fr"},
	})

	guide.SetVerification(Verification{Status: VerificationUnderReview})

	p := guide.GuideProfile.Data()
	assert.Equal(t, "GD-1042", p.LicenseNumber)
	assert.Equal(t, []string{"en", "fr"}, p.Languages)
	assert.Equal(t, VerificationUnderReview, p.Verification.Status)
}

func TestDeactivateManglesEmail(t *testing.T) {
	u := User{Role: RoleTourist, IsActive: true, Email: "ana@example.com"}
	u.Deactivate()

	assert.False(t, u.IsActive)
	assert.True(t, strings.HasPrefix(u.Email, "deleted_"))
	assert.True(t, strings.HasSuffix(u.Email, "_ana@example.com"))
}
