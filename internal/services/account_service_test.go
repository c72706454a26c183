package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tourship/internal/models/db_models"
	"tourship/internal/models/request_models"
	"tourship/internal/repositories"
	mem "tourship/pkg/memcache"
	"tourship/pkg/utils"
)

func newTestAccountService(db *gorm.DB, mail MailService) AccountServiceInterface {
	return NewAccountService(repositories.NewUserRepository(db), mem.NewResetTokens(), mail)
}

func registerRequest(email, role string) request_models.RegisterRequest {
	return request_models.RegisterRequest{
		Name:     "Dara Chan",
		Email:    email,
		Password: "secret123",
		Role:     role,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAccountService(db, &mailRecorder{})
	ctx := context.Background()

	account, err := svc.Register(ctx, registerRequest("dara@example.com", "tourist"))
	require.NoError(t, err)
	assert.Equal(t, "tourist", account.Role)
	assert.True(t, account.IsActive)
	require.NotNil(t, account.TouristProfile)

	resp, err := svc.Login(ctx, request_models.LoginRequest{Email: "dara@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, account.ID, resp.Account.ID)
	assert.NotNil(t, resp.Account.LastLoginAt)
}

// Whether the email is unknown, the password wrong or the account
// deactivated, the caller sees the same failure.
func TestLoginFailsUniformly(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAccountService(db, &mailRecorder{})
	ctx := context.Background()

	account, err := svc.Register(ctx, registerRequest("dara@example.com", "tourist"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "dara@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	require.NoError(t, svc.DeactivateUser(ctx, account.ID))
	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "dara@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAccountService(db, &mailRecorder{})
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("dara@example.com", "tourist"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest("dara@example.com", "guide"))
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestRegisterGuideStartsPendingVerification(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAccountService(db, &mailRecorder{})
	ctx := context.Background()

	request := registerRequest("guide@example.com", "guide")
	request.GuideProfile = &request_models.GuideProfilePayload{
		LicenseNumber:   "G-2042",
		Languages:       []string{"en", "km"},
		YearsExperience: 4,
	}
	account, err := svc.Register(ctx, request)
	require.NoError(t, err)

	require.NotNil(t, account.GuideProfile)
	assert.Equal(t, "G-2042", account.GuideProfile.LicenseNumber)
	assert.Equal(t, db_models.VerificationPending, account.GuideProfile.Verification.Status)

	// The pending guide is not yet allowed through the verified gate.
	assert.False(t, svc.IsVerified(account.ID))
}

func TestPasswordResetFlow(t *testing.T) {
	db := newTestDB(t)
	mail := &mailRecorder{}
	svc := newTestAccountService(db, mail)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("dara@example.com", "tourist"))
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "dara@example.com"))
	require.Len(t, mail.resets, 1)
	assert.Equal(t, "dara@example.com", mail.resets[0].to)
	token := mail.resets[0].token
	require.NotEmpty(t, token)

	require.NoError(t, svc.ResetPassword(ctx, token, "brand-new-pass"))

	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "dara@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, err = svc.Login(ctx, request_models.LoginRequest{Email: "dara@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)

	// Tokens are single use.
	assert.ErrorIs(t, svc.ResetPassword(ctx, token, "another-pass"), utils.ErrInvalidResetToken)
	assert.ErrorIs(t, svc.ResetPassword(ctx, "made-up-token", "another-pass"), utils.ErrInvalidResetToken)
}

func TestForgotPasswordStaysSilentForUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	mail := &mailRecorder{}
	svc := newTestAccountService(db, mail)

	assert.NoError(t, svc.ForgotPassword(context.Background(), "nobody@example.com"))
	assert.Empty(t, mail.resets)
}

func TestDeactivateManglesEmailAndReactivateKeepsIt(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAccountService(db, &mailRecorder{})
	ctx := context.Background()

	account, err := svc.Register(ctx, registerRequest("dara@example.com", "tourist"))
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateUser(ctx, account.ID))
	require.NoError(t, svc.DeactivateUser(ctx, account.ID)) // already inactive, no-op

	me, err := svc.GetMe(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, me.IsActive)
	assert.True(t, strings.HasPrefix(me.Email, "deleted_"))
	assert.True(t, strings.HasSuffix(me.Email, "dara@example.com"))

	// The freed address can register again while the old row sticks around.
	_, err = svc.Register(ctx, registerRequest("dara@example.com", "tourist"))
	require.NoError(t, err)

	require.NoError(t, svc.ReactivateUser(ctx, account.ID))
	me, err = svc.GetMe(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, me.IsActive)
	assert.True(t, strings.HasPrefix(me.Email, "deleted_"))
}

func TestUpdateProfileAppliesOnlyMatchingRoleBlock(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAccountService(db, &mailRecorder{})
	ctx := context.Background()

	account, err := svc.Register(ctx, registerRequest("dara@example.com", "tourist"))
	require.NoError(t, err)

	name := "Dara C."
	updated, err := svc.UpdateProfile(ctx, account.ID, request_models.UpdateProfileRequest{
		Name:           &name,
		TouristProfile: &request_models.TouristProfilePayload{PreferredLanguage: "km"},
		GuideProfile:   &request_models.GuideProfilePayload{LicenseNumber: "G-9999"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Dara C.", updated.Name)
	require.NotNil(t, updated.TouristProfile)
	assert.Equal(t, "km", updated.TouristProfile.PreferredLanguage)

	// The guide block was ignored for a tourist account.
	stored := reloadUser(t, db, uuidFrom(t, account.ID))
	assert.Empty(t, stored.GuideProfile.Data().LicenseNumber)
}

func TestChangeRoleSeedsFreshVerification(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAccountService(db, &mailRecorder{})
	ctx := context.Background()

	account, err := svc.Register(ctx, registerRequest("dara@example.com", "tourist"))
	require.NoError(t, err)

	changed, err := svc.ChangeRole(ctx, account.ID, "organiser")
	require.NoError(t, err)
	assert.Equal(t, "organiser", changed.Role)
	require.NotNil(t, changed.OrganiserProfile)
	assert.Equal(t, db_models.VerificationPending, changed.OrganiserProfile.Verification.Status)

	// Same role again is a no-op.
	_, err = svc.ChangeRole(ctx, account.ID, "organiser")
	require.NoError(t, err)
}

func TestChangeRolePreservesEarlierVerification(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAccountService(db, &mailRecorder{})
	ctx := context.Background()

	guide := seedGuide(t, db, true)

	_, err := svc.ChangeRole(ctx, guide.ID.String(), "tourist")
	require.NoError(t, err)

	// Back to guide: the approved review is still on file, no new round.
	changed, err := svc.ChangeRole(ctx, guide.ID.String(), "guide")
	require.NoError(t, err)
	require.NotNil(t, changed.GuideProfile)
	assert.Equal(t, db_models.VerificationApproved, changed.GuideProfile.Verification.Status)
}

func TestEnsureSeedAdminRunsOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAccountService(db, &mailRecorder{})
	ctx := context.Background()

	require.NoError(t, svc.EnsureSeedAdmin(ctx, "", ""))
	var n int64
	require.NoError(t, db.Model(&db_models.User{}).Where("role = ?", db_models.RoleAdmin).Count(&n).Error)
	assert.Equal(t, int64(0), n)

	require.NoError(t, svc.EnsureSeedAdmin(ctx, "admin@example.com", "admin-pass"))
	require.NoError(t, svc.EnsureSeedAdmin(ctx, "admin@example.com", "admin-pass"))
	require.NoError(t, db.Model(&db_models.User{}).Where("role = ?", db_models.RoleAdmin).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	resp, err := svc.Login(ctx, request_models.LoginRequest{Email: "admin@example.com", Password: "admin-pass"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Account.Role)
}

func TestIsVerifiedByRole(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAccountService(db, &mailRecorder{})

	tourist := seedTourist(t, db)
	pendingGuide := seedGuide(t, db, false)
	approvedGuide := seedGuide(t, db, true)

	assert.True(t, svc.IsVerified(tourist.ID.String()))
	assert.False(t, svc.IsVerified(pendingGuide.ID.String()))
	assert.True(t, svc.IsVerified(approvedGuide.ID.String()))

	// Deactivation closes the gate regardless of the review outcome.
	require.NoError(t, svc.DeactivateUser(context.Background(), approvedGuide.ID.String()))
	assert.False(t, svc.IsVerified(approvedGuide.ID.String()))

	assert.False(t, svc.IsVerified("not-a-uuid"))
}

func TestListUsersFilters(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAccountService(db, &mailRecorder{})
	ctx := context.Background()

	seedTourist(t, db)
	seedTourist(t, db)
	guide := seedGuide(t, db, false)
	require.NoError(t, svc.DeactivateUser(ctx, guide.ID.String()))

	page := utils.Pagination{Page: 1, PageSize: 20}

	guides, err := svc.ListUsers(ctx, repositories.UserFilter{Role: "guide"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), guides.Total)

	inactive, err := svc.ListUsers(ctx, repositories.UserFilter{Status: "inactive"}, page)
	require.NoError(t, err)
	require.Len(t, inactive.Items, 1)
	assert.Equal(t, guide.ID.String(), inactive.Items[0].ID)

	byName, err := svc.ListUsers(ctx, repositories.UserFilter{Search: "tourist user"}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), byName.Total)
}
