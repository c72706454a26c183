package services

import (
	"context"
	"log"
	"time"

	"tourship/internal/models/db_models"
	"tourship/internal/models/request_models"
	"tourship/internal/models/response_models"
	"tourship/internal/repositories"
	mem "tourship/pkg/memcache"
	"tourship/pkg/utils"

	"gorm.io/datatypes"
)

const resetTokenTTL = 10 * time.Minute

type AccountServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (response_models.AccountResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (response_models.LoginResponse, error)
	GetMe(ctx context.Context, userID string) (response_models.AccountResponse, error)
	UpdateProfile(ctx context.Context, userID string, request request_models.UpdateProfileRequest) (response_models.AccountResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error

	// Admin user management
	ListUsers(ctx context.Context, filter repositories.UserFilter, page utils.Pagination) (response_models.PagedResponse[response_models.AccountResponse], error)
	DeactivateUser(ctx context.Context, userID string) error
	ReactivateUser(ctx context.Context, userID string) error
	ChangeRole(ctx context.Context, userID, role string) (response_models.AccountResponse, error)

	// Startup bootstrap
	EnsureSeedAdmin(ctx context.Context, email, password string) error

	// IsVerified backs the verification middleware gate.
	IsVerified(userID string) bool
}

type AccountService struct {
	userRepo    repositories.UserRepository
	resetTokens mem.ResetTokenStore
	mail        MailService
}

func NewAccountService(userRepo repositories.UserRepository, resetTokens mem.ResetTokenStore, mail MailService) AccountServiceInterface {
	return &AccountService{
		userRepo:    userRepo,
		resetTokens: resetTokens,
		mail:        mail,
	}
}

func (a *AccountService) Register(ctx context.Context, request request_models.RegisterRequest) (response_models.AccountResponse, error) {
	existing, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}
	if existing != nil {
		return response_models.AccountResponse{}, utils.ErrEmailAlreadyExists
	}

	hashed, err := utils.HashPassword(request.Password)
	if err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}

	user := &db_models.User{
		Name:         request.Name,
		Email:        request.Email,
		PasswordHash: hashed,
		Phone:        request.Phone,
		Role:         db_models.Role(request.Role),
		IsActive:     true,
	}

	switch user.Role {
	case db_models.RoleTourist:
		p := db_models.TouristProfile{}
		if request.TouristProfile != nil {
			p.PreferredLanguage = request.TouristProfile.PreferredLanguage
		}
		user.TouristProfile = datatypes.NewJSONType(p)

	case db_models.RoleGuide:
		p := db_models.GuideProfile{
			Verification: db_models.Verification{Status: db_models.VerificationPending},
		}
		if request.GuideProfile != nil {
			p.LicenseNumber = request.GuideProfile.LicenseNumber
			p.Languages = request.GuideProfile.Languages
			p.YearsExperience = request.GuideProfile.YearsExperience
			p.Specialties = request.GuideProfile.Specialties
		}
		user.GuideProfile = datatypes.NewJSONType(p)

	case db_models.RoleOrganiser:
		p := db_models.OrganiserProfile{
			Verification: db_models.Verification{Status: db_models.VerificationPending},
		}
		if request.OrganiserProfile != nil {
			p.CompanyName = request.OrganiserProfile.CompanyName
			p.CompanyType = request.OrganiserProfile.CompanyType
			p.RegistrationNumber = request.OrganiserProfile.RegistrationNumber
			p.Website = request.OrganiserProfile.Website
		}
		user.OrganiserProfile = datatypes.NewJSONType(p)

	default:
		return response_models.AccountResponse{}, utils.ErrInvalidInput
	}

	if err := a.userRepo.Insert(ctx, user); err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}

	return response_models.NewAccountResponse(user), nil
}

// Login fails with the same error whichever check failed, so callers
// cannot probe which emails exist or which accounts were deactivated.
func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (response_models.LoginResponse, error) {
	user, err := a.userRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return response_models.LoginResponse{}, utils.ErrDatabaseError
	}
	if user == nil || !user.IsActive {
		return response_models.LoginResponse{}, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return response_models.LoginResponse{}, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID, string(user.Role))
	if err != nil {
		return response_models.LoginResponse{}, utils.ErrInvalidCredentials
	}

	now := time.Now().Unix()
	user.LastLoginAt = &now
	if err := a.userRepo.Save(ctx, user); err != nil {
		// Login still succeeds; the timestamp is best effort.
		log.Printf("failed to record last login for %s: %v", user.ID, err)
	}

	return response_models.LoginResponse{
		Token:   token,
		Account: response_models.NewAccountResponse(user),
	}, nil
}

func (a *AccountService) GetMe(ctx context.Context, userID string) (response_models.AccountResponse, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}
	if user == nil {
		return response_models.AccountResponse{}, utils.ErrAccountNotFound
	}
	return response_models.NewAccountResponse(user), nil
}

func (a *AccountService) UpdateProfile(ctx context.Context, userID string, request request_models.UpdateProfileRequest) (response_models.AccountResponse, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}
	if user == nil {
		return response_models.AccountResponse{}, utils.ErrAccountNotFound
	}

	if request.Name != nil {
		user.Name = *request.Name
	}
	if request.Phone != nil {
		user.Phone = *request.Phone
	}
	if request.AvatarURL != nil {
		user.AvatarURL = *request.AvatarURL
	}

	// Only the block matching the account's role applies; the rest of the
	// payload is ignored. Verification state never changes here.
	switch user.Role {
	case db_models.RoleTourist:
		if request.TouristProfile != nil {
			p := user.TouristProfile.Data()
			p.PreferredLanguage = request.TouristProfile.PreferredLanguage
			user.TouristProfile = datatypes.NewJSONType(p)
		}
	case db_models.RoleGuide:
		if request.GuideProfile != nil {
			p := user.GuideProfile.Data()
			p.LicenseNumber = request.GuideProfile.LicenseNumber
			p.Languages = request.GuideProfile.Languages
			p.YearsExperience = request.GuideProfile.YearsExperience
			p.Specialties = request.GuideProfile.Specialties
			user.GuideProfile = datatypes.NewJSONType(p)
		}
	case db_models.RoleOrganiser:
		if request.OrganiserProfile != nil {
			p := user.OrganiserProfile.Data()
			p.CompanyName = request.OrganiserProfile.CompanyName
			p.CompanyType = request.OrganiserProfile.CompanyType
			p.RegistrationNumber = request.OrganiserProfile.RegistrationNumber
			p.Website = request.OrganiserProfile.Website
			user.OrganiserProfile = datatypes.NewJSONType(p)
		}
	}

	if err := a.userRepo.Save(ctx, user); err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}

	return response_models.NewAccountResponse(user), nil
}

// ForgotPassword issues a single-use token valid for ten minutes. The
// response is identical whether or not the email exists.
func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil || !user.IsActive {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return utils.ErrDatabaseError
	}
	a.resetTokens.Set(token, user.Email, resetTokenTTL)

	if err := a.mail.SendPasswordReset(user.Email, token); err != nil {
		log.Printf("failed to send reset mail to %s: %v", user.Email, err)
	}
	return nil
}

func (a *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	email := a.resetTokens.Consume(token)
	if email == "" {
		return utils.ErrInvalidResetToken
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrInvalidResetToken
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}
	user.PasswordHash = hashed

	if err := a.userRepo.Save(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AccountService) ListUsers(ctx context.Context, filter repositories.UserFilter, page utils.Pagination) (response_models.PagedResponse[response_models.AccountResponse], error) {
	users, total, err := a.userRepo.List(ctx, filter, page.Page, page.PageSize)
	if err != nil {
		return response_models.PagedResponse[response_models.AccountResponse]{}, utils.ErrDatabaseError
	}

	items := make([]response_models.AccountResponse, 0, len(users))
	for i := range users {
		items = append(items, response_models.NewAccountResponse(&users[i]))
	}

	return response_models.NewPagedResponse(items, page.Page, page.PageSize, total, utils.TotalPages(total, page.PageSize)), nil
}

func (a *AccountService) DeactivateUser(ctx context.Context, userID string) error {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}
	if !user.IsActive {
		return nil
	}

	user.Deactivate()
	if err := a.userRepo.Save(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// ReactivateUser flips the flag back on. The mangled email stays as it
// is; the address may have been re-registered in the meantime.
func (a *AccountService) ReactivateUser(ctx context.Context, userID string) error {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}
	if user.IsActive {
		return nil
	}

	user.IsActive = true
	if err := a.userRepo.Save(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AccountService) ChangeRole(ctx context.Context, userID, role string) (response_models.AccountResponse, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}
	if user == nil {
		return response_models.AccountResponse{}, utils.ErrAccountNotFound
	}

	newRole := db_models.Role(role)
	if newRole == user.Role {
		return response_models.NewAccountResponse(user), nil
	}
	user.Role = newRole

	// Moving into a reviewed role starts a fresh verification.
	switch newRole {
	case db_models.RoleGuide:
		if user.GuideProfile.Data().Verification.Status == "" {
			p := user.GuideProfile.Data()
			p.Verification = db_models.Verification{Status: db_models.VerificationPending}
			user.GuideProfile = datatypes.NewJSONType(p)
		}
	case db_models.RoleOrganiser:
		if user.OrganiserProfile.Data().Verification.Status == "" {
			p := user.OrganiserProfile.Data()
			p.Verification = db_models.Verification{Status: db_models.VerificationPending}
			user.OrganiserProfile = datatypes.NewJSONType(p)
		}
	}

	if err := a.userRepo.Save(ctx, user); err != nil {
		return response_models.AccountResponse{}, utils.ErrDatabaseError
	}
	return response_models.NewAccountResponse(user), nil
}

// EnsureSeedAdmin creates the first admin account from configuration.
// It does nothing when an admin already exists or the seed is not set.
func (a *AccountService) EnsureSeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	n, err := a.userRepo.CountAdmins(ctx)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if n > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	admin := &db_models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hashed,
		Role:         db_models.RoleAdmin,
		IsActive:     true,
		AdminProfile: datatypes.NewJSONType(db_models.AdminProfile{
			Permissions: []string{"*"},
		}),
	}

	if err := a.userRepo.Insert(ctx, admin); err != nil {
		return utils.ErrDatabaseError
	}
	log.Printf("seeded admin account %s", email)
	return nil
}

// IsVerified loads the account and checks its verification document.
// Used by the middleware gate on organiser and guide routes.
func (a *AccountService) IsVerified(userID string) bool {
	user, err := a.userRepo.FindByID(context.Background(), userID)
	if err != nil || user == nil {
		return false
	}
	return user.IsActive && user.IsVerified()
}
