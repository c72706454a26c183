package services

import (
	"context"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tourship/internal/models/db_models"
	"tourship/internal/models/request_models"
	"tourship/internal/models/response_models"
	"tourship/internal/repositories"
	"tourship/pkg/utils"
)

type VerificationServiceInterface interface {
	SubmitGuide(ctx context.Context, userID string, request request_models.SubmitGuideVerificationRequest) (response_models.VerificationResponse, error)
	SubmitOrganiser(ctx context.Context, userID string, request request_models.SubmitOrganiserVerificationRequest) (response_models.VerificationResponse, error)
	GetOwn(ctx context.Context, userID string) (response_models.VerificationResponse, error)
	ListQueue(ctx context.Context, role, status string, page utils.Pagination) (response_models.PagedResponse[response_models.VerificationResponse], error)
	Review(ctx context.Context, reviewerID, userID string, request request_models.ReviewVerificationRequest) (response_models.VerificationResponse, error)
}

type VerificationService struct {
	userRepo repositories.UserRepository
	mail     MailService
}

func NewVerificationService(userRepo repositories.UserRepository, mail MailService) VerificationServiceInterface {
	return &VerificationService{
		userRepo: userRepo,
		mail:     mail,
	}
}

func (v *VerificationService) SubmitGuide(ctx context.Context, userID string, request request_models.SubmitGuideVerificationRequest) (response_models.VerificationResponse, error) {
	user, err := v.loadForRole(ctx, userID, db_models.RoleGuide)
	if err != nil {
		return response_models.VerificationResponse{}, err
	}

	p := user.GuideProfile.Data()
	p.LicenseNumber = request.LicenseNumber
	p.Languages = request.Languages
	p.YearsExperience = request.YearsExperience
	p.Specialties = request.Specialties
	user.GuideProfile = datatypes.NewJSONType(p)

	return v.moveToReview(ctx, user)
}

func (v *VerificationService) SubmitOrganiser(ctx context.Context, userID string, request request_models.SubmitOrganiserVerificationRequest) (response_models.VerificationResponse, error) {
	user, err := v.loadForRole(ctx, userID, db_models.RoleOrganiser)
	if err != nil {
		return response_models.VerificationResponse{}, err
	}

	p := user.OrganiserProfile.Data()
	p.CompanyName = request.CompanyName
	p.CompanyType = request.CompanyType
	p.RegistrationNumber = request.RegistrationNumber
	p.Website = request.Website
	user.OrganiserProfile = datatypes.NewJSONType(p)

	return v.moveToReview(ctx, user)
}

func (v *VerificationService) GetOwn(ctx context.Context, userID string) (response_models.VerificationResponse, error) {
	user, err := v.userRepo.FindByID(ctx, userID)
	if err != nil {
		return response_models.VerificationResponse{}, utils.ErrDatabaseError
	}
	if user == nil {
		return response_models.VerificationResponse{}, utils.ErrAccountNotFound
	}
	if user.Verification() == nil {
		return response_models.VerificationResponse{}, utils.ErrInvalidInput
	}
	return response_models.NewVerificationResponse(user), nil
}

// ListQueue pages the admin review queue. The repository matches the
// status on the raw profile text, so each row is re-checked against the
// decoded document here.
func (v *VerificationService) ListQueue(ctx context.Context, role, status string, page utils.Pagination) (response_models.PagedResponse[response_models.VerificationResponse], error) {
	users, total, err := v.userRepo.ListForVerification(ctx, role, status, page.Page, page.PageSize)
	if err != nil {
		return response_models.PagedResponse[response_models.VerificationResponse]{}, utils.ErrDatabaseError
	}

	items := make([]response_models.VerificationResponse, 0, len(users))
	for i := range users {
		ver := users[i].Verification()
		if ver == nil {
			continue
		}
		if status != "" && string(ver.Status) != status {
			total--
			continue
		}
		items = append(items, response_models.NewVerificationResponse(&users[i]))
	}

	return response_models.NewPagedResponse(items, page.Page, page.PageSize, total, utils.TotalPages(total, page.PageSize)), nil
}

func (v *VerificationService) Review(ctx context.Context, reviewerID, userID string, request request_models.ReviewVerificationRequest) (response_models.VerificationResponse, error) {
	user, err := v.userRepo.FindByID(ctx, userID)
	if err != nil {
		return response_models.VerificationResponse{}, utils.ErrDatabaseError
	}
	if user == nil {
		return response_models.VerificationResponse{}, utils.ErrAccountNotFound
	}

	ver := user.Verification()
	if ver == nil {
		return response_models.VerificationResponse{}, utils.ErrInvalidInput
	}

	target := db_models.VerificationStatus(request.Decision)
	if !ver.Status.CanTransitionTo(target) {
		return response_models.VerificationResponse{}, utils.ErrInvalidTransition
	}

	now := utils.NowUnixSeconds()
	reviewer, err := uuid.Parse(reviewerID)
	if err != nil {
		return response_models.VerificationResponse{}, utils.ErrInvalidInput
	}

	ver.Status = target
	ver.ReviewedAt = &now
	ver.ReviewerID = &reviewer
	if target == db_models.VerificationRejected {
		ver.RejectionReason = request.Reason
	} else {
		ver.RejectionReason = ""
	}
	user.SetVerification(*ver)

	if err := v.userRepo.Save(ctx, user); err != nil {
		return response_models.VerificationResponse{}, utils.ErrDatabaseError
	}

	approved := target == db_models.VerificationApproved
	if err := v.mail.SendVerificationDecision(user.Email, user.Name, approved, request.Reason); err != nil {
		log.Printf("failed to send verification decision to %s: %v", user.Email, err)
	}

	return response_models.NewVerificationResponse(user), nil
}

// ---- helpers ----

func (v *VerificationService) loadForRole(ctx context.Context, userID string, role db_models.Role) (*db_models.User, error) {
	user, err := v.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	if user.Role != role {
		return nil, utils.ErrForbidden
	}
	return user, nil
}

// moveToReview pushes the verification into under_review and stamps the
// submission. Only pending and rejected documents may enter review.
func (v *VerificationService) moveToReview(ctx context.Context, user *db_models.User) (response_models.VerificationResponse, error) {
	ver := user.Verification()
	if ver == nil {
		return response_models.VerificationResponse{}, utils.ErrInvalidInput
	}
	if !ver.Status.CanTransitionTo(db_models.VerificationUnderReview) {
		return response_models.VerificationResponse{}, utils.ErrInvalidTransition
	}

	now := utils.NowUnixSeconds()
	ver.Status = db_models.VerificationUnderReview
	ver.SubmittedAt = &now
	ver.ReviewedAt = nil
	ver.ReviewerID = nil
	ver.RejectionReason = ""
	user.SetVerification(*ver)

	if err := v.userRepo.Save(ctx, user); err != nil {
		return response_models.VerificationResponse{}, utils.ErrDatabaseError
	}

	return response_models.NewVerificationResponse(user), nil
}
