package services

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tourship/internal/models/db_models"
	"tourship/internal/models/request_models"
	"tourship/internal/models/response_models"
	"tourship/internal/repositories"
	"tourship/pkg/utils"
)

type AttractionServiceInterface interface {
	Create(ctx context.Context, adminID string, request request_models.CreateAttractionRequest) (response_models.AttractionDetail, error)
	BulkCreate(ctx context.Context, adminID string, request request_models.BulkCreateAttractionsRequest) ([]response_models.AttractionDetail, error)
	Update(ctx context.Context, id string, request request_models.UpdateAttractionRequest) (response_models.AttractionDetail, error)
	Delete(ctx context.Context, id string) error
	BulkSetStatus(ctx context.Context, request request_models.BulkAttractionStatusRequest) (int64, error)
	BulkDelete(ctx context.Context, request request_models.BulkAttractionDeleteRequest) (int64, error)

	List(ctx context.Context, query request_models.ListAttractionsQuery, page utils.Pagination, publicOnly bool) (response_models.PagedResponse[response_models.AttractionSummary], error)
	GetDetail(ctx context.Context, idOrSlug string, publicView bool) (response_models.AttractionDetail, error)

	AddReview(ctx context.Context, userID, attractionID string, request request_models.AddReviewRequest) (response_models.AttractionDetail, error)
	ListReviews(ctx context.Context, attractionID string, page utils.Pagination) (response_models.PagedResponse[db_models.Review], error)

	AddToWishlist(ctx context.Context, userID, attractionID string) error
	RemoveFromWishlist(ctx context.Context, userID, attractionID string) error

	Stats(ctx context.Context, id string) (response_models.AttractionStats, error)
	CatalogueStats(ctx context.Context) (response_models.CatalogueStats, error)
}

type AttractionService struct {
	attractionRepo repositories.AttractionRepository
	userRepo       repositories.UserRepository
}

func NewAttractionService(attractionRepo repositories.AttractionRepository, userRepo repositories.UserRepository) AttractionServiceInterface {
	return &AttractionService{
		attractionRepo: attractionRepo,
		userRepo:       userRepo,
	}
}

func (s *AttractionService) Create(ctx context.Context, adminID string, request request_models.CreateAttractionRequest) (response_models.AttractionDetail, error) {
	creator, err := uuid.Parse(adminID)
	if err != nil {
		return response_models.AttractionDetail{}, utils.ErrInvalidInput
	}

	slug, err := s.uniqueSlug(ctx, request.Name, request.City)
	if err != nil {
		return response_models.AttractionDetail{}, err
	}

	attraction := &db_models.Attraction{
		Name:        request.Name,
		Slug:        slug,
		Description: request.Description,
		City:        request.City,
		Country:     request.Country,
		Category:    request.Category,
		Tags:        datatypes.NewJSONSlice(request.Tags),
		IsFeatured:  request.IsFeatured,
		IsUnesco:    request.IsUnesco,
		Status:      db_models.AttractionVisible,
		CreatedBy:   creator,
	}
	applyAttractionDocs(attraction, request.Location, request.OpeningHours, request.EntryFee, request.Media)
	attraction.RecalculateRatings()
	attraction.RecalculatePopularity()

	if err := s.attractionRepo.Insert(ctx, attraction); err != nil {
		return response_models.AttractionDetail{}, utils.ErrDatabaseError
	}

	return response_models.NewAttractionDetail(attraction, true), nil
}

// BulkCreate imports a batch one by one so each entry gets its own slug
// collision handling. The batch is not atomic; entries that fail return
// an error and stop the import.
func (s *AttractionService) BulkCreate(ctx context.Context, adminID string, request request_models.BulkCreateAttractionsRequest) ([]response_models.AttractionDetail, error) {
	out := make([]response_models.AttractionDetail, 0, len(request.Attractions))
	for _, entry := range request.Attractions {
		detail, err := s.Create(ctx, adminID, entry)
		if err != nil {
			return out, err
		}
		out = append(out, detail)
	}
	return out, nil
}

func (s *AttractionService) Update(ctx context.Context, id string, request request_models.UpdateAttractionRequest) (response_models.AttractionDetail, error) {
	attraction, err := s.attractionRepo.FindByID(ctx, id)
	if err != nil {
		return response_models.AttractionDetail{}, utils.ErrDatabaseError
	}
	if attraction == nil {
		return response_models.AttractionDetail{}, utils.ErrAttractionNotFound
	}

	renamed := false
	if request.Name != nil && *request.Name != attraction.Name {
		attraction.Name = *request.Name
		renamed = true
	}
	if request.City != nil && *request.City != attraction.City {
		attraction.City = *request.City
		renamed = true
	}
	if renamed {
		slug, err := s.uniqueSlug(ctx, attraction.Name, attraction.City)
		if err != nil {
			return response_models.AttractionDetail{}, err
		}
		attraction.Slug = slug
	}

	if request.Description != nil {
		attraction.Description = *request.Description
	}
	if request.Country != nil {
		attraction.Country = *request.Country
	}
	if request.Category != nil {
		attraction.Category = *request.Category
	}
	if request.Tags != nil {
		attraction.Tags = datatypes.NewJSONSlice(request.Tags)
	}
	if request.IsFeatured != nil {
		attraction.IsFeatured = *request.IsFeatured
	}
	if request.IsUnesco != nil {
		attraction.IsUnesco = *request.IsUnesco
	}
	if request.Status != nil {
		attraction.Status = db_models.AttractionStatus(*request.Status)
	}
	applyAttractionDocs(attraction, request.Location, request.OpeningHours, request.EntryFee, request.Media)
	attraction.RecalculatePopularity()

	if err := s.attractionRepo.Save(ctx, attraction); err != nil {
		return response_models.AttractionDetail{}, utils.ErrDatabaseError
	}

	return response_models.NewAttractionDetail(attraction, true), nil
}

func (s *AttractionService) Delete(ctx context.Context, id string) error {
	attraction, err := s.attractionRepo.FindByID(ctx, id)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if attraction == nil {
		return utils.ErrAttractionNotFound
	}
	if err := s.attractionRepo.Delete(ctx, attraction.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *AttractionService) BulkSetStatus(ctx context.Context, request request_models.BulkAttractionStatusRequest) (int64, error) {
	ids, err := parseUUIDs(request.IDs)
	if err != nil {
		return 0, utils.ErrInvalidInput
	}
	n, err := s.attractionRepo.BulkSetStatus(ctx, ids, db_models.AttractionStatus(request.Status))
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	return n, nil
}

func (s *AttractionService) BulkDelete(ctx context.Context, request request_models.BulkAttractionDeleteRequest) (int64, error) {
	ids, err := parseUUIDs(request.IDs)
	if err != nil {
		return 0, utils.ErrInvalidInput
	}
	n, err := s.attractionRepo.BulkDelete(ctx, ids)
	if err != nil {
		return 0, utils.ErrDatabaseError
	}
	return n, nil
}

func (s *AttractionService) List(ctx context.Context, query request_models.ListAttractionsQuery, page utils.Pagination, publicOnly bool) (response_models.PagedResponse[response_models.AttractionSummary], error) {
	filter := repositories.AttractionFilter{
		City:       query.City,
		Country:    query.Country,
		Category:   query.Category,
		Tag:        query.Tag,
		Search:     query.Search,
		MinRating:  query.MinRating,
		IsFeatured: query.IsFeatured,
		IsUnesco:   query.IsUnesco,
	}
	if publicOnly {
		filter.Status = db_models.AttractionVisible
	}

	attractions, total, err := s.attractionRepo.List(ctx, filter, query.Sort, page.Page, page.PageSize)
	if err != nil {
		return response_models.PagedResponse[response_models.AttractionSummary]{}, utils.ErrDatabaseError
	}

	items := make([]response_models.AttractionSummary, 0, len(attractions))
	for i := range attractions {
		items = append(items, response_models.NewAttractionSummary(&attractions[i], !publicOnly))
	}

	return response_models.NewPagedResponse(items, page.Page, page.PageSize, total, utils.TotalPages(total, page.PageSize)), nil
}

// GetDetail resolves either a uuid or a slug. The public view only sees
// visible entries and counts the visit.
func (s *AttractionService) GetDetail(ctx context.Context, idOrSlug string, publicView bool) (response_models.AttractionDetail, error) {
	attraction, err := s.find(ctx, idOrSlug)
	if err != nil {
		return response_models.AttractionDetail{}, err
	}
	if attraction == nil {
		return response_models.AttractionDetail{}, utils.ErrAttractionNotFound
	}

	if publicView {
		if attraction.Status != db_models.AttractionVisible {
			return response_models.AttractionDetail{}, utils.ErrAttractionNotFound
		}
		attraction.ViewCount++
		attraction.RecalculatePopularity()
		if err := s.attractionRepo.Save(ctx, attraction); err != nil {
			// The fetch still succeeds; the counter is best effort.
			log.Printf("failed to count view on attraction %s: %v", attraction.ID, err)
		}
	}

	return response_models.NewAttractionDetail(attraction, !publicView), nil
}

func (s *AttractionService) AddReview(ctx context.Context, userID, attractionID string, request request_models.AddReviewRequest) (response_models.AttractionDetail, error) {
	attraction, err := s.attractionRepo.FindByID(ctx, attractionID)
	if err != nil {
		return response_models.AttractionDetail{}, utils.ErrDatabaseError
	}
	if attraction == nil || attraction.Status != db_models.AttractionVisible {
		return response_models.AttractionDetail{}, utils.ErrAttractionNotFound
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return response_models.AttractionDetail{}, utils.ErrDatabaseError
	}
	if user == nil {
		return response_models.AttractionDetail{}, utils.ErrAccountNotFound
	}

	if attraction.HasReviewBy(user.ID) {
		return response_models.AttractionDetail{}, utils.ErrDuplicateReview
	}

	attraction.Reviews = append(attraction.Reviews, db_models.Review{
		ID:        uuid.New(),
		UserID:    user.ID,
		UserName:  user.Name,
		Rating:    request.Rating,
		Comment:   request.Comment,
		VisitedAt: request.VisitedAt,
		CreatedAt: utils.NowUnixSeconds(),
	})
	attraction.RecalculateRatings()
	attraction.RecalculatePopularity()

	if err := s.attractionRepo.Save(ctx, attraction); err != nil {
		return response_models.AttractionDetail{}, utils.ErrDatabaseError
	}

	return response_models.NewAttractionDetail(attraction, false), nil
}

// ListReviews pages the embedded list in memory, newest first.
func (s *AttractionService) ListReviews(ctx context.Context, attractionID string, page utils.Pagination) (response_models.PagedResponse[db_models.Review], error) {
	attraction, err := s.attractionRepo.FindByID(ctx, attractionID)
	if err != nil {
		return response_models.PagedResponse[db_models.Review]{}, utils.ErrDatabaseError
	}
	if attraction == nil {
		return response_models.PagedResponse[db_models.Review]{}, utils.ErrAttractionNotFound
	}

	reviews := make([]db_models.Review, len(attraction.Reviews))
	copy(reviews, attraction.Reviews)
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt > reviews[j].CreatedAt
	})

	total := int64(len(reviews))
	start := page.Offset()
	if start > len(reviews) {
		start = len(reviews)
	}
	end := start + page.PageSize
	if end > len(reviews) {
		end = len(reviews)
	}

	return response_models.NewPagedResponse(reviews[start:end], page.Page, page.PageSize, total, utils.TotalPages(total, page.PageSize)), nil
}

func (s *AttractionService) AddToWishlist(ctx context.Context, userID, attractionID string) error {
	return s.setWishlist(ctx, userID, attractionID, true)
}

func (s *AttractionService) RemoveFromWishlist(ctx context.Context, userID, attractionID string) error {
	return s.setWishlist(ctx, userID, attractionID, false)
}

// setWishlist keeps the tourist's wishlist and the attraction counter in
// step. Both writes are document-level; a crash between them can skew
// the counter, the same as any cross-document update here.
func (s *AttractionService) setWishlist(ctx context.Context, userID, attractionID string, add bool) error {
	attraction, err := s.attractionRepo.FindByID(ctx, attractionID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if attraction == nil || attraction.Status != db_models.AttractionVisible {
		return utils.ErrAttractionNotFound
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return utils.ErrAccountNotFound
	}

	profile := user.TouristProfile.Data()
	idx := -1
	for i, id := range profile.Wishlist {
		if id == attraction.ID {
			idx = i
			break
		}
	}

	switch {
	case add && idx >= 0:
		return nil
	case !add && idx < 0:
		return nil
	case add:
		profile.Wishlist = append(profile.Wishlist, attraction.ID)
		attraction.WishlistCount++
	default:
		profile.Wishlist = append(profile.Wishlist[:idx], profile.Wishlist[idx+1:]...)
		if attraction.WishlistCount > 0 {
			attraction.WishlistCount--
		}
	}

	user.TouristProfile = datatypes.NewJSONType(profile)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return utils.ErrDatabaseError
	}

	attraction.RecalculatePopularity()
	if err := s.attractionRepo.Save(ctx, attraction); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *AttractionService) Stats(ctx context.Context, id string) (response_models.AttractionStats, error) {
	attraction, err := s.attractionRepo.FindByID(ctx, id)
	if err != nil {
		return response_models.AttractionStats{}, utils.ErrDatabaseError
	}
	if attraction == nil {
		return response_models.AttractionStats{}, utils.ErrAttractionNotFound
	}

	r := attraction.Ratings.Data()
	return response_models.AttractionStats{
		ID:              attraction.ID.String(),
		Name:            attraction.Name,
		ViewCount:       attraction.ViewCount,
		WishlistCount:   attraction.WishlistCount,
		ReviewCount:     r.Count,
		RatingOverall:   r.Overall,
		Histogram:       r.Histogram,
		PopularityScore: attraction.PopularityScore,
	}, nil
}

func (s *AttractionService) CatalogueStats(ctx context.Context) (response_models.CatalogueStats, error) {
	total, visible, featured, unesco, views, wishlists, reviews, err := s.attractionRepo.CatalogueStats(ctx)
	if err != nil {
		return response_models.CatalogueStats{}, utils.ErrDatabaseError
	}
	return response_models.CatalogueStats{
		Total:         total,
		Visible:       visible,
		Hidden:        total - visible,
		Featured:      featured,
		Unesco:        unesco,
		TotalViews:    views,
		TotalWishlist: wishlists,
		TotalReviews:  reviews,
	}, nil
}

// ---- helpers ----

func (s *AttractionService) find(ctx context.Context, idOrSlug string) (*db_models.Attraction, error) {
	if _, err := uuid.Parse(idOrSlug); err == nil {
		attraction, err := s.attractionRepo.FindByID(ctx, idOrSlug)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		return attraction, nil
	}
	attraction, err := s.attractionRepo.FindBySlug(ctx, idOrSlug)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return attraction, nil
}

// uniqueSlug derives the slug from name + city and bumps a numeric
// suffix until it is free.
func (s *AttractionService) uniqueSlug(ctx context.Context, name, city string) (string, error) {
	base := utils.Slugify(name, city)
	if base == "" {
		return "", utils.ErrInvalidInput
	}

	slug := base
	for i := 2; ; i++ {
		exists, err := s.attractionRepo.SlugExists(ctx, slug)
		if err != nil {
			return "", utils.ErrDatabaseError
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func applyAttractionDocs(a *db_models.Attraction, loc *request_models.LocationPayload, hours map[string]request_models.DayHoursPayload, fee *request_models.EntryFeePayload, media *request_models.MediaPayload) {
	if loc != nil {
		a.Location = datatypes.NewJSONType(db_models.Location{
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Address:   loc.Address,
		})
	}
	if hours != nil {
		oh := make(db_models.OpeningHours, len(hours))
		for day, h := range hours {
			oh[day] = db_models.DayHours{Open: h.Open, Close: h.Close}
		}
		a.OpeningHours = datatypes.NewJSONType(oh)
	}
	if fee != nil {
		a.EntryFee = datatypes.NewJSONType(db_models.EntryFee{
			AdultMinor: fee.AdultMinor,
			ChildMinor: fee.ChildMinor,
			Currency:   fee.Currency,
		})
	}
	if media != nil {
		a.Media = datatypes.NewJSONType(db_models.Media{
			CoverImage: media.CoverImage,
			Images:     media.Images,
		})
	}
}

func parseUUIDs(in []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(in))
	for _, s := range in {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
