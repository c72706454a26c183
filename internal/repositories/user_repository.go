package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"tourship/internal/models/db_models"
)

// UserFilter narrows the admin user index.
type UserFilter struct {
	Role   string
	Status string // "active" | "inactive"
	Search string // matches name or email
}

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	Save(ctx context.Context, user *db_models.User) error
	FindByID(ctx context.Context, id string) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	List(ctx context.Context, filter UserFilter, page, pageSize int) ([]db_models.User, int64, error)
	CountAdmins(ctx context.Context) (int64, error)
	ListForVerification(ctx context.Context, role, status string, page, pageSize int) ([]db_models.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (u *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	return u.db.WithContext(ctx).Create(user).Error
}

// Save writes the whole row back, profile document included.
func (u *userRepository) Save(ctx context.Context, user *db_models.User) error {
	return u.db.WithContext(ctx).Save(user).Error
}

func (u *userRepository) FindByID(ctx context.Context, id string) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	err := u.db.WithContext(ctx).First(&user, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (u *userRepository) List(ctx context.Context, filter UserFilter, page, pageSize int) ([]db_models.User, int64, error) {
	query := u.db.WithContext(ctx).Model(&db_models.User{})

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	switch filter.Status {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []db_models.User
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (u *userRepository) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := u.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("role = ?", db_models.RoleAdmin).
		Count(&n).Error
	return n, err
}

// ListForVerification pages guide and organiser accounts whose embedded
// verification document matches status. The status lives inside the
// profile jsonb, so candidates are matched on a text scan of the column
// and the caller re-checks the decoded document.
func (u *userRepository) ListForVerification(ctx context.Context, role, status string, page, pageSize int) ([]db_models.User, int64, error) {
	query := u.db.WithContext(ctx).Model(&db_models.User{})

	if role != "" {
		query = query.Where("role = ?", role)
	} else {
		query = query.Where("role IN ?", []db_models.Role{db_models.RoleGuide, db_models.RoleOrganiser})
	}
	if status != "" {
		pattern := "%" + status + "%"
		query = query.Where(
			"CAST(guide_profile AS TEXT) LIKE ? OR CAST(organiser_profile AS TEXT) LIKE ?",
			pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []db_models.User
	err := query.
		Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
