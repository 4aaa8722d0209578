package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/syncfit/syncfit-backend/internal/domain"
	"github.com/syncfit/syncfit-backend/internal/observability"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository is the persistence surface the identity manager depends on.
// Email is matched case-sensitively; it is the natural key of the record
// lineage, not a database-level unique column (provisional duplicates are
// cleaned up by the identity manager, see service.IdentityService).
type UserRepository interface {
	FindByEmail(email string) (*domain.User, error)
	FindByID(id uint) (*domain.User, error)
	// FindVerifiedByEmailExcluding returns a verified record for email whose
	// id differs from excludeID, or ErrUserNotFound.
	FindVerifiedByEmailExcluding(email string, excludeID uint) (*domain.User, error)
	Create(user *domain.User) error
	Save(user *domain.User) error
	DeleteByID(id uint) error
	// DeleteProvisionalByEmail removes every unverified record for email
	// except the one with keepID. keepID 0 removes them all.
	DeleteProvisionalByEmail(email string, keepID uint) error
}

type GormUserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &GormUserRepository{db: db} }

func (r *GormUserRepository) FindByEmail(email string) (*domain.User, error) {
	var u domain.User
	// A verified record always wins over provisional leftovers.
	err := r.db.Where("email = ?", email).Order("verified desc, id asc").First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "user", "find_by_email", "not_found")
			return nil, ErrUserNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "user", "find_by_email", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "find_by_email", "success")
	return &u, nil
}

func (r *GormUserRepository) FindByID(id uint) (*domain.User, error) {
	var u domain.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(context.Background(), "user", "find_by_id", "not_found")
			return nil, ErrUserNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "user", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "find_by_id", "success")
	return &u, nil
}

func (r *GormUserRepository) FindVerifiedByEmailExcluding(email string, excludeID uint) (*domain.User, error) {
	var u domain.User
	err := r.db.Where("email = ? AND verified = ? AND id <> ?", email, true, excludeID).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		observability.RecordRepositoryOperation(context.Background(), "user", "find_verified_excluding", "error")
		return nil, err
	}
	return &u, nil
}

func (r *GormUserRepository) Create(user *domain.User) error {
	if err := r.db.Create(user).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "user", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "create", "success")
	return nil
}

func (r *GormUserRepository) Save(user *domain.User) error {
	if err := r.db.Save(user).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "user", "save", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "save", "success")
	return nil
}

func (r *GormUserRepository) DeleteByID(id uint) error {
	if err := r.db.Delete(&domain.User{}, id).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "user", "delete_by_id", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "delete_by_id", "success")
	return nil
}

func (r *GormUserRepository) DeleteProvisionalByEmail(email string, keepID uint) error {
	q := r.db.Where("email = ? AND verified = ?", email, false)
	if keepID != 0 {
		q = q.Where("id <> ?", keepID)
	}
	if err := q.Delete(&domain.User{}).Error; err != nil {
		observability.RecordRepositoryOperation(context.Background(), "user", "delete_provisional", "error")
		return err
	}
	observability.RecordRepositoryOperation(context.Background(), "user", "delete_provisional", "success")
	return nil
}
