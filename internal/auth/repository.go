package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"spreadedge/internal/users"

	"gorm.io/gorm"
)

type Repository interface {
	CreateUser(ctx context.Context, user *users.User) error
	GetUserByEmail(ctx context.Context, email string) (*users.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns the Postgres backed user store
func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreateUser(ctx context.Context, user *users.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	var user users.User
	err := r.db.WithContext(ctx).Where("LOWER(email) = ?", users.NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&users.User{}).
		Where("LOWER(email) = ?", users.NormalizeEmail(email)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// memoryRepository keeps users in process. Used when Postgres is disabled.
type memoryRepository struct {
	mu      sync.RWMutex
	byEmail map[string]users.User
}

func NewMemoryRepository() Repository {
	return &memoryRepository{byEmail: make(map[string]users.User)}
}

func (r *memoryRepository) CreateUser(_ context.Context, user *users.User) error {
	user.Prepare()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrUserAlreadyExists
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	r.byEmail[user.Email] = *user
	return nil
}

func (r *memoryRepository) GetUserByEmail(_ context.Context, email string) (*users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[users.NormalizeEmail(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (r *memoryRepository) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[users.NormalizeEmail(email)]
	return ok, nil
}
