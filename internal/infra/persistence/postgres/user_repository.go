// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"showreel/internal/domain/entity"
	domainerrors "showreel/internal/domain/errors"
	"showreel/internal/domain/repository"
	"showreel/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByEmail retrieves the full credential record for a login identifier.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error
	if err != nil {
		// A miss becomes the domain sentinel so the caller can treat
		// "unknown email" without leaking driver details.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toCredentialDomain(&userM), nil
}

// FindByID retrieves the public projection of an account by its ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toCredentialDomain(&userM).Public(), nil
}

// Create persists a new credential record. The unique index on email is the
// final arbiter of duplicates, even when two registrations race.
func (repo *userRepository) Create(ctx context.Context, cred *entity.Credential) error {
	userM := fromCredentialDomain(cred)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Propagate the generated ID and timestamps back onto the entity.
	cred.ID = userM.ID
	cred.CreatedAt = userM.CreatedAt
	cred.UpdatedAt = userM.UpdatedAt

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

func toCredentialDomain(data *model.UserModel) *entity.Credential {
	if data == nil {
		return nil
	}

	return &entity.Credential{
		User: entity.User{
			ID:        data.ID,
			Email:     data.Email,
			Name:      data.Name,
			Role:      entity.Role(data.Role),
			CreatedAt: data.CreatedAt,
			UpdatedAt: data.UpdatedAt,
		},
		PasswordHash: data.PasswordHash,
	}
}

func fromCredentialDomain(data *entity.Credential) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Name:         data.Name,
		Role:         data.Role.String(),
	}
}
