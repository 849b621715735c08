package users

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/thejas-1999/Assets-Management/internal/repository"
	custom_error "github.com/thejas-1999/Assets-Management/pkg/errors"
	"github.com/thejas-1999/Assets-Management/pkg/models"
)

type UserRepository interface {
	PersistUser(req models.CreateUserRequest, hashedPassword []byte) (int, error)
	GetUser(id int) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(id int, changes *models.UserChanges) error
	DeleteUser(id int) error
	CountUsers() (int, error)
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}

func (r *userRepositoryImpl) PersistUser(req models.CreateUserRequest, hashedPassword []byte) (int, error) {
	role := req.Role
	if role == "" {
		role = "user"
	}

	var userID int
	inserted, err := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"name":          req.Name,
			"email":         req.Email,
			"password_hash": string(hashedPassword),
			"designation":   req.Designation,
			"phone":         req.Phone,
			"role":          role,
		}).
		Returning("id").
		Executor().
		ScanVal(&userID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, custom_error.WrapDBError(fmt.Sprintf("Email %s is already registered", req.Email), string(pqErr.Code))
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	if !inserted {
		return 0, fmt.Errorf("failed to read inserted user id")
	}

	return userID, nil
}

func (r *userRepositoryImpl) GetUser(id int) (*models.User, error) {
	var user models.User
	found, err := r.repository.GoquDBWrapper.
		Select("id", "name", "email", "password_hash", "designation", "phone", "role", "created_at").
		From("users").
		Where(goqu.Ex{"id": id}).
		Executor().
		ScanStruct(&user)

	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("user", id)
	}

	return &user, nil
}

func (r *userRepositoryImpl) GetUsers() ([]models.User, error) {
	var users []models.User
	err := r.repository.GoquDBWrapper.
		Select("id", "name", "email", "designation", "phone", "role", "created_at").
		From("users").
		Order(goqu.I("name").Asc()).
		Executor().
		ScanStructs(&users)

	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return users, nil
}

func (r *userRepositoryImpl) UpdateUser(id int, changes *models.UserChanges) error {
	record := goqu.Record{}

	if changes.Name != nil {
		record["name"] = *changes.Name
	}
	if changes.Email != nil {
		record["email"] = *changes.Email
	}
	if changes.PasswordHash != nil {
		record["password_hash"] = *changes.PasswordHash
	}
	if changes.Designation != nil {
		record["designation"] = *changes.Designation
	}
	if changes.Phone != nil {
		record["phone"] = *changes.Phone
	}
	if changes.Role != nil {
		record["role"] = *changes.Role
	}

	if len(record) == 0 {
		return nil
	}

	result, err := r.repository.GoquDBWrapper.Update("users").
		Set(record).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Email is already registered to another user", string(pqErr.Code))
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFound("user", id)
	}

	return nil
}

func (r *userRepositoryImpl) DeleteUser(id int) error {
	result, err := r.repository.GoquDBWrapper.Delete("users").
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()

	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFound("user", id)
	}

	return nil
}

func (r *userRepositoryImpl) CountUsers() (int, error) {
	var count int
	_, err := r.repository.GoquDBWrapper.
		Select(goqu.COUNT("*")).
		From("users").
		Executor().
		ScanVal(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}
