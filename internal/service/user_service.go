package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers() ([]model.User, error) {
	return s.UserRepo.List()
}

// UpdateUser applies a partial update and returns the refreshed record.
func (s *UserService) UpdateUser(id uint, update model.UserUpdate) (*model.User, error) {
	if _, err := s.GetUser(id); err != nil {
		return nil, err
	}
	if err := s.UserRepo.Update(id, update); err != nil {
		return nil, err
	}
	return s.GetUser(id)
}

func (s *UserService) ChangePassword(id uint, currentPassword, newPassword string) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return util.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hashed := string(hash)
	return s.UserRepo.Update(id, model.UserUpdate{Password: &hashed})
}

func (s *UserService) DeleteUser(id uint) error {
	deleted, err := s.UserRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return util.ErrUserNotFound
	}
	return nil
}
