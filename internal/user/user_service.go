package user

import (
	"context"
	"errors"

	"gochat/internal/common"
	"gochat/internal/dbmysql"
)

type UserService interface {
	RegisterUser(ctx context.Context, handle, email, password string) (*dbmysql.User, string, error)
	LoginUser(ctx context.Context, handle, password string) (*dbmysql.User, string, error)
}

type userService struct {
	userRepo UserRepository
}

func NewUserService(userRepo UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) RegisterUser(ctx context.Context, handle, email, password string) (*dbmysql.User, string, error) {
	if handle == "" || password == "" {
		return nil, "", errors.New("handle and password required")
	}

	// duplicates check
	exists, err := s.userRepo.CheckUserExists(ctx, handle)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", errors.New("handle already exists")
	}

	hashed, err := common.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	u := &dbmysql.User{
		Handle:       handle,
		Email:        email,
		PasswordHash: hashed,
		Status:       "active",
	}
	if err := s.userRepo.CreateUser(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := common.GenerateToken(u.UserID, u.Handle)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *userService) LoginUser(ctx context.Context, handle, password string) (*dbmysql.User, string, error) {
	if handle == "" || password == "" {
		return nil, "", errors.New("handle and password required")
	}

	u, err := s.userRepo.GetUserByHandle(ctx, handle)
	if err != nil {
		return nil, "", common.ErrUnauthorized
	}

	if err := common.CheckPassword(password, u.PasswordHash); err != nil {
		return nil, "", common.ErrUnauthorized
	}

	token, err := common.GenerateToken(u.UserID, u.Handle)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
