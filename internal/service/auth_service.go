package service

import (
	"context"
	"errors"
	"time"

	"paygate/config"
	"paygate/internal/auth"
	"paygate/internal/models"
	"paygate/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCreds = errors.New("invalid email or password")

type AuthService struct {
	cfg  *config.JWTConfig
	repo *repository.OperatorRepository
}

func NewAuthService(cfg *config.JWTConfig, repo *repository.OperatorRepository) *AuthService {
	return &AuthService{cfg: cfg, repo: repo}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Operator, string, string, error) {
	op, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	now := time.Now().UTC()
	op.LastLoginAt = &now
	if err := s.repo.Update(ctx, op); err != nil {
		return nil, "", "", err
	}
	access, refresh, err := s.issue(op)
	if err != nil {
		return nil, "", "", err
	}
	return op, access, refresh, nil
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	id, err := auth.ParseRefreshToken(s.cfg, refreshToken)
	if err != nil {
		return "", "", err
	}
	op, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", auth.ErrInvalidToken
		}
		return "", "", err
	}
	return s.issue(op)
}

// ChangePassword requires the current password.
func (s *AuthService) ChangePassword(ctx context.Context, operatorID uint, current, next string) error {
	op, err := s.repo.GetByID(ctx, operatorID)
	if err != nil {
		return ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	op.PasswordHash = string(hash)
	return s.repo.Update(ctx, op)
}

func (s *AuthService) issue(op *models.Operator) (string, string, error) {
	access, err := auth.GenerateAccessToken(s.cfg, op.ID, op.Email, op.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(s.cfg, op.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
