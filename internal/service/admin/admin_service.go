package admin

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/dinerozz/landing-analytics-backend/internal/entity"
	"github.com/dinerozz/landing-analytics-backend/internal/model/response"
	"github.com/dinerozz/landing-analytics-backend/internal/repository"
	"github.com/dinerozz/landing-analytics-backend/pkg/utils"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AdminService struct {
	Repo *repository.AdminRepository
}

func NewAdminService(repo *repository.AdminRepository) *AdminService {
	return &AdminService{Repo: repo}
}

// Bootstrap seeds the configured administrator so a fresh deployment can
// log in without manual SQL.
func (s *AdminService) Bootstrap(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		log.Println("⚠️ Admin bootstrap skipped: no credentials configured")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	return s.Repo.EnsureAdmin(ctx, username, string(hash))
}

func (s *AdminService) Authenticate(ctx context.Context, req entity.AdminAuthRequest) (response.AdminAuth, error) {
	user, err := s.Repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return response.AdminAuth{}, fmt.Errorf("failed to load admin user: %w", err)
	}
	if user == nil {
		return response.AdminAuth{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return response.AdminAuth{}, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return response.AdminAuth{}, fmt.Errorf("failed to issue token: %w", err)
	}

	return response.AdminAuth{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		Token:    token,
	}, nil
}
