package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/imLaanui/Financeu-platform-sub000/internal/models"
	"github.com/imLaanui/Financeu-platform-sub000/internal/repository"
)

// ErrInvalidCredentials is returned for both unknown email and wrong
// password, so login responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")

// fakeResetCode is handed out for reset requests against unknown emails. The
// response is indistinguishable from a real one in shape, and the code can
// never validate because no row backs it.
const fakeResetCode = "000000"

// AuthService implements registration, login and the password-reset flow.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	CurrentUser(ctx context.Context, userID int64) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, token, newPassword string) error
}

type authService struct {
	userRepo    repository.UserRepository
	tokenRepo   repository.ResetTokenRepository
	hasher      PasswordHasher
	jwtService  JWTService
	resetExpiry time.Duration
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.ResetTokenRepository,
	hasher PasswordHasher,
	jwtService JWTService,
	resetExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		hasher:      hasher,
		jwtService:  jwtService,
		resetExpiry: resetExpiry,
	}
}

func (s *authService) Register(ctx context.Context, email, password, name string) (*models.User, string, error) {
	// Pre-insert check gives the common case a clean error; the unique index
	// in the store decides concurrent registrations.
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, "", repository.ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Email:          email,
		PasswordHash:   hash,
		Name:           name,
		MembershipTier: models.TierFree,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fakeResetCode, nil
		}
		return "", err
	}

	code, err := generateResetCode()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(s.resetExpiry)
	if _, err := s.tokenRepo.Issue(ctx, email, code, expiresAt); err != nil {
		return "", err
	}
	return code, nil
}

func (s *authService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	row, err := s.tokenRepo.FindValid(ctx, email, token)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	// Update the password first; only a successful update consumes the
	// token, so a failed write leaves the user able to retry.
	if err := s.userRepo.UpdatePasswordHash(ctx, email, hash); err != nil {
		return err
	}
	return s.tokenRepo.MarkUsed(ctx, row.ID)
}

// generateResetCode produces a 6-digit numeric code from crypto/rand.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
