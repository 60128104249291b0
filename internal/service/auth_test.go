package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/imLaanui/Financeu-platform-sub000/internal/models"
	"github.com/imLaanui/Financeu-platform-sub000/internal/repository"
)

// =============================================================================
// Mock Implementations
// =============================================================================

type mockUserRepository struct {
	findByEmailFunc        func(ctx context.Context, email string) (*models.User, error)
	findByIDFunc           func(ctx context.Context, id int64) (*models.User, error)
	createFunc             func(ctx context.Context, user *models.User) error
	updateTierFunc         func(ctx context.Context, id int64, tier models.Tier) error
	updatePasswordHashFunc func(ctx context.Context, email, newHash string) error
	listAllFunc            func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) UpdateMembershipTier(ctx context.Context, id int64, tier models.Tier) error {
	if m.updateTierFunc != nil {
		return m.updateTierFunc(ctx, id, tier)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) UpdatePasswordHash(ctx context.Context, email, newHash string) error {
	if m.updatePasswordHashFunc != nil {
		return m.updatePasswordHashFunc(ctx, email, newHash)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx)
	}
	return nil, nil
}

type mockResetTokenRepository struct {
	issueFunc     func(ctx context.Context, email, token string, expiresAt time.Time) (*models.PasswordResetToken, error)
	findValidFunc func(ctx context.Context, email, token string) (*models.PasswordResetToken, error)
	markUsedFunc  func(ctx context.Context, id int64) error
	sweepFunc     func(ctx context.Context) (int64, error)
}

func (m *mockResetTokenRepository) Issue(ctx context.Context, email, token string, expiresAt time.Time) (*models.PasswordResetToken, error) {
	if m.issueFunc != nil {
		return m.issueFunc(ctx, email, token, expiresAt)
	}
	return &models.PasswordResetToken{ID: 1, Email: email, Token: token, ExpiresAt: expiresAt}, nil
}

func (m *mockResetTokenRepository) FindValid(ctx context.Context, email, token string) (*models.PasswordResetToken, error) {
	if m.findValidFunc != nil {
		return m.findValidFunc(ctx, email, token)
	}
	return nil, repository.ErrTokenNotFound
}

func (m *mockResetTokenRepository) MarkUsed(ctx context.Context, id int64) error {
	if m.markUsedFunc != nil {
		return m.markUsedFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockResetTokenRepository) SweepExpired(ctx context.Context) (int64, error) {
	if m.sweepFunc != nil {
		return m.sweepFunc(ctx)
	}
	return 0, nil
}

// =============================================================================
// Test Helpers
// =============================================================================

func setupTestAuthService(t *testing.T) (AuthService, *mockUserRepository, *mockResetTokenRepository, JWTService) {
	t.Helper()

	jwtService, err := NewJWTService(testSecret, testExpiry)
	if err != nil {
		t.Fatalf("Failed to create JWT service: %v", err)
	}
	userRepo := &mockUserRepository{}
	tokenRepo := &mockResetTokenRepository{}
	svc := NewAuthService(userRepo, tokenRepo, NewPasswordHasher(), jwtService, time.Hour)
	return svc, userRepo, tokenRepo, jwtService
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := NewPasswordHasher().Hash(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	return hash
}

// =============================================================================
// Register Tests
// =============================================================================

func TestRegister_Success(t *testing.T) {
	svc, userRepo, _, jwtService := setupTestAuthService(t)

	userRepo.createFunc = func(ctx context.Context, user *models.User) error {
		user.ID = 42
		return nil
	}

	user, token, err := svc.Register(context.Background(), "alice@test.com", "secret1", "Alice")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.ID != 42 {
		t.Errorf("user.ID = %d, want 42", user.ID)
	}
	if user.MembershipTier != models.TierFree {
		t.Errorf("new users start on free, got %s", user.MembershipTier)
	}
	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}

	// A freshly registered user's token decodes back to the same identity.
	claims, err := jwtService.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != 42 || claims.Email != "alice@test.com" || claims.MembershipTier != models.TierFree {
		t.Errorf("claims = %+v, want id=42 email=alice@test.com tier=free", claims)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, userRepo, _, _ := setupTestAuthService(t)

	userRepo.findByEmailFunc = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{ID: 1, Email: "alice@test.com"}, nil
	}

	_, _, err := svc.Register(context.Background(), "A@TEST.com", "secret1", "Alice")
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Errorf("Register() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestRegister_StoreWinsDuplicateRace(t *testing.T) {
	svc, userRepo, _, _ := setupTestAuthService(t)

	// The pre-insert check saw nothing, but the unique index caught the
	// concurrent insert.
	userRepo.createFunc = func(ctx context.Context, user *models.User) error {
		return repository.ErrDuplicateEmail
	}

	_, _, err := svc.Register(context.Background(), "alice@test.com", "secret1", "Alice")
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Errorf("Register() error = %v, want ErrDuplicateEmail", err)
	}
}

// =============================================================================
// Login Tests
// =============================================================================

func TestLogin_Success(t *testing.T) {
	svc, userRepo, _, jwtService := setupTestAuthService(t)

	stored := &models.User{
		ID:             7,
		Email:          "alice@test.com",
		Name:           "Alice",
		MembershipTier: models.TierPro,
		PasswordHash:   hashPassword(t, "secret1"),
	}
	userRepo.findByEmailFunc = func(ctx context.Context, email string) (*models.User, error) {
		return stored, nil
	}

	user, token, err := svc.Login(context.Background(), "alice@test.com", "secret1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if user.ID != 7 {
		t.Errorf("user.ID = %d, want 7", user.ID)
	}

	claims, err := jwtService.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != 7 || claims.MembershipTier != models.TierPro {
		t.Errorf("claims = %+v, want id=7 tier=pro", claims)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name          string
		findByEmail   func(ctx context.Context, email string) (*models.User, error)
		password      string
	}{
		{
			name: "unknown email",
			findByEmail: func(ctx context.Context, email string) (*models.User, error) {
				return nil, repository.ErrUserNotFound
			},
			password: "secret1",
		},
		{
			name: "wrong password",
			findByEmail: func(ctx context.Context, email string) (*models.User, error) {
				return &models.User{ID: 1, PasswordHash: "$2a$10$invalidhashinvalidhashinvalidhashinvalid"}, nil
			},
			password: "wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, _, _ := setupTestAuthService(t)
			userRepo.findByEmailFunc = tt.findByEmail

			_, _, err := svc.Login(context.Background(), "alice@test.com", tt.password)
			// Both cases surface the exact same error value.
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

// =============================================================================
// ForgotPassword Tests
// =============================================================================

func TestForgotPassword_IssuesCode(t *testing.T) {
	svc, userRepo, tokenRepo, _ := setupTestAuthService(t)

	userRepo.findByEmailFunc = func(ctx context.Context, email string) (*models.User, error) {
		return &models.User{ID: 1, Email: "alice@test.com"}, nil
	}

	var issuedToken string
	var issuedExpiry time.Time
	tokenRepo.issueFunc = func(ctx context.Context, email, token string, expiresAt time.Time) (*models.PasswordResetToken, error) {
		issuedToken = token
		issuedExpiry = expiresAt
		return &models.PasswordResetToken{ID: 1, Email: email, Token: token, ExpiresAt: expiresAt}, nil
	}

	code, err := svc.ForgotPassword(context.Background(), "alice@test.com")
	if err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}

	if len(code) != 6 {
		t.Errorf("code length = %d, want 6", len(code))
	}
	if code != issuedToken {
		t.Errorf("returned code %q does not match stored token %q", code, issuedToken)
	}
	wantExpiry := time.Now().Add(time.Hour)
	if issuedExpiry.Before(wantExpiry.Add(-time.Minute)) || issuedExpiry.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("expiry = %v, want about %v", issuedExpiry, wantExpiry)
	}
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	svc, _, tokenRepo, _ := setupTestAuthService(t)

	tokenRepo.issueFunc = func(ctx context.Context, email, token string, expiresAt time.Time) (*models.PasswordResetToken, error) {
		t.Fatal("no token must be issued for unknown emails")
		return nil, nil
	}

	code, err := svc.ForgotPassword(context.Background(), "nobody@test.com")
	if err != nil {
		t.Fatalf("ForgotPassword() error = %v", err)
	}
	// Same response shape, but the code can never validate.
	if code != "000000" {
		t.Errorf("code = %q, want the fake code", code)
	}
}

// =============================================================================
// ResetPassword Tests
// =============================================================================

func TestResetPassword_Success(t *testing.T) {
	svc, userRepo, tokenRepo, _ := setupTestAuthService(t)

	tokenRepo.findValidFunc = func(ctx context.Context, email, token string) (*models.PasswordResetToken, error) {
		return &models.PasswordResetToken{ID: 5, Email: email, Token: token}, nil
	}

	var updatedHash string
	userRepo.updatePasswordHashFunc = func(ctx context.Context, email, newHash string) error {
		updatedHash = newHash
		return nil
	}

	var consumedID int64
	tokenRepo.markUsedFunc = func(ctx context.Context, id int64) error {
		if updatedHash == "" {
			t.Error("token consumed before the password update succeeded")
		}
		consumedID = id
		return nil
	}

	err := svc.ResetPassword(context.Background(), "alice@test.com", "123456", "newpass1")
	if err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	if consumedID != 5 {
		t.Errorf("consumed token id = %d, want 5", consumedID)
	}
	if !NewPasswordHasher().Verify("newpass1", updatedHash) {
		t.Error("stored hash does not verify the new password")
	}
}

func TestResetPassword_InvalidToken(t *testing.T) {
	tests := []struct {
		name    string
		wantErr error
	}{
		{name: "not found", wantErr: repository.ErrTokenNotFound},
		{name: "expired", wantErr: repository.ErrTokenExpired},
		{name: "already used", wantErr: repository.ErrTokenUsed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, userRepo, tokenRepo, _ := setupTestAuthService(t)

			tokenRepo.findValidFunc = func(ctx context.Context, email, token string) (*models.PasswordResetToken, error) {
				return nil, tt.wantErr
			}
			userRepo.updatePasswordHashFunc = func(ctx context.Context, email, newHash string) error {
				t.Error("password must not change for an invalid token")
				return nil
			}

			err := svc.ResetPassword(context.Background(), "alice@test.com", "123456", "newpass1")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ResetPassword() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResetPassword_UpdateFailureKeepsToken(t *testing.T) {
	svc, userRepo, tokenRepo, _ := setupTestAuthService(t)

	tokenRepo.findValidFunc = func(ctx context.Context, email, token string) (*models.PasswordResetToken, error) {
		return &models.PasswordResetToken{ID: 5, Email: email, Token: token}, nil
	}
	storeErr := errors.New("write failed")
	userRepo.updatePasswordHashFunc = func(ctx context.Context, email, newHash string) error {
		return storeErr
	}
	tokenRepo.markUsedFunc = func(ctx context.Context, id int64) error {
		t.Error("token must stay unconsumed when the password update fails")
		return nil
	}

	err := svc.ResetPassword(context.Background(), "alice@test.com", "123456", "newpass1")
	if !errors.Is(err, storeErr) {
		t.Errorf("ResetPassword() error = %v, want the store error", err)
	}
}

// =============================================================================
// Reset Code Generation
// =============================================================================

func TestGenerateResetCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := generateResetCode()
		if err != nil {
			t.Fatalf("generateResetCode() error = %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q length = %d, want 6", code, len(code))
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains non-digit", code)
			}
		}
		seen[code] = true
	}
	// 100 draws from a 900000 space colliding down to a handful would point
	// at a broken generator.
	if len(seen) < 90 {
		t.Errorf("only %d distinct codes in 100 draws", len(seen))
	}
}
