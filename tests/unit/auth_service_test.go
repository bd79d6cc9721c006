package unit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/SAIMANIDEEP29/donor-network/internal/config"
	"github.com/SAIMANIDEEP29/donor-network/internal/domain"
	"github.com/SAIMANIDEEP29/donor-network/internal/service/auth"
	"github.com/SAIMANIDEEP29/donor-network/tests/mocks"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 7 * 24 * time.Hour,
	}
}

type authFixture struct {
	userRepo    *mocks.UserRepository
	profileRepo *mocks.ProfileRepository
	bankRepo    *mocks.BloodBankRepository
	sessionRepo *mocks.SessionRepository
	emailSvc    *mocks.EmailService
	svc         auth.Service
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:    new(mocks.UserRepository),
		profileRepo: new(mocks.ProfileRepository),
		bankRepo:    new(mocks.BloodBankRepository),
		sessionRepo: new(mocks.SessionRepository),
		emailSvc:    new(mocks.EmailService),
	}
	f.svc = auth.NewService(f.userRepo, f.profileRepo, f.bankRepo, f.sessionRepo, f.emailSvc, testAuthConfig())
	return f
}

func registerInput() domain.RegisterInput {
	return domain.RegisterInput{
		Email:           "asha@example.com",
		Password:        "strong-password",
		Name:            "Asha",
		Phone:           "9999999999",
		BloodGroup:      domain.GroupOPos,
		City:            "Pune",
		District:        "Pune",
		State:           "Maharashtra",
		WillingToDonate: true,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newAuthFixture()
		input := registerInput()

		f.userRepo.On("ExistsByEmail", ctx, input.Email).Return(false, nil).Once()
		f.userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Email == input.Email && u.Role == string(domain.RoleUser) && !u.IsEmailVerified
		})).Return(nil).Once()
		f.profileRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.Name == input.Name && p.BloodGroup == input.BloodGroup && p.WillingToDonate && p.IsAvailable
		})).Return(nil).Once()
		f.userRepo.On("SetEmailVerificationToken", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.emailSvc.On("SendEmailVerification", mock.Anything, input.Email, input.Name, mock.Anything).Return(nil).Maybe()

		user, err := f.svc.Register(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, input.Email, user.Email)
		f.userRepo.AssertExpectations(t)
		f.profileRepo.AssertExpectations(t)
		f.bankRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Blood Bank Signup", func(t *testing.T) {
		f := newAuthFixture()
		input := registerInput()
		input.AsBloodBank = true
		input.BloodBankName = "Red Cross Pune"
		input.LicenseNumber = "LIC-1234"

		f.userRepo.On("ExistsByEmail", ctx, input.Email).Return(false, nil).Once()
		f.userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == string(domain.RoleBloodBank)
		})).Return(nil).Once()
		f.profileRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.bankRepo.On("Create", ctx, mock.MatchedBy(func(b *domain.BloodBank) bool {
			return b.Name == input.BloodBankName && !b.IsVerified
		})).Return(nil).Once()
		f.userRepo.On("SetEmailVerificationToken", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
		f.emailSvc.On("SendEmailVerification", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

		_, err := f.svc.Register(ctx, input)

		assert.NoError(t, err)
		f.bankRepo.AssertExpectations(t)
	})

	t.Run("Blood Bank Without License", func(t *testing.T) {
		f := newAuthFixture()
		input := registerInput()
		input.AsBloodBank = true

		_, err := f.svc.Register(ctx, input)

		assert.ErrorIs(t, err, auth.ErrBloodBankNameRequired)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		f := newAuthFixture()
		input := registerInput()

		f.userRepo.On("ExistsByEmail", ctx, input.Email).Return(true, nil).Once()

		_, err := f.svc.Register(ctx, input)

		assert.ErrorIs(t, err, auth.ErrEmailExists)
	})

	t.Run("Invalid Blood Group", func(t *testing.T) {
		f := newAuthFixture()
		input := registerInput()
		input.BloodGroup = "Q-"

		_, err := f.svc.Register(ctx, input)

		assert.ErrorIs(t, err, auth.ErrInvalidBloodGroup)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	verifiedUser := func() *domain.User {
		return &domain.User{
			Email:           "asha@example.com",
			PasswordHash:    string(hash),
			Role:            string(domain.RoleUser),
			IsEmailVerified: true,
		}
	}

	t.Run("Success", func(t *testing.T) {
		f := newAuthFixture()
		user := verifiedUser()

		f.userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
		f.sessionRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		_, tokens, err := f.svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-password"})

		assert.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)

		claims, err := f.svc.ValidateAccessToken(tokens.AccessToken)
		assert.NoError(t, err)
		assert.Equal(t, user.Email, claims.Email)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		f := newAuthFixture()
		user := verifiedUser()

		f.userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := f.svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "wrong"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		f := newAuthFixture()

		f.userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil).Once()

		_, _, err := f.svc.Login(ctx, domain.LoginInput{Email: "nobody@example.com", Password: "whatever"})

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("Unverified Email", func(t *testing.T) {
		f := newAuthFixture()
		user := verifiedUser()
		user.IsEmailVerified = false

		f.userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()

		_, _, err := f.svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "correct-password"})

		assert.ErrorIs(t, err, auth.ErrEmailNotVerified)
	})
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.ValidateAccessToken("not-a-jwt")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
