package service

import (
	"context"
	"errors"
	"time"

	"bitwise74/social-api/internal/model"
	"bitwise74/social-api/internal/store"
	"bitwise74/social-api/pkg/security"
	"bitwise74/social-api/pkg/util"
	"bitwise74/social-api/pkg/validators"

	"go.uber.org/zap"
)

const MsgPasswordReset = "A new password has been sent to your email"

type PasswordHasher interface {
	Hash(p string) (string, error)
	Compare(p, encoded string) (bool, error)
}

type AuthResult struct {
	UserID       string `json:"userId"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Photo     string `json:"photo"`
}

type AuthService struct {
	users         store.Users
	relationships *RelationshipService
	hasher        PasswordHasher
	tokens        *security.TokenIssuer
	mailer        Mailer
	photos        *PhotoService

	// GeneratePassword produces reset passwords
	GeneratePassword func() (string, error)
}

func NewAuthService(users store.Users, r *RelationshipService, h PasswordHasher, t *security.TokenIssuer, m Mailer, p *PhotoService) *AuthService {
	return &AuthService{
		users:            users,
		relationships:    r,
		hasher:           h,
		tokens:           t,
		mailer:           m,
		photos:           p,
		GeneratePassword: security.GenerateResetPassword,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	missing := validators.MissingFields(
		validators.Field{Name: "email", Value: email},
		validators.Field{Name: "password", Value: password},
	)
	if len(missing) > 0 {
		return nil, validationErr(validators.MissingMessage(missing))
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, authErr("Incorrect email")
		}

		return nil, internalErr("Failed to fetch user", err)
	}

	ok, err := s.hasher.Compare(password, user.PasswordHash)
	if err != nil {
		return nil, internalErr("Failed to verify password", err)
	}

	if !ok {
		return nil, authErr("Incorrect password")
	}

	return s.issue(user)
}

// Registration creates the user and their empty relationship record. If the
// photo or the relationship record can't be stored the user is removed again.
func (s *AuthService) Registration(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	missing := validators.MissingFields(
		validators.Field{Name: "email", Value: in.Email},
		validators.Field{Name: "password", Value: in.Password},
		validators.Field{Name: "firstName", Value: in.FirstName},
		validators.Field{Name: "lastName", Value: in.LastName},
	)
	if len(missing) > 0 {
		return nil, validationErr(validators.MissingMessage(missing))
	}

	if err := validators.Email(in.Email); err != nil {
		return nil, validationErr("Invalid email address")
	}

	_, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, conflictErr("This user already exists")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, internalErr("Failed to check if user is registered", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, internalErr("Failed to hash password", err)
	}

	userID, err := util.NewID()
	if err != nil {
		return nil, internalErr("Failed to generate user ID", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           userID,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, store.ErrDuplicate) {
			return nil, conflictErr("This user already exists")
		}

		return nil, internalErr("Failed to create user", err)
	}

	// uploaded only once the email is known to be ours
	photo, err := s.photos.Resolve(ctx, userID, in.Photo)
	if err != nil {
		s.rollbackUser(ctx, userID)
		return nil, err
	}

	rel, err := s.relationships.CreateItem(ctx, userID)
	if err != nil {
		s.rollbackUser(ctx, userID)
		return nil, internalErr("Failed to create user", err)
	}

	user.Photo = photo
	user.Friends = rel.ID
	if err := s.users.Update(ctx, user); err != nil {
		// the relationship is keyed by user id so the back-reference is
		// recoverable, keep the account
		zap.L().Error("Failed to link relationship record and photo", zap.Error(err), zap.String("userID", userID))
	}

	return s.issue(user)
}

func (s *AuthService) rollbackUser(ctx context.Context, userID string) {
	if err := s.users.Delete(ctx, userID); err != nil {
		zap.L().Error("Failed to remove user after failed registration", zap.Error(err), zap.String("userID", userID))
	}
}

// RefreshToken exchanges a valid refresh token for a brand new pair. The
// user is looked up by the token's email, so tokens issued before an email
// change are rejected. Old tokens stay valid until they expire.
func (s *AuthService) RefreshToken(ctx context.Context, token string) (*AuthResult, error) {
	if token == "" {
		return nil, validationErr("Refresh token is missing")
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		zap.L().Debug("Refresh token rejected", zap.Error(err))
		return nil, authErr("Invalid refresh token")
	}

	user, err := s.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, authErr("User not found")
		}

		return nil, internalErr("Failed to fetch user", err)
	}

	return s.issue(user)
}

// Forgot replaces the user's password with a generated one and mails it to
// them. The new password is stored before the mail goes out and is kept
// even if sending fails.
func (s *AuthService) Forgot(ctx context.Context, email string) error {
	if email == "" {
		return validationErr(validators.MissingMessage([]string{"email"}))
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return authErr("User not found")
		}

		return internalErr("Failed to fetch user", err)
	}

	password, err := s.GeneratePassword()
	if err != nil {
		return internalErr("Failed to generate password", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return internalErr("Failed to hash password", err)
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	if err := s.users.Update(ctx, user); err != nil {
		return internalErr("Failed to update password", err)
	}

	if err := s.mailer.Send(ctx, resetPasswordMail(user.Email, password)); err != nil {
		return serviceErr("Error", err)
	}

	return nil
}

func (s *AuthService) issue(u *model.User) (*AuthResult, error) {
	pair, err := s.tokens.Pair(u.Email, u.ID)
	if err != nil {
		return nil, internalErr("Failed to generate tokens", err)
	}

	return &AuthResult{
		UserID:       u.ID,
		Token:        pair.Token,
		RefreshToken: pair.RefreshToken,
	}, nil
}
