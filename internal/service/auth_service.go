package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"teledetect-platform/internal/model"
	"teledetect-platform/internal/session"
	"teledetect-platform/internal/token"
	"teledetect-platform/pkg/apierror"
)

const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// CredentialStore is the identity persistence contract the auth protocol
// runs against. The pgx repository implements it in production; tests use
// an in-memory fake.
type CredentialStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	Create(ctx context.Context, u model.User) error
	Update(ctx context.Context, u model.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset int, limit int) ([]model.User, error)
	Count(ctx context.Context) (int, error)
}

// AuthService orchestrates registration, login, logout and verification
// over the credential store, the token codec and the revocation store.
type AuthService struct {
	users    CredentialStore
	sessions session.Store
	codec    *token.Codec
}

func NewAuthService(users CredentialStore, sessions session.Store, codec *token.Codec) *AuthService {
	return &AuthService{users: users, sessions: sessions, codec: codec}
}

// Register creates a new identity record. No token is issued; the caller
// logs in separately.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)

	if email == "" || username == "" || req.Password == "" {
		return model.User{}, apierror.Validation("email, username and password are required")
	}
	if !emailPattern.MatchString(email) {
		return model.User{}, apierror.Validation("Invalid email format")
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = model.RoleViewer
	}
	if !model.ValidRole(role) {
		return model.User{}, apierror.Validation("invalid role")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return model.User{}, apierror.Duplicate("Email already registered")
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, fmt.Errorf("check email: %w", err)
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return model.User{}, apierror.Duplicate("Username already taken")
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserAlreadyExists) {
			return model.User{}, apierror.Duplicate("Email or username already taken")
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login authenticates by username or email. The error message never reveals
// which of identifier or password was wrong.
func (s *AuthService) Login(ctx context.Context, identifier string, password string) (model.TokenResponse, error) {
	user, err := s.users.FindByUsername(ctx, identifier)
	if errors.Is(err, model.ErrUserNotFound) {
		user, err = s.users.FindByEmail(ctx, identifier)
	}
	if errors.Is(err, model.ErrUserNotFound) {
		return model.TokenResponse{}, apierror.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.TokenResponse{}, apierror.Unauthorized("Invalid credentials")
	}

	if !user.IsActive {
		return model.TokenResponse{}, apierror.Unauthorized("Account is disabled")
	}

	accessToken, err := s.codec.Issue(user)
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("issue token: %w", err)
	}

	// Overwriting the session entry invalidates any prior token for this
	// subject, even one that has not yet expired.
	if err := s.sessions.Put(ctx, user.ID, accessToken, s.codec.TTL()); err != nil {
		return model.TokenResponse{}, fmt.Errorf("store session: %w", err)
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		slog.Warn("failed to update last login", "user_id", user.ID, "error", err)
	}

	slog.Info("user logged in", "user_id", user.ID, "username", user.Username)
	return model.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.codec.TTL().Seconds()),
	}, nil
}

// Logout clears the session for the token's subject. A merely expired token
// still identifies whose session to clear; a token whose signature does not
// verify is rejected. Logging out an already absent session succeeds.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.codec.DecodeExpired(tokenString)
	if err != nil {
		return apierror.Unauthorized("Invalid token")
	}

	if err := s.sessions.Delete(ctx, claims.UserID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	slog.Info("user logged out", "user_id", claims.UserID)
	return nil
}

// Verify is the single authoritative check for a presented token: decode,
// compare against the revocation store entry, then load and gate the
// identity record. Callers never observe the intermediate steps.
func (s *AuthService) Verify(ctx context.Context, tokenString string) (model.User, error) {
	claims, err := s.codec.Decode(tokenString)
	if err != nil {
		return model.User{}, apierror.Unauthorized("Invalid token")
	}

	stored, err := s.sessions.Get(ctx, claims.UserID)
	if errors.Is(err, model.ErrNoSession) {
		return model.User{}, apierror.Unauthorized("Token not found or expired")
	}
	if err != nil {
		return model.User{}, fmt.Errorf("fetch session: %w", err)
	}

	// A stale token from before a re-login decodes fine but no longer
	// matches the stored value; it must be rejected.
	if stored != tokenString {
		return model.User{}, apierror.Unauthorized("Token not found or expired")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, apierror.NotFound("User not found", claims.UserID)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("load user: %w", err)
	}

	if !user.IsActive {
		return model.User{}, apierror.Unauthorized("Account is disabled")
	}

	return user, nil
}

// ListUsers returns a page of identity records for administrative use.
func (s *AuthService) ListUsers(ctx context.Context, page int, size int) (model.UserListResponse, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 100
	}

	total, err := s.users.Count(ctx)
	if err != nil {
		return model.UserListResponse{}, fmt.Errorf("count users: %w", err)
	}

	users, err := s.users.List(ctx, (page-1)*size, size)
	if err != nil {
		return model.UserListResponse{}, fmt.Errorf("list users: %w", err)
	}

	return model.UserListResponse{
		Users: users,
		Meta: model.Meta{
			Page:  page,
			Size:  size,
			Total: total,
			Pages: (total + size - 1) / size,
		},
	}, nil
}

// UpdateUser applies a partial profile update to an identity record.
// Deactivating an account also revokes its live session, so outstanding
// tokens stop verifying immediately.
func (s *AuthService) UpdateUser(ctx context.Context, id string, req model.UpdateUserRequest) (model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.User{}, apierror.NotFound("User not found", id)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("load user: %w", err)
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Role != nil {
		role := strings.ToLower(strings.TrimSpace(*req.Role))
		if !model.ValidRole(role) {
			return model.User{}, apierror.Validation("invalid role")
		}
		user.Role = role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.User{}, apierror.NotFound("User not found", id)
		}
		return model.User{}, fmt.Errorf("update user: %w", err)
	}

	if req.IsActive != nil && !user.IsActive {
		if err := s.sessions.Delete(ctx, user.ID); err != nil {
			slog.Warn("failed to revoke session of deactivated user", "user_id", user.ID, "error", err)
		}
	}

	slog.Info("user updated", "user_id", user.ID)
	return user, nil
}

// DeleteUser removes an identity record and revokes any live session for it.
func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return apierror.NotFound("User not found", id)
		}
		return fmt.Errorf("delete user: %w", err)
	}

	if err := s.sessions.Delete(ctx, id); err != nil {
		slog.Warn("failed to revoke session of deleted user", "user_id", id, "error", err)
	}

	slog.Info("user deleted", "user_id", id)
	return nil
}
