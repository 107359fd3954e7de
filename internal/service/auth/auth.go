// internal/service/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vms-service/internal/domain/auth"
	xerrors "vms-service/internal/pkg/errors"
	"vms-service/internal/pkg/jwt"
	"vms-service/internal/pkg/session"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ClientMeta carries request metadata into login and session bookkeeping.
type ClientMeta struct {
	IP        string
	UserAgent string
	Device    string
}

type Service struct {
	users    auth.Repository
	tokens   *jwt.Manager
	sessions *session.Manager
	limiter  *session.RateLimiter
	logger   *zap.Logger
}

func NewService(users auth.Repository, tokens *jwt.Manager, sessions *session.Manager, limiter *session.RateLimiter, logger *zap.Logger) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		limiter:  limiter,
		logger:   logger,
	}
}

// Register creates a new account. The first registered user becomes an
// admin; everyone after that starts as a driver.
func (s *Service) Register(ctx context.Context, req *auth.RegisterRequest) (*auth.UserInfo, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("email check: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email %s already registered: %w", email, xerrors.ErrDuplicateEntry)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roles := []string{auth.RoleDriver}
	if _, total, err := s.users.List(ctx, 1, 1); err == nil && total == 0 {
		roles = []string{auth.RoleAdmin}
	}

	u := &auth.User{
		ID:           ulid.Make().String(),
		Email:        email,
		FullName:     req.FullName,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
		Roles:        roles,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID),
		zap.String("email", u.Email))

	info := toUserInfo(u)
	return &info, nil
}

// Login verifies credentials and issues an access/refresh token pair. Failed
// attempts are rate limited per IP and email.
func (s *Service) Login(ctx context.Context, req *auth.LoginRequest, meta ClientMeta) (*auth.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	allowed, remaining, err := s.limiter.CheckLoginAttempt(ctx, meta.IP, email)
	if err != nil {
		s.logger.Warn("rate limit check failed", zap.Error(err))
	} else if !allowed {
		return nil, fmt.Errorf("login attempts exhausted: %w", xerrors.ErrRateLimited)
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			s.logger.Info("login failed, unknown email",
				zap.String("email", email), zap.Int64("attempts_left", remaining))
			return nil, xerrors.ErrUnauthorized
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, fmt.Errorf("account deactivated: %w", xerrors.ErrUnauthorized)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		s.logger.Info("login failed, bad password",
			zap.String("user_id", u.ID), zap.Int64("attempts_left", remaining))
		return nil, xerrors.ErrUnauthorized
	}

	access, jti, err := s.tokens.Generator.GenerateAccessToken(u.ID, u.Roles, meta.Device)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, _, err := s.tokens.Generator.GenerateRefreshToken(u.ID, meta.Device)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	now := time.Now()
	sess := &session.SessionData{
		JTI:            jti,
		IdentityID:     u.ID,
		Email:          u.Email,
		Roles:          u.Roles,
		Device:         meta.Device,
		IPAddress:      meta.IP,
		UserAgent:      meta.UserAgent,
		LoginAt:        now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(s.tokens.Generator.Ttl),
		IsActive:       true,
	}
	if err := s.sessions.CreateSession(ctx, sess); err != nil {
		return nil, err
	}

	if err := s.limiter.ResetLoginAttempts(ctx, meta.IP, email); err != nil {
		s.logger.Warn("rate limit reset failed", zap.Error(err))
	}
	if err := s.users.TouchLastLogin(ctx, u.ID); err != nil {
		s.logger.Warn("last login update failed", zap.String("user_id", u.ID), zap.Error(err))
	}

	s.logger.Info("user logged in",
		zap.String("user_id", u.ID),
		zap.String("ip", meta.IP))

	return &auth.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokens.Generator.Ttl.Seconds()),
		User:         toUserInfo(u),
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh access token and
// session.
func (s *Service) Refresh(ctx context.Context, req *auth.RefreshRequest, meta ClientMeta) (*auth.RefreshResponse, error) {
	claims, err := s.tokens.Verifier.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh token rejected: %w", xerrors.ErrUnauthorized)
	}

	if revoked, err := s.sessions.IsTokenBlacklisted(ctx, claims.ID); err == nil && revoked {
		return nil, fmt.Errorf("refresh token revoked: %w", xerrors.ErrUnauthorized)
	}

	u, err := s.users.FindByID(ctx, claims.IdentityID)
	if err != nil {
		return nil, xerrors.ErrUnauthorized
	}
	if !u.IsActive {
		return nil, fmt.Errorf("account deactivated: %w", xerrors.ErrUnauthorized)
	}

	access, jti, err := s.tokens.Generator.GenerateAccessToken(u.ID, u.Roles, meta.Device)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	now := time.Now()
	sess := &session.SessionData{
		JTI:            jti,
		IdentityID:     u.ID,
		Email:          u.Email,
		Roles:          u.Roles,
		Device:         meta.Device,
		IPAddress:      meta.IP,
		UserAgent:      meta.UserAgent,
		LoginAt:        now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(s.tokens.Generator.Ttl),
		IsActive:       true,
	}
	if err := s.sessions.CreateSession(ctx, sess); err != nil {
		return nil, err
	}

	return &auth.RefreshResponse{
		AccessToken: access,
		ExpiresIn:   int64(s.tokens.Generator.Ttl.Seconds()),
	}, nil
}

// Logout revokes the presented access token and drops its session.
// identityID and jti come from the verified claims of the caller.
func (s *Service) Logout(ctx context.Context, identityID, jti string, expiresAt time.Time) error {
	if err := s.sessions.InvalidateSession(ctx, identityID, jti); err != nil {
		s.logger.Warn("session invalidation failed", zap.String("jti", jti), zap.Error(err))
	}
	if err := s.sessions.BlacklistToken(ctx, jti, time.Until(expiresAt)); err != nil {
		return err
	}

	s.logger.Info("user logged out", zap.String("user_id", identityID))
	return nil
}

// LogoutAll drops every session the user holds.
func (s *Service) LogoutAll(ctx context.Context, identityID string) error {
	if err := s.sessions.InvalidateAllUserSessions(ctx, identityID); err != nil {
		return err
	}
	s.logger.Info("all sessions revoked", zap.String("user_id", identityID))
	return nil
}

// ChangePassword verifies the current password, stores the new hash, and
// revokes every existing session. callerID is the authenticated user.
func (s *Service) ChangePassword(ctx context.Context, callerID string, req *auth.ChangePasswordRequest) error {
	u, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return fmt.Errorf("current password mismatch: %w", xerrors.ErrUnauthorized)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, callerID, string(hash)); err != nil {
		return err
	}

	if err := s.sessions.InvalidateAllUserSessions(ctx, callerID); err != nil {
		s.logger.Warn("session sweep failed after password change",
			zap.String("user_id", callerID), zap.Error(err))
	}

	s.logger.Info("password changed", zap.String("user_id", callerID))
	return nil
}

// Me returns the authenticated user's profile.
func (s *Service) Me(ctx context.Context, callerID string) (*auth.UserInfo, error) {
	u, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(u)
	return &info, nil
}

// UpdateProfile changes the caller's own name and phone number.
func (s *Service) UpdateProfile(ctx context.Context, callerID string, req *auth.UpdateProfileRequest) (*auth.UserInfo, error) {
	if err := s.users.UpdateProfile(ctx, callerID, strings.TrimSpace(req.FullName), strings.TrimSpace(req.Phone)); err != nil {
		return nil, err
	}

	u, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", zap.String("user_id", callerID))

	info := toUserInfo(u)
	return &info, nil
}

// Sessions lists the caller's active sessions.
func (s *Service) Sessions(ctx context.Context, callerID string) ([]*session.SessionData, error) {
	return s.sessions.ListUserSessions(ctx, callerID)
}

func toUserInfo(u *auth.User) auth.UserInfo {
	return auth.UserInfo{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Phone:       u.Phone,
		Roles:       []string(u.Roles),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
