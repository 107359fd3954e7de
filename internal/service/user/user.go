// internal/service/user/user.go
package user

import (
	"context"
	"fmt"

	"vms-service/internal/domain/auth"
	xerrors "vms-service/internal/pkg/errors"
	"vms-service/internal/pkg/session"

	"go.uber.org/zap"
)

// Service covers admin-side user management. Every mutating call takes the
// acting admin's ID so the audit log names who did what.
type Service struct {
	users    auth.Repository
	sessions *session.Manager
	logger   *zap.Logger
}

func NewService(users auth.Repository, sessions *session.Manager, logger *zap.Logger) *Service {
	return &Service{users: users, sessions: sessions, logger: logger}
}

// List returns users, paginated
func (s *Service) List(ctx context.Context, page, pageSize int) ([]auth.UserInfo, int64, error) {
	users, total, err := s.users.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	infos := make([]auth.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, toUserInfo(&users[i]))
	}
	return infos, total, nil
}

// Get returns one user's profile
func (s *Service) Get(ctx context.Context, id string) (*auth.UserInfo, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(u)
	return &info, nil
}

// UpdateRoles replaces a user's role set. Admins cannot strip their own
// admin role, which would lock the fleet out of user management.
func (s *Service) UpdateRoles(ctx context.Context, actorID, userID string, roles []string) error {
	if actorID == userID && !contains(roles, auth.RoleAdmin) {
		return fmt.Errorf("cannot drop own admin role: %w", xerrors.ErrInvalidInput)
	}

	if err := s.users.UpdateRoles(ctx, userID, roles); err != nil {
		return err
	}

	// Existing tokens still carry the old roles until they expire, so the
	// sessions are swept to force a fresh login.
	if err := s.sessions.InvalidateAllUserSessions(ctx, userID); err != nil {
		s.logger.Warn("session sweep failed after role change",
			zap.String("user_id", userID), zap.Error(err))
	}

	s.logger.Info("user roles updated",
		zap.String("actor_id", actorID),
		zap.String("user_id", userID),
		zap.Strings("roles", roles))

	return nil
}

// SetActive enables or disables an account. Deactivation revokes every
// session the user holds.
func (s *Service) SetActive(ctx context.Context, actorID, userID string, active bool) error {
	if actorID == userID && !active {
		return fmt.Errorf("cannot deactivate own account: %w", xerrors.ErrInvalidInput)
	}

	if err := s.users.SetActive(ctx, userID, active); err != nil {
		return err
	}

	if !active {
		if err := s.sessions.InvalidateAllUserSessions(ctx, userID); err != nil {
			s.logger.Warn("session sweep failed after deactivation",
				zap.String("user_id", userID), zap.Error(err))
		}
	}

	s.logger.Info("user active flag changed",
		zap.String("actor_id", actorID),
		zap.String("user_id", userID),
		zap.Bool("active", active))

	return nil
}

func toUserInfo(u *auth.User) auth.UserInfo {
	return auth.UserInfo{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Roles:       []string(u.Roles),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
