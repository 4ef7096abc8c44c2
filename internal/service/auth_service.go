package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/groupsplit/internal/api"
	"github.com/mmynk/groupsplit/internal/auth"
	"github.com/mmynk/groupsplit/internal/middleware"
	"github.com/mmynk/groupsplit/internal/models"
	"github.com/mmynk/groupsplit/internal/storage"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         storage.UserStore
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users storage.UserStore, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// Register creates a new user account and signs them in.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Register request", "username", req.Msg.Username)

	if req.Msg.Username == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidUsername)
	}

	user, err := s.authenticator.Register(ctx, req.Msg.Username, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "username", req.Msg.Username, "error", err)
		return nil, toConnectError(err)
	}

	resp, err := s.signIn(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "username", user.Username)
	return connect.NewResponse(resp), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.Info("Login request", "username", req.Msg.Username)

	if req.Msg.Username == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "username", req.Msg.Username, "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	resp, err := s.signIn(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "username", user.Username)
	return connect.NewResponse(resp), nil
}

// GetCurrentUser returns the stored account of the authenticated user.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.UserResponse], error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("GetCurrentUser request", "user_id", user.ID)
	return connect.NewResponse(&api.UserResponse{User: userToAPI(user)}), nil
}

// GetUser looks up another registered account by username.
func (s *AuthService) GetUser(ctx context.Context, req *connect.Request[api.GetUserRequest]) (*connect.Response[api.UserResponse], error) {
	username := auth.NormalizeUsername(req.Msg.Username)
	if username == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidUsername)
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UserResponse{User: userToAPI(user)}), nil
}

// UpdateProfile changes the authenticated user's display name. An empty name
// falls back to the username.
func (s *AuthService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UserResponse], error) {
	user, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	user.DisplayName = strings.TrimSpace(req.Msg.DisplayName)
	if user.DisplayName == "" {
		user.DisplayName = user.Username
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		s.logger.Error("Failed to update profile", "user_id", user.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Profile updated", "user_id", user.ID)
	return connect.NewResponse(&api.UserResponse{User: userToAPI(user)}), nil
}

// currentUser loads the account behind the token. A valid token whose
// account no longer exists is treated as unauthenticated.
func (s *AuthService) currentUser(ctx context.Context) (*models.User, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
	}
	if err != nil {
		return nil, toConnectError(err)
	}
	return user, nil
}

func (s *AuthService) signIn(user *models.User) (*api.AuthResponse, error) {
	token, expiresAt, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return &api.AuthResponse{
		User:      userToAPI(user),
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}
