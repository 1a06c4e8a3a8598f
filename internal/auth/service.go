package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"github.com/frahmantamala/attendance-management/internal/core/events"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the employee id is unknown so both
// failure paths spend a bcrypt verification.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type ServiceConfig struct {
	AdminEmployeeID string
	QueryTimeout    time.Duration
}

// Service is the identity service: registration, login and token resolution.
type Service struct {
	repo            RepositoryAPI
	tokenGenerator  TokenGenerator
	hasher          PasswordHasher
	publisher       events.Publisher
	adminEmployeeID string
	queryTimeout    time.Duration
	logger          *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGenerator, hasher PasswordHasher, cfg ServiceConfig, logger *slog.Logger) *Service {
	adminID := cfg.AdminEmployeeID
	if adminID == "" {
		adminID = internal.DefaultAdminEmployeeID
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:            repo,
		tokenGenerator:  tokenGen,
		hasher:          hasher,
		publisher:       events.NopPublisher{},
		adminEmployeeID: adminID,
		queryTimeout:    cfg.QueryTimeout,
		logger:          logger,
	}
}

// WithPublisher makes Register emit user.registered events.
func (s *Service) WithPublisher(p events.Publisher) *Service {
	if p != nil {
		s.publisher = p
	}
	return s
}

// RoleFor assigns admin only to the configured sentinel employee id.
func (s *Service) RoleFor(employeeID string) internal.Role {
	if employeeID == s.adminEmployeeID {
		return internal.RoleAdmin
	}
	return internal.RoleUser
}

// Register creates the user and returns a session for it.
func (s *Service) Register(ctx context.Context, dto SignupDTO) (Session, error) {
	dto = dto.Normalize()
	if err := dto.Validate(); err != nil {
		return Session{}, err
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	_, err := s.repo.GetByEmployeeID(ctx, dto.EmployeeID)
	switch {
	case err == nil:
		return Session{}, internal.ErrUserExists
	case !errors.Is(err, internal.ErrUserNotFound):
		return Session{}, internal.NewInternalError("failed to look up user", err)
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return Session{}, internal.NewInternalError("failed to hash password", err)
	}

	role := s.RoleFor(dto.EmployeeID)
	u := &userDatamodel.User{
		EmployeeID:   dto.EmployeeID,
		Name:         dto.Name,
		PasswordHash: hash,
		Role:         string(role),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, internal.ErrUserExists) {
			return Session{}, internal.ErrUserExists
		}
		return Session{}, internal.NewInternalError("failed to create user", err)
	}

	session, err := s.issue(u.ID, role)
	if err != nil {
		return Session{}, err
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", u.ID, "role", role)
	if err := s.publisher.Publish(ctx, events.NewUserRegisteredEvent(u.ID, u.EmployeeID, string(role))); err != nil {
		s.logger.WarnContext(ctx, "user.registered event not delivered", "user_id", u.ID, "error", err)
	}

	return session, nil
}

// Authenticate verifies credentials. Unknown ids and wrong passwords produce
// the same error.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (Session, error) {
	dto = dto.Normalize()
	if err := dto.Validate(); err != nil {
		return Session{}, err
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	u, err := s.repo.GetByEmployeeID(ctx, dto.EmployeeID)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			_ = s.hasher.Verify(dummyHash, dto.Password)
			return Session{}, internal.ErrInvalidCredentials
		}
		return Session{}, internal.NewInternalError("failed to look up user", err)
	}

	if err := s.hasher.Verify(u.PasswordHash, dto.Password); err != nil {
		return Session{}, internal.ErrInvalidCredentials
	}

	return s.issue(u.ID, internal.Role(u.Role))
}

// Resolve turns a bearer token into the caller principal. The user must still
// exist.
func (s *Service) Resolve(ctx context.Context, token string) (*internal.Principal, error) {
	if strings.TrimSpace(token) == "" {
		return nil, internal.ErrMissingToken
	}

	claims, err := s.tokenGenerator.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return nil, internal.ErrInvalidToken
		}
		return nil, internal.NewInternalError("failed to load token user", err)
	}

	return FromDataModel(u).Principal(), nil
}

func (s *Service) issue(userID int64, role internal.Role) (Session, error) {
	token, expiresAt, err := s.tokenGenerator.GenerateAccessToken(strconv.FormatInt(userID, 10), role)
	if err != nil {
		return Session{}, internal.NewInternalError("failed to sign token", err)
	}
	return Session{Token: token, Role: role, ExpiresAt: expiresAt}, nil
}

// JWTTokenGenerator signs HS256 session tokens.
type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
	Issuer         string
	now            func() time.Time
}

// NewJWTTokenGenerator creates a new JWT token generator. The secret must come
// from configuration.
func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl == 0 {
		ttl = internal.DefaultAccessTokenDuration
	}
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		AccessTokenTTL: ttl,
		Issuer:         "attendance-management",
		now:            time.Now,
	}
}

// GenerateAccessToken creates a new access token
func (j *JWTTokenGenerator) GenerateAccessToken(userID string, role internal.Role) (string, time.Time, error) {
	if len(j.Secret) == 0 {
		return "", time.Time{}, errors.New("jwt secret is not configured")
	}

	now := j.now()
	expiresAt := now.Add(j.AccessTokenTTL)

	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
			Issuer:    j.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" || !claims.Role.Valid() {
		return nil, internal.ErrInvalidToken
	}

	return claims, nil
}

// BcryptHasher is the PasswordHasher used in production.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

// HashPassword creates a bcrypt hash of the password
func (b *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (b *BcryptHasher) Verify(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
