package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/contracts-api/internal/application/dto"
	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
	"github.com/jhoicas/contracts-api/pkg/jwt"
	"github.com/jhoicas/contracts-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	Issuer     string
	SessionTTL time.Duration
}

// AuthUseCase casos de uso de autenticación: login, resolución de identidad y logout.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtCfg      JWTConfig
	log         *logger.Logger
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtCfg:      jwtCfg,
		log:         log.Named("auth"),
		now:         time.Now,
	}
}

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// dummyPasswordHash hash fijo contra el que se compara cuando el usuario no existe,
// así ambos caminos de fallo cuestan un bcrypt.
func dummyPasswordHash() []byte {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("contracts-api/dummy"), bcrypt.DefaultCost)
	})
	return dummyHash
}

// HashPassword genera el hash bcrypt de una contraseña.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Authenticate verifica username/password. Usuario inexistente y contraseña incorrecta
// devuelven el mismo domain.ErrInvalidCredentials.
func (uc *AuthUseCase) Authenticate(ctx context.Context, username, password string) (*entity.Identity, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash(), []byte(password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	role, err := entity.ParseRole(string(user.Role))
	if err != nil {
		return nil, err
	}
	return &entity.Identity{UserID: user.ID, Username: user.Username, Role: role}, nil
}

// Login autentica, abre una sesión del lado servidor y devuelve el token que la referencia.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	id, err := uc.Authenticate(ctx, in.Username, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownRole) {
			uc.log.Warn().Str("username", in.Username).Msg("login rechazado: rol desconocido")
		}
		return nil, err
	}
	now := uc.now().UTC()
	sess := &entity.Session{
		ID:        uuid.New().String(),
		UserID:    id.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.jwtCfg.SessionTTL),
	}
	if err := uc.sessionRepo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, sess.ID, id.UserID, uc.jwtCfg.Issuer, uc.jwtCfg.SessionTTL)
	if err != nil {
		_ = uc.sessionRepo.Delete(ctx, sess.ID)
		return nil, err
	}
	id.SessionID = sess.ID
	uc.log.Info().Int64("user_id", id.UserID).Str("role", string(id.Role)).Msg("sesión iniciada")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		Identity:  ToIdentityResponse(id),
	}, nil
}

// ResolveIdentity valida el token y la sesión a la que apunta y devuelve la identidad actual.
// Si el rol almacenado ya no es válido la sesión se destruye y se devuelve domain.ErrUnknownRole.
func (uc *AuthUseCase) ResolveIdentity(ctx context.Context, token string) (*entity.Identity, error) {
	sessionID, userID, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	sess, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.UserID != userID || sess.Expired(uc.now()) {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = uc.sessionRepo.Delete(ctx, sessionID)
		return nil, domain.ErrUnauthorized
	}
	role, err := entity.ParseRole(string(user.Role))
	if err != nil {
		if delErr := uc.sessionRepo.Delete(ctx, sessionID); delErr != nil {
			uc.log.Error().Err(delErr).Str("session_id", sessionID).Msg("no se pudo cerrar la sesión")
		}
		uc.log.Warn().Int64("user_id", user.ID).Msg("sesión cerrada: rol desconocido")
		return nil, domain.ErrUnknownRole
	}
	return &entity.Identity{UserID: user.ID, Username: user.Username, Role: role, SessionID: sessionID}, nil
}

// Logout destruye la sesión referenciada por el token. Un token ya inválido no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	sessionID, userID, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	if err := uc.sessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}
	uc.log.Info().Int64("user_id", userID).Msg("sesión cerrada")
	return nil
}

// ToIdentityResponse mapea la identidad a su salida HTTP.
func ToIdentityResponse(id *entity.Identity) dto.IdentityResponse {
	return dto.IdentityResponse{
		UserID:    id.UserID,
		Username:  id.Username,
		Role:      string(id.Role),
		RoleLabel: id.Role.Label(),
		Dashboard: "/api/dashboard/" + string(id.Role),
	}
}
