package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/contracts-api/internal/application/auth"
	"github.com/jhoicas/contracts-api/internal/application/dto"
	"github.com/jhoicas/contracts-api/internal/domain"
	"github.com/jhoicas/contracts-api/internal/domain/entity"
	"github.com/jhoicas/contracts-api/internal/domain/repository"
	"github.com/jhoicas/contracts-api/pkg/logger"
)

// UserUseCase alta y consulta de usuarios (solo administradores).
type UserUseCase struct {
	repo repository.UserRepository
	tx   repository.TxRunner
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, tx repository.TxRunner, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, tx: tx, log: log.Named("users")}
}

// Create crea un usuario. Username o email repetidos devuelven un error de validación
// (domain.ErrDuplicate) y el registro existente no se modifica.
func (uc *UserUseCase) Create(ctx context.Context, actor *entity.Identity, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	role, err := entity.ParseRole(in.Role)
	if err != nil {
		return nil, domain.NewValidationError("role", "rol desconocido")
	}
	hash, err := auth.HashPassword(in.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, domain.NewValidationError("password", "no puede superar 72 bytes")
	}
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		existing, err := r.Users.GetByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewDuplicateError("username")
		}
		existing, err = r.Users.GetByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewDuplicateError("email")
		}
		return r.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Str("role", string(role)).
		Int64("actor_id", actorID(actor)).Msg("usuario creado")
	return ToUserResponse(user), nil
}

// List lista los usuarios.
func (uc *UserUseCase) List(ctx context.Context) (*dto.ListResponse[dto.UserResponse], error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapList(list, ToUserResponse)), nil
}

// EnsureAdmin crea el administrador inicial si aún no existe un usuario con ese username.
// Devuelve true si lo creó.
func (uc *UserUseCase) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	existing, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	_, err = uc.Create(ctx, nil, dto.CreateUserRequest{
		Username: username,
		Email:    email,
		Password: password,
		Role:     string(entity.RoleAdmin),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
