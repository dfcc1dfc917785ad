package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/mtaabiz/internal/application/dto"
	"github.com/jhoicas/mtaabiz/internal/domain"
	"github.com/jhoicas/mtaabiz/internal/domain/entity"
	"github.com/jhoicas/mtaabiz/internal/domain/repository"
	"github.com/jhoicas/mtaabiz/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AccountPolicy reglas de cuenta: límite mensual del plan gratuito y si se permite
// el upgrade de prueba (deshabilitado en producción).
type AccountPolicy struct {
	FreeInvoiceLimit int
	AllowTestUpgrade bool
}

// AuthUseCase casos de uso de autenticación y estado de cuenta.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	tokenRepo   repository.TokenRepository
	invoiceRepo repository.InvoiceRepository
	jwtCfg      JWTConfig
	policy      AccountPolicy
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	invoiceRepo repository.InvoiceRepository,
	jwtCfg JWTConfig,
	policy AccountPolicy,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		invoiceRepo: invoiceRepo,
		jwtCfg:      jwtCfg,
		policy:      policy,
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *AuthUseCase) WithClock(now func() time.Time) *AuthUseCase {
	uc.now = now
	return uc
}

// Register crea un usuario (bcrypt) y emite su primer token.
// Devuelve ErrUsernameTaken si el username ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(in.Username)
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.issue(ctx, user)
}

// Login verifica username/password y emite un token nuevo.
// Usuario inexistente y password incorrecto devuelven el mismo ErrBadCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrBadCredentials
	}
	return uc.issue(ctx, user)
}

// Logout revoca el token indicado. Un token ya revocado no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, tokenID string) error {
	if err := uc.tokenRepo.Delete(ctx, tokenID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

// Authenticate valida firma y claims del token y que su registro siga vigente.
func (uc *AuthUseCase) Authenticate(ctx context.Context, tokenString string) (userID, tokenID string, err error) {
	userID, tokenID, err = jwt.Parse(uc.jwtCfg.Secret, tokenString)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	rec, err := uc.tokenRepo.GetByID(ctx, tokenID)
	if err != nil {
		return "", "", err
	}
	if rec == nil || rec.UserID != userID {
		return "", "", domain.ErrUnauthorized
	}
	return userID, tokenID, nil
}

// CurrentUser devuelve el usuario dueño del token.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Status cuenta las facturas del mes calendario en curso (UTC) y el límite aplicable.
func (uc *AuthUseCase) Status(ctx context.Context, userID string) (*dto.AccountStatusResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	count, err := uc.invoiceRepo.CountByUserSince(ctx, userID, MonthStart(uc.now()))
	if err != nil {
		return nil, err
	}
	out := &dto.AccountStatusResponse{IsPro: user.IsPro, InvoiceCount: count}
	if !user.IsPro {
		limit := uc.policy.FreeInvoiceLimit
		out.Limit = &limit
	}
	return out, nil
}

// UpgradeTest marca la cuenta como PRO sin pago. Solo fuera de producción.
func (uc *AuthUseCase) UpgradeTest(ctx context.Context, userID string) (*dto.MessageResponse, error) {
	if !uc.policy.AllowTestUpgrade {
		return nil, domain.ErrForbidden
	}
	if err := uc.userRepo.SetPro(ctx, userID, true); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "Account upgraded to PRO (test mode)."}, nil
}

// MonthStart primer instante del mes calendario de t, en UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// issue crea el registro del token (jti) y firma el JWT.
func (uc *AuthUseCase) issue(ctx context.Context, user *entity.User) (*dto.AuthResponse, error) {
	rec := &entity.AuthToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: uc.now(),
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, rec.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	if err := uc.tokenRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("guardar token: %w", err)
	}
	return &dto.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:       dto.FlexibleID(u.ID),
		Username: u.Username,
		Email:    u.Email,
	}
}
