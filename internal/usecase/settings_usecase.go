package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"

	"delivery-quote-backend/internal/domain"
	"delivery-quote-backend/pkg/utils"
)

// LoadErrorMessage is shown on the settings screen when the remote refresh fails.
const LoadErrorMessage = "Could not load from server. Showing cached values."

const settingsSubject = "settings"

// Registry is the part of RegistryUsecase the settings screen drives.
type Registry interface {
	RefreshFromRemote(ctx context.Context) ([]domain.Warehouse, error)
	Save(ctx context.Context, inputs []domain.WarehouseInput) ([]domain.Warehouse, error)
}

// SettingsUsecase gates the settings screen behind a shared PIN.
type SettingsUsecase struct {
	pin      string
	tokens   *utils.TokenIssuer
	registry Registry
}

func NewSettingsUsecase(pin string, tokens *utils.TokenIssuer, registry Registry) *SettingsUsecase {
	return &SettingsUsecase{
		pin:      pin,
		tokens:   tokens,
		registry: registry,
	}
}

// Unlock compares pin against the configured PIN and issues a session token.
func (u *SettingsUsecase) Unlock(pin string) (string, error) {
	if u.pin == "" || subtle.ConstantTimeCompare([]byte(pin), []byte(u.pin)) != 1 {
		return "", domain.ErrPinMismatch
	}
	token, err := u.tokens.Issue(settingsSubject)
	if err != nil {
		return "", fmt.Errorf("failed to issue settings token: %w", err)
	}
	return token, nil
}

// ValidateSession reports whether token is a live settings session.
func (u *SettingsUsecase) ValidateSession(token string) error {
	if token == "" {
		return domain.ErrPinMismatch
	}
	claims, err := u.tokens.Validate(token)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPinMismatch, err)
	}
	if sub, _ := claims["sub"].(string); sub != settingsSubject {
		return domain.ErrPinMismatch
	}
	return nil
}

// Load refreshes the registry for editing. On a failed refresh the cached values
// are returned with LoadErrorMessage.
func (u *SettingsUsecase) Load(ctx context.Context) ([]domain.Warehouse, string) {
	warehouses, err := u.registry.RefreshFromRemote(ctx)
	if err != nil {
		return warehouses, LoadErrorMessage
	}
	return warehouses, ""
}

func (u *SettingsUsecase) Save(ctx context.Context, inputs []domain.WarehouseInput) ([]domain.Warehouse, error) {
	return u.registry.Save(ctx, inputs)
}
