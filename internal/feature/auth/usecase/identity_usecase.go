package usecase

import (
	"context"
	"errors"
	"fmt"

	"leadswift_backend/internal/feature/auth/domain/entity"
)

// stateBytes is the entropy of the OAuth2 state parameter.
const stateBytes = 16

// ErrMissingCode is returned when the provider callback carries no authorization code.
var ErrMissingCode = errors.New("missing authorization code")

// identitySignIn is the part of the auth usecase the identity flow needs.
type identitySignIn interface {
	LoginWithIdentity(ctx context.Context, id entity.Identity, meta entity.ClientMeta) (*entity.TokenPair, error)
}

// IdentityUsecase drives sign-in through the hosted identity provider.
type IdentityUsecase struct {
	provider IdentityProvider
	auth     identitySignIn
}

// NewIdentityUsecase creates the identity sign-in flow.
func NewIdentityUsecase(provider IdentityProvider, auth identitySignIn) *IdentityUsecase {
	return &IdentityUsecase{provider: provider, auth: auth}
}

// Begin returns a fresh state value and the provider URL bound to it.
func (u *IdentityUsecase) Begin() (state, redirectURL string, err error) {
	state, err = randomToken(stateBytes)
	if err != nil {
		return "", "", err
	}
	return state, u.provider.AuthCodeURL(state), nil
}

// Complete exchanges the callback code and signs the user in.
func (u *IdentityUsecase) Complete(ctx context.Context, code string, meta entity.ClientMeta) (*entity.TokenPair, error) {
	if code == "" {
		return nil, ErrMissingCode
	}
	id, err := u.provider.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("identity provider exchange failed: %w", err)
	}
	return u.auth.LoginWithIdentity(ctx, *id, meta)
}
