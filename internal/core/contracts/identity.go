package contracts

import (
	"context"

	"github.com/NelloGamerz/Meme-Vault/internal/core/domain"
)

// IdentityProvider verifies a credential token and resolves the principal
// behind it. Verification failures are terminal for the handshake: no
// partially admitted connection exists.
type IdentityProvider interface {
	Verify(ctx context.Context, token string) (*domain.Principal, error)
}
