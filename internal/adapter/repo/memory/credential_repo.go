package memory

import (
	"context"

	"npcmind/internal/app/ports"
)

type PlayerCredentialRepo struct {
	store *Store
}

func NewPlayerCredentialRepo(store *Store) PlayerCredentialRepo {
	return PlayerCredentialRepo{store: store}
}

func (r PlayerCredentialRepo) Create(_ context.Context, credential ports.PlayerCredentialRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.credentials[credential.PlayerAddress]; ok {
		return ports.ErrConflict
	}
	r.store.credentials[credential.PlayerAddress] = credential
	return nil
}

func (r PlayerCredentialRepo) GetByAddress(_ context.Context, playerAddress string) (ports.PlayerCredentialRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	cred, ok := r.store.credentials[playerAddress]
	if !ok {
		return ports.PlayerCredentialRecord{}, ports.ErrNotFound
	}
	return cred, nil
}
