package service

import (
	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/store"
)

// Services holds one session's worth of services. AuthService and
// VaultService share the same CipherService, so unlocking through the
// former enables the latter.
type Services struct {
	AuthService  AuthService
	VaultService VaultService
}

func NewServices(storages *store.Storages, cfg config.Crypto, logger *logger.Logger) *Services {
	params := crypto.ArgonParams{
		Time:    cfg.ArgonTime,
		Memory:  cfg.ArgonMemory,
		Threads: cfg.ArgonThreads,
	}
	cipher := crypto.NewCipherService()

	authSvc := NewAuthService(
		storages.MasterConfig,
		crypto.NewKeyChainService(params),
		crypto.NewPasswordHasher(params),
		cipher,
		logger,
	)
	vaultSvc := NewVaultValidationService().Wrap(
		NewVaultService(storages.Vault, cipher, NewPasswordGenerator(), logger),
	)

	return &Services{
		AuthService:  authSvc,
		VaultService: vaultSvc,
	}
}
