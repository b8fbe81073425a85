package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/mock"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// testCrypto keeps Argon2id cheap in tests.
var testCrypto = config.Crypto{ArgonTime: 1, ArgonMemory: 8 * 1024, ArgonThreads: 1}

// legacyHash is a werkzeug pbkdf2 hash of "correct horse", as written by the
// earlier version of the tool.
const legacyHash = "pbkdf2:sha256:1000$NaCl$cba50afb9ece1b6c899d921b4b7139139f7d2258b02086c1764c441575c66253"

type mockedAuth struct {
	svc          *authService
	masterConfig *mock.MockMasterConfigStore
	keyChain     *mock.MockKeyChainService
	hasher       *mock.MockPasswordHasher
	cipher       *mock.MockCipherService
}

func newMockedAuthSvc(t *testing.T, ctrl *gomock.Controller) mockedAuth {
	t.Helper()
	m := mockedAuth{
		masterConfig: mock.NewMockMasterConfigStore(ctrl),
		keyChain:     mock.NewMockKeyChainService(ctrl),
		hasher:       mock.NewMockPasswordHasher(ctrl),
		cipher:       mock.NewMockCipherService(ctrl),
	}
	m.svc = NewAuthService(m.masterConfig, m.keyChain, m.hasher, m.cipher, logger.Nop()).(*authService)
	return m
}

// testEnv wires real stores and crypto on a temp directory.
type testEnv struct {
	cfg      config.Storage
	storages *store.Storages
	services *Services
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Storage{
		VaultPath:        filepath.Join(dir, "data", "passwords.json"),
		MasterConfigPath: filepath.Join(dir, "config.json"),
		LockRetryDelay:   5 * time.Millisecond,
		LockTimeout:      2 * time.Second,
	}
	storages, err := store.NewStorages(cfg, afero.NewOsFs(), logger.Nop())
	require.NoError(t, err)

	return testEnv{
		cfg:      cfg,
		storages: storages,
		services: NewServices(storages, testCrypto, logger.Nop()),
	}
}

// reopen builds a fresh set of services on the same files, as a new process
// would.
func (e testEnv) reopen(t *testing.T) *Services {
	t.Helper()
	storages, err := store.NewStorages(e.cfg, afero.NewOsFs(), logger.Nop())
	require.NoError(t, err)
	return NewServices(storages, testCrypto, logger.Nop())
}

func readMasterConfigJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	return raw
}

// ── Initialize ───────────────────────────────────────────────────────────────

func TestAuthService_Initialize_WritesConfig(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth := env.services.AuthService

	assert.False(t, auth.Initialized(ctx))
	require.NoError(t, auth.Initialize(ctx, "hunter2"))
	assert.True(t, auth.Initialized(ctx))

	raw := readMasterConfigJSON(t, env.cfg.MasterConfigPath)
	assert.Contains(t, raw["master_password_hash"], "$argon2id$")
	assert.NotEmpty(t, raw["encryption_salt"])
	assert.NotEmpty(t, raw["encrypted_data_key"])

	data, err := os.ReadFile(env.cfg.MasterConfigPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hunter2")
}

func TestAuthService_Initialize_Twice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.services.AuthService.Initialize(ctx, "first"))
	err := env.services.AuthService.Initialize(ctx, "second")
	assert.ErrorIs(t, err, ErrAlreadyInitialized)

	assert.True(t, env.services.AuthService.Verify(ctx, "first"))
	assert.False(t, env.services.AuthService.Verify(ctx, "second"))
}

func TestAuthService_Initialize_EmptyPassphrase(t *testing.T) {
	env := newTestEnv(t)

	err := env.services.AuthService.Initialize(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.False(t, env.services.AuthService.Initialized(context.Background()))
}

func TestAuthService_Initialize_RaceLostMapsToAlreadyInitialized(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockedAuthSvc(t, ctrl)
	ctx := context.Background()

	dek := make([]byte, 32)
	gomock.InOrder(
		m.masterConfig.EXPECT().Exists(ctx).Return(false, nil),
		m.hasher.EXPECT().Hash("pw").Return("$argon2id$h", nil),
		m.keyChain.EXPECT().GenerateDEK().Return(dek, nil),
		m.keyChain.EXPECT().GenerateEncryptionSalt().Return([]byte("salt"), nil),
		m.keyChain.EXPECT().GenerateKEK("pw", []byte("salt")).Return([]byte("kek")),
		m.keyChain.EXPECT().WrapDEK(gomock.Any(), []byte("kek")).Return([]byte("wrapped"), nil),
		m.masterConfig.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, cfg models.MasterConfig) error {
				assert.Equal(t, "$argon2id$h", cfg.MasterPasswordHash)
				assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("salt")), cfg.EncryptionSalt)
				assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("wrapped")), cfg.EncryptedDataKey)
				return store.ErrConfigExists
			},
		),
	)

	err := m.svc.Initialize(ctx, "pw")
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestAuthService_Initialize_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockedAuthSvc(t, ctrl)
	ctx := context.Background()

	m.masterConfig.EXPECT().Exists(ctx).Return(false, store.ErrStorage)

	err := m.svc.Initialize(ctx, "pw")
	assert.ErrorIs(t, err, store.ErrStorage)
}

// ── Verify ───────────────────────────────────────────────────────────────────

func TestAuthService_Verify(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth := env.services.AuthService

	assert.False(t, auth.Verify(ctx, "anything"), "no config yet")

	require.NoError(t, auth.Initialize(ctx, "hunter2"))

	assert.True(t, auth.Verify(ctx, "hunter2"))
	for _, wrong := range []string{"", "hunter", "hunter22", "Hunter2", " hunter2"} {
		assert.Falsef(t, auth.Verify(ctx, wrong), "candidate %q", wrong)
	}
}

func TestAuthService_Verify_FailsClosed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{{{"},
		{name: "no hash", body: `{"encryption_salt":"c2FsdA=="}`},
		{name: "unknown hash format", body: `{"master_password_hash":"md5$abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			require.NoError(t, os.WriteFile(env.cfg.MasterConfigPath, []byte(tt.body), 0o600))

			assert.False(t, env.services.AuthService.Verify(context.Background(), ""))
			assert.False(t, env.services.AuthService.Verify(context.Background(), "md5$abc"))
		})
	}
}

func TestAuthService_Verify_HasherError(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockedAuthSvc(t, ctrl)
	ctx := context.Background()

	m.masterConfig.EXPECT().Load(ctx).Return(models.MasterConfig{MasterPasswordHash: "bad"}, nil)
	m.hasher.EXPECT().Verify("pw", "bad").Return(false, crypto.ErrInvalidHash)

	assert.False(t, m.svc.Verify(ctx, "pw"))
}

// ── Unlock / Lock ────────────────────────────────────────────────────────────

func TestAuthService_Unlock_InstallsKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockedAuthSvc(t, ctrl)
	ctx := context.Background()

	cfg := models.MasterConfig{
		MasterPasswordHash: "$argon2id$h",
		EncryptionSalt:     base64.StdEncoding.EncodeToString([]byte("salt")),
		EncryptedDataKey:   base64.StdEncoding.EncodeToString([]byte("wrapped")),
	}
	dek := []byte("0123456789abcdef0123456789abcdef")
	wantKey := append([]byte(nil), dek...)

	gomock.InOrder(
		m.masterConfig.EXPECT().Load(ctx).Return(cfg, nil),
		m.hasher.EXPECT().Verify("pw", "$argon2id$h").Return(true, nil),
		m.hasher.EXPECT().NeedsRehash("$argon2id$h").Return(false),
		m.keyChain.EXPECT().GenerateKEK("pw", []byte("salt")).Return([]byte("kek")),
		m.keyChain.EXPECT().UnwrapDEK([]byte("wrapped"), []byte("kek")).Return(dek, nil),
		m.cipher.EXPECT().SetKey(wantKey).Return(nil),
	)

	require.NoError(t, m.svc.Unlock(ctx, "pw"))
	assert.Equal(t, make([]byte, 32), dek, "vault key must be wiped after hand-over")
	assert.NotEmpty(t, m.svc.sessionID)

	m.cipher.EXPECT().Lock()
	m.svc.Lock()
	assert.Empty(t, m.svc.sessionID)
}

func TestAuthService_Unlock_WrongPassphrase(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockedAuthSvc(t, ctrl)
	ctx := context.Background()

	m.masterConfig.EXPECT().Load(ctx).Return(models.MasterConfig{MasterPasswordHash: "h"}, nil)
	m.hasher.EXPECT().Verify("wrong", "h").Return(false, nil)
	// no key material may be touched on mismatch
	m.cipher.EXPECT().SetKey(gomock.Any()).Times(0)

	err := m.svc.Unlock(ctx, "wrong")
	assert.ErrorIs(t, err, ErrAuth)
}

func TestAuthService_Unlock_NotInitialized(t *testing.T) {
	env := newTestEnv(t)

	err := env.services.AuthService.Unlock(context.Background(), "pw")
	assert.ErrorIs(t, err, ErrAuth)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestAuthService_Unlock_MalformedConfig(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.cfg.MasterConfigPath, []byte("[]"), 0o600))

	err := env.services.AuthService.Unlock(context.Background(), "pw")
	assert.ErrorIs(t, err, ErrAuth)
	assert.ErrorIs(t, err, store.ErrMalformedConfig)
}

func TestAuthService_Unlock_CorruptedWrappedKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.services.AuthService.Initialize(ctx, "pw"))

	raw := readMasterConfigJSON(t, env.cfg.MasterConfigPath)
	wrapped, err := base64.StdEncoding.DecodeString(raw["encrypted_data_key"].(string))
	require.NoError(t, err)
	wrapped[len(wrapped)-1] ^= 0x01
	raw["encrypted_data_key"] = base64.StdEncoding.EncodeToString(wrapped)
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(env.cfg.MasterConfigPath, data, 0o600))

	err = env.services.AuthService.Unlock(ctx, "pw")
	assert.ErrorIs(t, err, ErrAuth)
	assert.ErrorIs(t, err, crypto.ErrDecryption)
}

func TestAuthService_Unlock_Twice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth := env.services.AuthService
	require.NoError(t, auth.Initialize(ctx, "pw"))

	require.NoError(t, auth.Unlock(ctx, "pw"))
	err := auth.Unlock(ctx, "pw")
	assert.ErrorIs(t, err, crypto.ErrKeyAlreadySet)

	auth.Lock()
	assert.NoError(t, auth.Unlock(ctx, "pw"))
}

func TestAuthService_Lock_EndsSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth, vault := env.services.AuthService, env.services.VaultService
	require.NoError(t, auth.Initialize(ctx, "pw"))
	require.NoError(t, auth.Unlock(ctx, "pw"))
	require.NoError(t, vault.SavePassword(ctx, "site", "e", "p"))

	auth.Lock()

	_, err := vault.SearchPassword(ctx, "site")
	assert.ErrorIs(t, err, crypto.ErrNoKey)
	err = vault.SavePassword(ctx, "site", "e", "p")
	assert.ErrorIs(t, err, crypto.ErrNoKey)

	auth.Lock() // idempotent
}

func TestAuthService_Unlock_UpgradesLegacyConfig(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	legacy := `{"master_password": "` + legacyHash + `", "window": {"width": 800}}`
	require.NoError(t, os.WriteFile(env.cfg.MasterConfigPath, []byte(legacy), 0o600))

	auth, vault := env.services.AuthService, env.services.VaultService
	require.ErrorIs(t, auth.Unlock(ctx, "battery staple"), ErrAuth)
	require.NoError(t, auth.Unlock(ctx, "correct horse"))
	require.NoError(t, vault.SavePassword(ctx, "example.com", "user@example.com", "pw1"))
	auth.Lock()

	raw := readMasterConfigJSON(t, env.cfg.MasterConfigPath)
	assert.Contains(t, raw["master_password_hash"], "$argon2id$")
	assert.NotEmpty(t, raw["encryption_salt"])
	assert.NotEmpty(t, raw["encrypted_data_key"])
	assert.Equal(t, map[string]any{"width": float64(800)}, raw["window"])

	// a new process unlocks with the same passphrase and reads the same data
	reopened := env.reopen(t)
	require.NoError(t, reopened.AuthService.Unlock(ctx, "correct horse"))
	creds, err := reopened.VaultService.SearchPassword(ctx, "example.com")
	require.NoError(t, err)
	assert.Equal(t, []models.Credential{{Email: "user@example.com", Password: "pw1"}}, creds)
}

// ── Rotate ───────────────────────────────────────────────────────────────────

func TestAuthService_Rotate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	auth, vault := env.services.AuthService, env.services.VaultService

	require.NoError(t, auth.Initialize(ctx, "old-pass"))
	require.NoError(t, auth.Unlock(ctx, "old-pass"))
	require.NoError(t, vault.SavePassword(ctx, "example.com", "a@x.com", "secret"))
	vaultBefore, err := os.ReadFile(env.cfg.VaultPath)
	require.NoError(t, err)

	require.NoError(t, auth.Rotate(ctx, "old-pass", "new-pass"))

	assert.False(t, auth.Verify(ctx, "old-pass"))
	assert.True(t, auth.Verify(ctx, "new-pass"))

	// the active session keeps working
	creds, err := vault.SearchPassword(ctx, "example.com")
	require.NoError(t, err)
	assert.Equal(t, "secret", creds[0].Password)

	// vault ciphertext is untouched
	vaultAfter, err := os.ReadFile(env.cfg.VaultPath)
	require.NoError(t, err)
	assert.Equal(t, vaultBefore, vaultAfter)

	reopened := env.reopen(t)
	assert.ErrorIs(t, reopened.AuthService.Unlock(ctx, "old-pass"), ErrAuth)
	require.NoError(t, reopened.AuthService.Unlock(ctx, "new-pass"))
	creds, err = reopened.VaultService.SearchPassword(ctx, "example.com")
	require.NoError(t, err)
	assert.Equal(t, []models.Credential{{Email: "a@x.com", Password: "secret"}}, creds)
}

func TestAuthService_Rotate_WrongCurrent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.services.AuthService.Initialize(ctx, "pw"))
	before, err := os.ReadFile(env.cfg.MasterConfigPath)
	require.NoError(t, err)

	err = env.services.AuthService.Rotate(ctx, "not-pw", "new")
	assert.ErrorIs(t, err, ErrAuth)

	after, err := os.ReadFile(env.cfg.MasterConfigPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAuthService_Rotate_EmptyNew(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.services.AuthService.Initialize(ctx, "pw"))

	err := env.services.AuthService.Rotate(ctx, "pw", "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.True(t, env.services.AuthService.Verify(ctx, "pw"))
}

func TestAuthService_Rotate_NotInitialized(t *testing.T) {
	env := newTestEnv(t)

	err := env.services.AuthService.Rotate(context.Background(), "a", "b")
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestAuthService_Rotate_PersistFailureKeepsOldPassphrase(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMockedAuthSvc(t, ctrl)
	ctx := context.Background()

	stored := models.MasterConfig{MasterPasswordHash: "h"}
	m.masterConfig.EXPECT().Load(ctx).Return(stored, nil)
	m.masterConfig.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func(*models.MasterConfig) error) error {
			cfg := stored
			if err := fn(&cfg); err != nil {
				return err
			}
			assert.Equal(t, "new-hash", cfg.MasterPasswordHash)
			return errors.Join(store.ErrStorage, errors.New("disk full"))
		},
	)
	m.hasher.EXPECT().Verify("old", "h").Return(true, nil)
	m.keyChain.EXPECT().GenerateDEK().Return(make([]byte, 32), nil)
	m.hasher.EXPECT().Hash("new").Return("new-hash", nil)
	m.keyChain.EXPECT().GenerateEncryptionSalt().Return([]byte("salt"), nil)
	m.keyChain.EXPECT().GenerateKEK("new", []byte("salt")).Return([]byte("kek"))
	m.keyChain.EXPECT().WrapDEK(gomock.Any(), []byte("kek")).Return([]byte("wrapped"), nil)

	err := m.svc.Rotate(ctx, "old", "new")
	assert.ErrorIs(t, err, store.ErrStorage)
}
