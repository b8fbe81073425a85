// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/MKhiriev/go-pass-vault/internal/crypto"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/mock"
	"github.com/MKhiriev/go-pass-vault/internal/store"
	"github.com/MKhiriev/go-pass-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMockedVaultSvc(t *testing.T, ctrl *gomock.Controller) (VaultService, *mock.MockVaultStore, *mock.MockCipherService) {
	t.Helper()
	vault := mock.NewMockVaultStore(ctrl)
	cipher := mock.NewMockCipherService(ctrl)
	svc := NewVaultValidationService().Wrap(NewVaultService(vault, cipher, NewPasswordGenerator(), logger.Nop()))
	return svc, vault, cipher
}

func unlockedEnv(t *testing.T) testEnv {
	t.Helper()
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.services.AuthService.Initialize(ctx, "master"))
	require.NoError(t, env.services.AuthService.Unlock(ctx, "master"))
	return env
}

// ── concrete scenario ────────────────────────────────────────────────────────

func TestVaultService_ExampleScenario(t *testing.T) {
	env := unlockedEnv(t)
	ctx := context.Background()
	vault := env.services.VaultService

	require.NoError(t, vault.SavePassword(ctx, "example.com", "a@x.com", "p1"))
	require.NoError(t, vault.SavePassword(ctx, "example.com", "b@x.com", "p2"))

	creds, err := vault.SearchPassword(ctx, "example.com")
	require.NoError(t, err)
	assert.Equal(t, []models.Credential{
		{Email: "a@x.com", Password: "p1"},
		{Email: "b@x.com", Password: "p2"},
	}, creds)

	// nothing in the vault file is plaintext
	data, err := os.ReadFile(env.cfg.VaultPath)
	require.NoError(t, err)
	for _, secret := range []string{"a@x.com", "b@x.com", "p1", "p2"} {
		assert.NotContains(t, string(data), `"`+secret+`"`)
	}
	var onDisk map[string][]models.CredentialRecord
	require.NoError(t, json.Unmarshal(data, &onDisk))
	require.Len(t, onDisk["example.com"], 2)
	assert.NotEqual(t, onDisk["example.com"][0].Email, onDisk["example.com"][1].Email)

	removed, err := vault.DeletePassword(ctx, "example.com")
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = vault.SearchPassword(ctx, "example.com")
	assert.ErrorIs(t, err, ErrSiteNotFound)

	removed, err = vault.DeletePassword(ctx, "example.com")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestVaultService_DuplicatesAndOrder(t *testing.T) {
	env := unlockedEnv(t)
	ctx := context.Background()
	vault := env.services.VaultService

	for _, pw := range []string{"one", "two", "one"} {
		require.NoError(t, vault.SavePassword(ctx, "site", "same@x.com", pw))
	}

	creds, err := vault.SearchPassword(ctx, "site")
	require.NoError(t, err)
	require.Len(t, creds, 3)
	assert.Equal(t, "one", creds[0].Password)
	assert.Equal(t, "two", creds[1].Password)
	assert.Equal(t, "one", creds[2].Password)
}

func TestVaultService_TrimsInput(t *testing.T) {
	env := unlockedEnv(t)
	ctx := context.Background()
	vault := env.services.VaultService

	require.NoError(t, vault.SavePassword(ctx, "  example.com ", " a@x.com\t", " pw "))

	creds, err := vault.SearchPassword(ctx, "example.com")
	require.NoError(t, err)
	assert.Equal(t, []models.Credential{{Email: "a@x.com", Password: "pw"}}, creds)

	sites, err := vault.ListSites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com"}, sites)
}

func TestVaultService_ListSites(t *testing.T) {
	env := unlockedEnv(t)
	ctx := context.Background()
	vault := env.services.VaultService

	sites, err := vault.ListSites(ctx)
	require.NoError(t, err)
	assert.Empty(t, sites)

	require.NoError(t, vault.SavePassword(ctx, "b.com", "e", "p"))
	require.NoError(t, vault.SavePassword(ctx, "a.com", "e", "p"))

	sites, err = vault.ListSites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.com", "b.com"}, sites)
}

func TestVaultService_TamperedRecordFailsWholeSearch(t *testing.T) {
	env := unlockedEnv(t)
	ctx := context.Background()
	vault := env.services.VaultService

	require.NoError(t, vault.SavePassword(ctx, "site", "a@x.com", "p1"))
	require.NoError(t, vault.SavePassword(ctx, "site", "b@x.com", "p2"))

	data, err := os.ReadFile(env.cfg.VaultPath)
	require.NoError(t, err)
	var onDisk map[string][]models.CredentialRecord
	require.NoError(t, json.Unmarshal(data, &onDisk))
	pw := []byte(onDisk["site"][1].Password)
	if pw[5] == 'A' {
		pw[5] = 'B'
	} else {
		pw[5] = 'A'
	}
	onDisk["site"][1].Password = string(pw)
	data, err = json.Marshal(onDisk)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(env.cfg.VaultPath, data, 0o600))

	creds, err := vault.SearchPassword(ctx, "site")
	assert.Nil(t, creds)
	assert.ErrorIs(t, err, crypto.ErrDecryption)
	assert.False(t, errors.Is(err, ErrSiteNotFound))
}

func TestVaultService_CiphertextFromAnotherVault(t *testing.T) {
	first := unlockedEnv(t)
	second := unlockedEnv(t)
	ctx := context.Background()

	require.NoError(t, first.services.VaultService.SavePassword(ctx, "site", "e", "p"))
	data, err := os.ReadFile(first.cfg.VaultPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(second.cfg.VaultPath, data, 0o600))

	_, err = second.services.VaultService.SearchPassword(ctx, "site")
	assert.ErrorIs(t, err, crypto.ErrDecryption)
}

// ── validation ───────────────────────────────────────────────────────────────

func TestVaultService_SavePassword_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vault, cipher := newMockedVaultSvc(t, ctrl)
	ctx := context.Background()

	vault.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	cipher.EXPECT().Encrypt(gomock.Any()).Times(0)

	for _, in := range [][3]string{
		{"", "e", "p"},
		{"s", "", "p"},
		{"s", "e", ""},
		{" ", "e", "p"},
		{"s", "\t", "p"},
		{"s", "e", "  "},
	} {
		err := svc.SavePassword(ctx, in[0], in[1], in[2])
		assert.ErrorIsf(t, err, ErrValidation, "input %q", in)
	}
}

func TestVaultService_SearchAndDelete_EmptySite(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newMockedVaultSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.SearchPassword(ctx, "  ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.DeletePassword(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)
}

// ── mocked collaborators ─────────────────────────────────────────────────────

func TestVaultService_SavePassword_EncryptsFieldsIndependently(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vault, cipher := newMockedVaultSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		cipher.EXPECT().Encrypt("a@x.com").Return("ct-email", nil),
		cipher.EXPECT().Encrypt("p1").Return("ct-pass", nil),
		vault.EXPECT().Save(ctx, "example.com", models.CredentialRecord{Email: "ct-email", Password: "ct-pass"}).Return(nil),
	)

	require.NoError(t, svc.SavePassword(ctx, "example.com", "a@x.com", "p1"))
}

func TestVaultService_SavePassword_EncryptFailureWritesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vault, cipher := newMockedVaultSvc(t, ctrl)
	ctx := context.Background()

	cipher.EXPECT().Encrypt("a@x.com").Return("ct-email", nil)
	cipher.EXPECT().Encrypt("p1").Return("", crypto.ErrNoKey)
	vault.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	err := svc.SavePassword(ctx, "example.com", "a@x.com", "p1")
	assert.ErrorIs(t, err, crypto.ErrNoKey)
}

func TestVaultService_SavePassword_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vault, cipher := newMockedVaultSvc(t, ctrl)
	ctx := context.Background()

	cipher.EXPECT().Encrypt(gomock.Any()).Return("ct", nil).Times(2)
	vault.EXPECT().Save(ctx, "site", gomock.Any()).Return(store.ErrStorage)

	err := svc.SavePassword(ctx, "site", "e", "p")
	assert.ErrorIs(t, err, store.ErrStorage)
}

func TestVaultService_SearchPassword_Locked(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vault, cipher := newMockedVaultSvc(t, ctrl)

	cipher.EXPECT().Unlocked().Return(false)
	vault.EXPECT().Load(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.SearchPassword(context.Background(), "site")
	assert.ErrorIs(t, err, crypto.ErrNoKey)
}

func TestVaultService_SearchPassword_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vault, cipher := newMockedVaultSvc(t, ctrl)
	ctx := context.Background()

	cipher.EXPECT().Unlocked().Return(true)
	vault.EXPECT().Load(ctx, "site").Return(nil, false, store.ErrStorage)

	_, err := svc.SearchPassword(ctx, "site")
	assert.ErrorIs(t, err, store.ErrStorage)
	assert.False(t, errors.Is(err, ErrSiteNotFound))
}

func TestVaultService_DeletePassword_Delegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, vault, cipher := newMockedVaultSvc(t, ctrl)
	ctx := context.Background()

	cipher.EXPECT().Unlocked().Return(true).Times(2)
	vault.EXPECT().Delete(ctx, "gone.com").Return(true, nil)
	vault.EXPECT().Delete(ctx, "never.com").Return(false, nil)

	removed, err := svc.DeletePassword(ctx, "gone.com")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.DeletePassword(ctx, "never.com")
	require.NoError(t, err)
	assert.False(t, removed)
}

// ── GeneratePassword ─────────────────────────────────────────────────────────

func TestVaultService_GeneratePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newMockedVaultSvc(t, ctrl)

	pw, err := svc.GeneratePassword(20)
	require.NoError(t, err)
	assert.Len(t, pw, 20)

	_, err = svc.GeneratePassword(0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestVaultService_GeneratePassword_DelegatesToGenerator(t *testing.T) {
	ctrl := gomock.NewController(t)
	generator := mock.NewMockPasswordGenerator(ctrl)
	svc := NewVaultService(mock.NewMockVaultStore(ctrl), mock.NewMockCipherService(ctrl), generator, logger.Nop())

	generator.EXPECT().Generate(16).Return(strings.Repeat("x", 16), nil)

	pw, err := svc.GeneratePassword(16)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 16), pw)
}
