package identity_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"veil/internal/crypto"
	"veil/internal/domain"
	"veil/internal/relay"
	"veil/internal/relayserver"
	identitysvc "veil/internal/services/identity"
	"veil/internal/store"
)

const pass = "Sturdy-Passphrase-99!"

func newService(t *testing.T) (*identitysvc.Service, *relay.HTTPClient) {
	t.Helper()
	memStore := relayserver.NewMemoryStore(time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(relayserver.New(memStore, log, relayserver.Options{
		Registry: prometheus.NewRegistry(),
	}))
	t.Cleanup(srv.Close)

	rc := relay.NewHTTP(srv.URL, srv.Client())
	return identitysvc.New(store.NewIdentityFileStore(t.TempDir()), rc), rc
}

func TestGenerate_WeakPassphraseRejected(t *testing.T) {
	svc, _ := newService(t)
	for _, weak := range []string{"", "short", "alllowercasebutlong", "NoSymbols123"} {
		if _, err := svc.Generate(context.Background(), weak); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("Generate(%q): want ErrValidation, got %v", weak, err)
		}
	}
}

func TestGenerate_PersistsAndPublishes(t *testing.T) {
	ctx := context.Background()
	svc, rc := newService(t)

	id, err := svc.Generate(ctx, pass)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if id.Alias != crypto.DeriveAlias(id.SigningPub) {
		t.Fatal("alias is not derived from the signing key")
	}

	loaded, err := svc.Load(pass)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.SigningPriv != id.SigningPriv || loaded.EncryptionPriv != id.EncryptionPriv {
		t.Fatal("loaded identity differs from generated one")
	}

	published, err := rc.FetchIdentity(ctx, id.Alias)
	if err != nil {
		t.Fatalf("FetchIdentity: %v", err)
	}
	if published.EncryptionPub != id.EncryptionPub {
		t.Fatal("published record carries the wrong encryption key")
	}
	if len(published.Signature) == 0 {
		t.Fatal("published record is unsigned")
	}
}

func TestRotate_ReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	first, err := svc.Generate(ctx, pass)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := svc.Rotate(ctx, "Wrong-Passphrase-1!"); !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("rotate with wrong passphrase: want ErrAuthenticationFailed, got %v", err)
	}

	second, err := svc.Rotate(ctx, pass)
	if err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	if second.Alias == first.Alias || second.SigningPub == first.SigningPub {
		t.Fatal("rotation must replace the identity, not keep it")
	}
}

func TestBackupMnemonic_StableTwelveWords(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	if _, err := svc.Generate(ctx, pass); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	words, err := svc.BackupMnemonic(pass)
	if err != nil {
		t.Fatalf("BackupMnemonic: %v", err)
	}
	if len(words) != 12 {
		t.Fatalf("got %d words, want 12", len(words))
	}
	again, err := svc.BackupMnemonic(pass)
	if err != nil {
		t.Fatalf("BackupMnemonic: %v", err)
	}
	if !reflect.DeepEqual(words, again) {
		t.Fatal("backup phrase changed between calls")
	}

	if _, err := svc.BackupMnemonic("Wrong-Passphrase-1!"); !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("want ErrAuthenticationFailed, got %v", err)
	}
}

func TestRestoreFromMnemonic_DeterministicReplacement(t *testing.T) {
	ctx := context.Background()
	svcA, _ := newService(t)
	svcB, _ := newService(t)

	original, err := svcA.Generate(ctx, pass)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	words, err := svcA.BackupMnemonic(pass)
	if err != nil {
		t.Fatalf("BackupMnemonic: %v", err)
	}

	restoredA, err := svcA.RestoreFromMnemonic(ctx, words, pass)
	if err != nil {
		t.Fatalf("RestoreFromMnemonic: %v", err)
	}
	restoredB, err := svcB.RestoreFromMnemonic(ctx, words, pass)
	if err != nil {
		t.Fatalf("RestoreFromMnemonic: %v", err)
	}

	// Same phrase, same derived identity, on any device.
	if restoredA.Alias != restoredB.Alias || restoredA.SigningPub != restoredB.SigningPub {
		t.Fatal("restore is not deterministic in the phrase")
	}
	// But it is a replacement, not a recovery of the original.
	if restoredA.SigningPub == original.SigningPub {
		t.Fatal("restore unexpectedly reproduced the original identity")
	}

	bad := append(append([]string(nil), words[:11]...), "definitelynotaword")
	if _, err := svcA.RestoreFromMnemonic(ctx, bad, pass); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation for bad phrase, got %v", err)
	}
}

func TestShred_WipesLocalIdentity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	if _, err := svc.Generate(ctx, pass); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := svc.Shred(); err != nil {
		t.Fatalf("Shred: %v", err)
	}
	if _, ok, err := svc.Public(); err != nil || ok {
		t.Fatalf("identity should be gone after shred, ok=%v err=%v", ok, err)
	}
	if _, err := svc.Load(pass); !errors.Is(err, domain.ErrNoIdentity) {
		t.Fatalf("want ErrNoIdentity after shred, got %v", err)
	}
}
