package auth

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestKeyringStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	store := NewKeyringStore("")

	if err := store.SetToken(" Sheet-APIKey ", "k-123"); err != nil {
		t.Fatalf("SetToken error: %v", err)
	}

	got, err := store.GetToken("sheet-apikey")
	if err != nil {
		t.Fatalf("GetToken error: %v", err)
	}
	if got != "k-123" {
		t.Errorf("GetToken = %q, want %q", got, "k-123")
	}

	if err := store.DeleteToken("sheet-apikey"); err != nil {
		t.Fatalf("DeleteToken error: %v", err)
	}
	if _, err := store.GetToken("sheet-apikey"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound after delete, got %v", err)
	}
}

func TestKeyringStore_DeleteMissing(t *testing.T) {
	keyring.MockInit()
	store := NewKeyringStore(ServiceName)

	if err := store.DeleteToken("never-set"); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestMockStore_NormalizesKeys(t *testing.T) {
	store := NewMockStore()
	_ = store.SetToken("SHEET-APIKEY", "v")

	if got, err := store.GetToken("sheet-apikey"); err != nil || got != "v" {
		t.Errorf("GetToken = (%q, %v), want (%q, nil)", got, err, "v")
	}
}

func TestLookupCredentials(t *testing.T) {
	creds := LookupCredentials("Sheet")
	if len(creds) != 1 {
		t.Fatalf("expected 1 credential for sheet, got %d", len(creds))
	}
	if creds[0].Key != "sheet-apikey" {
		t.Errorf("Key = %q, want %q", creds[0].Key, "sheet-apikey")
	}
	if len(LookupCredentials("unknown")) != 0 {
		t.Error("expected no credentials for unknown provider")
	}
}

type failingStore struct{ MockStore }

func (*failingStore) GetToken(string) (string, error) { return "", errors.New("keychain locked") }

func TestCheckCredentials(t *testing.T) {
	store := NewMockStore()

	got := CheckCredentials(store)
	if len(got) != len(AllCredentials()) {
		t.Fatalf("CheckCredentials returned %d entries, want %d", len(got), len(AllCredentials()))
	}
	if got[0].Stored {
		t.Errorf("expected %s to be missing before login", got[0].Key)
	}
	if desc := got[0].Describe(); desc != "not stored (optional)" {
		t.Errorf("Describe() = %q, want %q", desc, "not stored (optional)")
	}

	if err := store.SetToken(got[0].Key, "k-1"); err != nil {
		t.Fatalf("SetToken error: %v", err)
	}
	got = CheckCredentials(store)
	if !got[0].Stored || got[0].Describe() != "stored" {
		t.Errorf("after SetToken: Stored=%v Describe=%q", got[0].Stored, got[0].Describe())
	}
}

func TestCheckCredentials_StoreError(t *testing.T) {
	got := CheckCredentials(&failingStore{})
	if got[0].Err == nil {
		t.Fatal("expected store error to be reported")
	}
	if desc := got[0].Describe(); desc != "error: keychain locked" {
		t.Errorf("Describe() = %q", desc)
	}
}
