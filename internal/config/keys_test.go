package config

import (
	"strings"
	"testing"
)

func TestLookup_Exists(t *testing.T) {
	spec := Lookup("api-base-url")
	if spec == nil {
		t.Fatal("expected to find key 'api-base-url', got nil")
	}
	if spec.Name != "api-base-url" {
		t.Errorf("expected Name %q, got %q", "api-base-url", spec.Name)
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	spec := Lookup("API-BASE-URL")
	if spec == nil {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
	if spec.Name != "api-base-url" {
		t.Errorf("expected Name %q, got %q", "api-base-url", spec.Name)
	}
}

func TestLookup_NotFound(t *testing.T) {
	spec := Lookup("nonexistent-key")
	if spec != nil {
		t.Errorf("expected nil for unknown key, got %+v", spec)
	}
}

func TestKeys_AllHaveGetAndSet(t *testing.T) {
	for _, k := range Keys {
		if k.Get == nil {
			t.Errorf("key %q has nil Get function", k.Name)
		}
		if k.Set == nil {
			t.Errorf("key %q has nil Set function", k.Name)
		}
		if k.Description == "" {
			t.Errorf("key %q has empty Description", k.Name)
		}
	}
}

func TestKeys_GetSetRoundtrip(t *testing.T) {
	for _, k := range Keys {
		cfg := &Config{}
		k.Set(cfg, "test-value")
		got := k.Get(cfg)
		if got != "test-value" {
			t.Errorf("key %q: Set then Get = %q, want %q", k.Name, got, "test-value")
		}
	}
}

func TestKeyNames(t *testing.T) {
	names := KeyNames()
	if len(names) != len(Keys) {
		t.Fatalf("expected %d names, got %d", len(Keys), len(names))
	}
	for i, name := range names {
		if name != Keys[i].Name {
			t.Errorf("index %d: expected %q, got %q", i, Keys[i].Name, name)
		}
	}
}

func TestKeysHelp_ContainsAllKeys(t *testing.T) {
	help := KeysHelp()
	if !strings.Contains(help, "Available keys:") {
		t.Error("expected 'Available keys:' header in help output")
	}
	for _, k := range Keys {
		if !strings.Contains(help, k.Name) {
			t.Errorf("expected key %q in help output", k.Name)
		}
		if !strings.Contains(help, k.Description) {
			t.Errorf("expected description %q in help output", k.Description)
		}
	}
}

func TestKeySpec_Apply(t *testing.T) {
	tests := []struct {
		key     string
		input   string
		want    string
		wantErr bool
	}{
		{"api-base-url", " https://sheets.example.test/ ", "https://sheets.example.test", false},
		{"api-base-url", "ftp://sheets.example.test", "", true},
		{"api-base-url", "https://", "", true},
		{"api-base-url", "https://x.test/?a=1", "", true},
		{"api-base-url", "", "", false},
		{"webhook-base-url", "http://localhost:5678/", "http://localhost:5678", false},
		{"default-provider", "SHEET", "sheet", false},
		{"default-role", " Manager ", "Manager", false},
	}
	for _, tt := range tests {
		t.Run(tt.key+"/"+tt.input, func(t *testing.T) {
			cfg := &Config{}
			spec := Lookup(tt.key)
			got, err := spec.Apply(cfg, tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Apply(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want || spec.Get(cfg) != tt.want {
				t.Errorf("Apply(%q) = %q (stored %q), want %q", tt.input, got, spec.Get(cfg), tt.want)
			}
		})
	}
}
