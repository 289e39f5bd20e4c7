package creds

import (
	"errors"
	"testing"
)

func TestCredentialValidate(t *testing.T) {
	tests := []struct {
		name    string
		cred    Credential
		wantErr bool
	}{
		{"v2c ok", Credential{Name: "a", Version: "2c", Community: "public"}, false},
		{"v1 missing community", Credential{Name: "a", Version: "1"}, true},
		{"v3 ok", Credential{Name: "a", Version: "3", Username: "u", AuthProto: "SHA", AuthPass: "p"}, false},
		{"v3 missing user", Credential{Name: "a", Version: "3"}, true},
		{"v3 priv without auth", Credential{Name: "a", Version: "3", Username: "u", PrivProto: "AES"}, true},
		{"unknown version", Credential{Name: "a", Version: "4", Community: "x"}, true},
		{"no name", Credential{Version: "2c", Community: "x"}, true},
	}
	for _, tt := range tests {
		err := tt.cred.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestStaticProvider(t *testing.T) {
	s, err := NewStatic(
		Credential{Name: "b", Version: "2c", Community: "x"},
		Credential{Name: "a", Version: "3", Username: "user", AuthProto: "SHA", AuthPass: "p"},
	)
	if err != nil {
		t.Fatalf("NewStatic() error: %v", err)
	}

	list, _ := s.List()
	if len(list) != 2 || list[0].Name != "a" || list[1].Name != "b" {
		t.Errorf("expected sorted summaries [a b], got %+v", list)
	}

	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.Update("b", Credential{Name: "a", Version: "2c", Community: "y"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("rename onto existing name should fail with ErrDuplicate, got %v", err)
	}
}

func TestNewStaticRejectsInvalid(t *testing.T) {
	if _, err := NewStatic(Credential{Name: "bad", Version: "9"}); err == nil {
		t.Error("expected error for invalid credential")
	}
}
