package project

import (
	"testing"
)

func TestStarter_ProducesValidConfigs(t *testing.T) {
	for _, typ := range ValidTypes {
		t.Run(typ, func(t *testing.T) {
			cfg, err := Starter("new-service", typ)
			if err != nil {
				t.Fatalf("Starter() error: %v", err)
			}
			if _, err := Validate(cfg, Options{ToolVersion: "dev", SkipPathChecks: true}); err != nil {
				t.Errorf("starter config fails validation: %v", err)
			}
		})
	}
}

func TestStarter_UnknownType(t *testing.T) {
	if _, err := Starter("x", "rails-app"); err == nil {
		t.Fatal("expected error for unknown type, got nil")
	}
}

func TestStarter_RoundTrip(t *testing.T) {
	cfg, err := Starter("new-service", TypeNodejsServer)
	if err != nil {
		t.Fatalf("Starter() error: %v", err)
	}
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	parsed, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() of marshaled starter: %v", err)
	}
	if _, err := Validate(parsed, Options{ToolVersion: "dev", SkipPathChecks: true}); err != nil {
		t.Errorf("round-tripped starter config fails validation: %v", err)
	}
}
