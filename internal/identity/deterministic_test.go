package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestDefinitionUUIDIsStable(t *testing.T) {
	first := DefinitionUUID("block", "Card")
	second := DefinitionUUID(" BLOCK ", "card ")
	if first == uuid.Nil {
		t.Fatal("expected non-nil id")
	}
	if first != second {
		t.Fatalf("expected stable id, got %s and %s", first, second)
	}
}

func TestDefinitionUUIDSeparatesKinds(t *testing.T) {
	if DefinitionUUID("block", "card") == DefinitionUUID("widget", "card") {
		t.Fatal("expected kinds to produce distinct ids")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if UUID("  ") != uuid.Nil {
		t.Fatal("expected nil uuid for blank key")
	}
}
