package utils

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateUUIDv7(t *testing.T) {
	id := GenerateUUIDv7()
	if id.Version() != 7 {
		t.Fatalf("expected v7 uuid, got v%d", id.Version())
	}
}

func TestGenerateUUIDv7_FallbackBranch(t *testing.T) {
	orig := newUUIDv7
	t.Cleanup(func() { newUUIDv7 = orig })

	newUUIDv7 = func() (uuid.UUID, error) {
		return uuid.Nil, errors.New("v7 failed")
	}
	id := GenerateUUIDv7()
	if id == uuid.Nil {
		t.Fatal("expected v4 fallback id when v7 fails")
	}
}

func TestParseUUIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ids, ok := ParseUUIDs([]string{a.String(), b.String()})
	if !ok || len(ids) != 2 || ids[0] != a || ids[1] != b {
		t.Fatalf("unexpected parse result: %v %v", ids, ok)
	}

	if _, ok := ParseUUIDs([]string{a.String(), "nope"}); ok {
		t.Fatal("expected invalid uuid to fail")
	}
}
