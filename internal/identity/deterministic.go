package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by kind so blocks and widgets never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// DefinitionUUID identifies a stored block or widget definition.
func DefinitionUUID(kind, module string) uuid.UUID {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = "block"
	}
	return UUID("blockgen:" + kind + ":" + strings.ToLower(strings.TrimSpace(module)))
}

// RenderUUID tags a single render call in log output.
func RenderUUID() uuid.UUID {
	return uuid.New()
}
