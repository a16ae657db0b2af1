package schema

import (
	"path/filepath"
	"strings"
)

// Origin identifies where a definition came from so decode errors and logs
// can name it without leaking storage details.
type Origin interface {
	Kind() OriginKind
	Location() string
}

// OriginKind enumerates the definition stores.
type OriginKind string

const (
	OriginKindFile   OriginKind = "file"
	OriginKindFS     OriginKind = "fs"
	OriginKindSQL    OriginKind = "sql"
	OriginKindRedis  OriginKind = "redis"
	OriginKindInline OriginKind = "inline"
)

type origin struct {
	kind     OriginKind
	location string
}

func (o origin) Kind() OriginKind { return o.kind }
func (o origin) Location() string { return o.location }

// OriginFromFile returns an Origin pointing to a file path.
func OriginFromFile(path string) Origin {
	return origin{kind: OriginKindFile, location: filepath.Clean(path)}
}

// OriginFromFS returns an Origin identifying an entry inside an fs.FS.
func OriginFromFS(name string) Origin {
	return origin{kind: OriginKindFS, location: name}
}

// OriginFromSQL identifies a row of the definitions table.
func OriginFromSQL(table, id string) Origin {
	return origin{kind: OriginKindSQL, location: table + "/" + id}
}

// OriginFromRedis identifies a field of the definitions hash.
func OriginFromRedis(key, field string) Origin {
	return origin{kind: OriginKindRedis, location: key + "#" + field}
}

// OriginInline identifies definitions supplied in code or by a handler.
func OriginInline(label string) Origin {
	label = strings.TrimSpace(label)
	if label == "" {
		label = "inline"
	}
	return origin{kind: OriginKindInline, location: label}
}
