package id

import (
	"github.com/gofrs/uuid"
)

// UUIDByName new uuid string derived from a namespace uuid and a name.
// Deterministic: the same inputs always map to the same uuid.
func UUIDByName(uuidStr, name string) string {
	ns, e := uuid.FromString(uuidStr)
	if e != nil {
		panic(e)
	}

	return uuid.NewV5(ns, name).String()
}
