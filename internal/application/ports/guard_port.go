package ports

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SubmissionGuard evita que dos envíos con la misma clave se procesen a la vez.
// Acquire devuelve domain.ErrSubmissionPending si la clave ya está tomada; el caller
// debe invocar release al terminar (haya o no error).
type SubmissionGuard interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// SubmissionKey arma la clave de bloqueo: lock:<operación>:<usuario>:<clave del cliente>.
func SubmissionKey(op, userID, key string) string {
	return "lock:" + op + ":" + userID + ":" + key
}

// RequestFingerprint huella del contenido de un envío; se guarda junto a la clave para
// detectar una clave reutilizada con otro contenido.
func RequestFingerprint(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}
