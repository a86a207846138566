// Package actiontoken firma y verifica los tokens de los enlaces de aprobación.
//
// token = hex(truncar(HMAC-SHA256(secret, companyID + ":" + action), DigestBytes))
//
// El token es una función pura de (secret, companyID, action): no hay tabla de tokens,
// ni expiración, ni nonce. Un enlace se puede regenerar en el servidor sin almacenamiento.
// Si algún día hace falta expiración, el timestamp debe ir dentro del payload firmado.
package actiontoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/jhoicas/Recetario-api/internal/domain/entity"
)

// DigestBytes bytes del HMAC que se conservan (128 bits).
const DigestBytes = 16

// MinSecretBytes longitud mínima aceptada para el secreto de firma.
const MinSecretBytes = 16

// ErrWeakSecret el secreto de firma falta o es demasiado corto.
var ErrWeakSecret = errors.New("actiontoken: secret vacío o menor a 16 bytes")

// Authority firma y verifica tokens de acción con un secreto del servidor.
type Authority struct {
	secret []byte
}

// New construye la autoridad. El secreto se copia.
func New(secret []byte) (*Authority, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrWeakSecret
	}
	s := make([]byte, len(secret))
	copy(s, secret)
	return &Authority{secret: s}, nil
}

// Sign devuelve el token para (companyID, action). Acciones desconocidas devuelven "".
func (a *Authority) Sign(companyID string, action entity.Action) string {
	if !known(action) {
		return ""
	}
	return hex.EncodeToString(a.mac(companyID, action))
}

// Verify recalcula el token y lo compara en tiempo constante.
func (a *Authority) Verify(companyID string, action entity.Action, token string) bool {
	if !known(action) || len(token) != DigestBytes*2 {
		return false
	}
	got, err := hex.DecodeString(strings.ToLower(token))
	if err != nil {
		return false
	}
	return hmac.Equal(got, a.mac(companyID, action))
}

func (a *Authority) mac(companyID string, action entity.Action) []byte {
	h := hmac.New(sha256.New, a.secret)
	h.Write([]byte(companyID + ":" + string(action)))
	return h.Sum(nil)[:DigestBytes]
}

func known(action entity.Action) bool {
	return action == entity.ActionApprove || action == entity.ActionReject
}
