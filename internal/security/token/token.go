// Package token emite y verifica los tokens de sesión del back-office.
//
// Formato: JWT HS256 estándar — tres segmentos base64url separados por punto
// (header.payload.firma), con la firma HMAC-SHA256 calculada sobre
// header+payload usando el secreto del servidor. El payload lleva la claim
// de identidad (configurable, default "empId") más iat/exp. El token es
// auto-contenido: no se guarda estado en el servidor y no hay revocación.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Errores del subsistema de tokens. Cada rechazo mapea a exactamente uno.
var (
	// ErrConfiguration: secreto vacío o TTL no positivo. Fatal al arranque.
	ErrConfiguration = stderrors.New("token: configuración inválida")
	// ErrMalformed: el token no tiene tres segmentos o faltan claims.
	ErrMalformed = stderrors.New("token: malformado")
	// ErrSignature: la firma no coincide (tampering o secreto incorrecto).
	ErrSignature = stderrors.New("token: firma inválida")
	// ErrExpired: el instante actual es igual o posterior a exp.
	ErrExpired = stderrors.New("token: expirado")
)

// Issuer emite tokens firmados para una identidad verificada.
// Es inmutable y seguro para uso concurrente.
type Issuer struct {
	secret   []byte
	ttl      time.Duration
	claimKey string
}

// NewIssuer valida la configuración y construye el emisor.
// Falla con ErrConfiguration si el secreto está vacío o el TTL no es positivo.
func NewIssuer(secret string, ttl time.Duration, claimKey string) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: secreto vacío", ErrConfiguration)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("%w: ttl debe ser positivo", ErrConfiguration)
	}
	if claimKey == "" {
		return nil, fmt.Errorf("%w: claim key vacía", ErrConfiguration)
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, claimKey: claimKey}, nil
}

// Issue emite un token para el empleado dado.
// Claims: {<claimKey>: id, iat: ahora, exp: ahora+ttl}. Dos llamadas en el
// mismo segundo para la misma identidad producen el mismo token: no se
// agrega aleatoriedad.
func (i *Issuer) Issue(employeeID int64) (string, error) {
	now := time.Now()
	claims := jwtv5.MapClaims{
		i.claimKey: employeeID,
		"iat":      now.Unix(),
		"exp":      now.Add(i.ttl).Unix(),
	}
	return jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(i.secret)
}

// TTL devuelve el tiempo de vida configurado.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Verifier valida tokens y extrae la identidad.
// Es inmutable y seguro para uso concurrente.
type Verifier struct {
	secret   []byte
	claimKey string
}

// NewVerifier construye el verificador con el mismo secreto del emisor.
func NewVerifier(secret string, claimKey string) (*Verifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: secreto vacío", ErrConfiguration)
	}
	if claimKey == "" {
		return nil, fmt.Errorf("%w: claim key vacía", ErrConfiguration)
	}
	return &Verifier{secret: []byte(secret), claimKey: claimKey}, nil
}

// Verify valida el token y devuelve el id del empleado.
//
// El orden de chequeo importa: primero se recalcula la firma HMAC sobre
// header+payload y se compara en tiempo constante. Así cualquier byte
// alterado del payload se reporta como ErrSignature, aunque el contenido
// ya no sea JSON parseable. Recién con la firma confirmada se parsean las
// claims y se evalúa la expiración.
func (v *Verifier) Verify(raw string) (int64, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: se esperaban 3 segmentos, hay %d", ErrMalformed, len(parts))
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return 0, fmt.Errorf("%w: firma no es base64url", ErrMalformed)
	}
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(parts[0] + "." + parts[1]))
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return 0, ErrSignature
	}

	claims := jwtv5.MapClaims{}
	_, err = jwtv5.ParseWithClaims(raw, claims, v.keyfunc,
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case stderrors.Is(err, jwtv5.ErrTokenExpired):
			return 0, ErrExpired
		case stderrors.Is(err, jwtv5.ErrTokenSignatureInvalid):
			return 0, ErrSignature
		default:
			// Con firma válida, cualquier otro fallo de parseo es malformación
			// (JSON inválido, exp ausente, claims con tipos incorrectos).
			return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	id, ok := claimInt64(claims, v.claimKey)
	if !ok {
		return 0, fmt.Errorf("%w: falta la claim %q", ErrMalformed, v.claimKey)
	}
	return id, nil
}

func (v *Verifier) keyfunc(_ *jwtv5.Token) (any, error) {
	return v.secret, nil
}

// claimInt64 extrae una claim numérica. JSON decodifica números a float64.
func claimInt64(claims jwtv5.MapClaims, key string) (int64, bool) {
	raw, ok := claims[key]
	if !ok {
		return 0, false
	}
	switch n := raw.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}
