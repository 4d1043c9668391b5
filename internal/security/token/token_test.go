package token_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dropDatabas3/comandas/internal/security/token"
	jwtv5 "github.com/golang-jwt/jwt/v5"
)

const (
	testSecret   = "unit-test-secret-key"
	testClaimKey = "empId"
)

func newPair(t *testing.T, ttl time.Duration) (*token.Issuer, *token.Verifier) {
	t.Helper()
	iss, err := token.NewIssuer(testSecret, ttl, testClaimKey)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	ver, err := token.NewVerifier(testSecret, testClaimKey)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	return iss, ver
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	iss, ver := newPair(t, 2*time.Hour)

	raw, err := iss.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if parts := strings.Split(raw, "."); len(parts) != 3 {
		t.Fatalf("token no tiene 3 segmentos: %q", raw)
	}

	id, err := ver.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id != 42 {
		t.Fatalf("id = %d, esperado 42", id)
	}
}

func TestNewIssuerConfigErrors(t *testing.T) {
	cases := []struct {
		name     string
		secret   string
		ttl      time.Duration
		claimKey string
	}{
		{"secreto vacío", "", time.Hour, "empId"},
		{"ttl cero", "s", 0, "empId"},
		{"ttl negativo", "s", -time.Minute, "empId"},
		{"claim key vacía", "s", time.Hour, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := token.NewIssuer(tc.secret, tc.ttl, tc.claimKey); !errors.Is(err, token.ErrConfiguration) {
				t.Fatalf("err = %v, esperado ErrConfiguration", err)
			}
		})
	}
}

func TestVerifyExpired(t *testing.T) {
	_, ver := newPair(t, time.Hour)

	// Token con firma válida pero exp en el pasado.
	now := time.Now()
	claims := jwtv5.MapClaims{
		testClaimKey: int64(7),
		"iat":        now.Add(-2 * time.Hour).Unix(),
		"exp":        now.Add(-time.Hour).Unix(),
	}
	raw, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("firmando token expirado: %v", err)
	}

	if _, err := ver.Verify(raw); !errors.Is(err, token.ErrExpired) {
		t.Fatalf("err = %v, esperado ErrExpired", err)
	}
}

func TestVerifyTamperedPayload(t *testing.T) {
	iss, ver := newPair(t, time.Hour)

	raw, err := iss.Issue(1)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	parts := strings.Split(raw, ".")

	// Alterar un solo caracter del payload en distintas posiciones debe
	// reportarse siempre como firma inválida, nunca como malformación.
	for _, pos := range []int{0, len(parts[1]) / 2, len(parts[1]) - 1} {
		payload := []byte(parts[1])
		if payload[pos] == 'A' {
			payload[pos] = 'B'
		} else {
			payload[pos] = 'A'
		}
		tampered := parts[0] + "." + string(payload) + "." + parts[2]

		if _, err := ver.Verify(tampered); !errors.Is(err, token.ErrSignature) {
			t.Fatalf("pos %d: err = %v, esperado ErrSignature", pos, err)
		}
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	iss, _ := newPair(t, time.Hour)

	other, err := token.NewVerifier("otro-secreto", testClaimKey)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}

	raw, err := iss.Issue(5)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := other.Verify(raw); !errors.Is(err, token.ErrSignature) {
		t.Fatalf("err = %v, esperado ErrSignature", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	_, ver := newPair(t, time.Hour)

	for _, raw := range []string{"", "abc", "a.b", "a.b.c.d"} {
		if _, err := ver.Verify(raw); !errors.Is(err, token.ErrMalformed) {
			t.Fatalf("%q: err = %v, esperado ErrMalformed", raw, err)
		}
	}
}

func TestVerifyMissingIdentityClaim(t *testing.T) {
	_, ver := newPair(t, time.Hour)

	// Token válido pero sin la claim de identidad.
	now := time.Now()
	claims := jwtv5.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
	raw, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("firmando: %v", err)
	}
	if _, err := ver.Verify(raw); !errors.Is(err, token.ErrMalformed) {
		t.Fatalf("err = %v, esperado ErrMalformed", err)
	}
}

func TestVerifyRejectsUnsignedAlg(t *testing.T) {
	_, ver := newPair(t, time.Hour)

	// alg=none no lleva firma HMAC: el chequeo de firma debe rechazarlo.
	now := time.Now()
	claims := jwtv5.MapClaims{
		testClaimKey: int64(9),
		"iat":        now.Unix(),
		"exp":        now.Add(time.Hour).Unix(),
	}
	raw, err := jwtv5.NewWithClaims(jwtv5.SigningMethodNone, claims).SignedString(jwtv5.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("firmando alg=none: %v", err)
	}
	if _, err := ver.Verify(raw); !errors.Is(err, token.ErrSignature) {
		t.Fatalf("err = %v, esperado ErrSignature", err)
	}
}
