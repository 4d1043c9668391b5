// Package password hashea y verifica contraseñas con bcrypt.
//
// La contraseña nunca se guarda ni se compara en texto plano: el store
// solo ve el digest. bcrypt lleva salt y factor de costo embebidos en el
// propio hash, así que Verify no necesita parámetros externos.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost default de bcrypt. 12 es un balance razonable en 2024+ para un
// back-office de baja concurrencia de logins.
const DefaultCost = 12

// Hash devuelve el digest bcrypt de la contraseña.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara la contraseña en claro contra el digest almacenado.
// Misma entrada produce siempre el mismo resultado pass/fail.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
