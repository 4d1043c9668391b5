// Package helpers agrupa utilidades compartidas por los controllers HTTP.
package helpers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// maxBodyBytes limita el tamaño del body aceptado en requests JSON.
const maxBodyBytes = 1 << 20 // 1 MiB

// ReadJSON decodifica el body del request en dst.
// Rechaza bodies vacíos, demasiado grandes o con JSON extra al final.
func ReadJSON(r *http.Request, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt := strings.TrimSpace(strings.Split(ct, ";")[0])
		if !strings.EqualFold(mt, "application/json") {
			return errors.New("content-type debe ser application/json")
		}
	}

	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("body vacío")
		}
		return err
	}
	// Un solo documento JSON por request.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body con contenido extra")
	}
	return nil
}

// WriteJSON serializa v como respuesta con el status indicado.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
