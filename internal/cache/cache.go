// Package cache provee un cache de bytes con soporte multi-backend.
//
// Soporta:
//   - Memory (in-process, para desarrollo/testing)
//   - Redis (distribuido, para producción)
//
// Se usa para el listado de categorías por tipo; las mutaciones de
// categorías invalidan las keys afectadas.
package cache

import "time"

// Cache define las operaciones mínimas que consume el service layer.
type Cache interface {
	Get(k string) ([]byte, bool)
	Set(k string, v []byte, ttl time.Duration)
	Delete(k string)
}
