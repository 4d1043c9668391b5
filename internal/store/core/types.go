// Package core define las entidades y contratos de persistencia.
package core

import "time"

// Estados de cuenta y de categoría. 1 = habilitado, 0 = deshabilitado.
// StatusUnchanged es el centinela de los updates parciales: como 0 es un
// valor válido, los repos solo persisten Status cuando es >= 0.
const (
	StatusDisabled  = 0
	StatusEnabled   = 1
	StatusUnchanged = -1
)

// Tipos de categoría.
const (
	CategoryTypeDish    = 1 // platos
	CategoryTypeSetmeal = 2 // menús / combos
)

// Employee es el registro de credencial + perfil de un operador del
// back-office. Password guarda solo el digest bcrypt, nunca el texto plano.
// Los empleados no se borran físicamente: se deshabilitan vía Status.
type Employee struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	Password   string    `json:"password,omitempty"`
	Phone      string    `json:"phone"`
	Sex        string    `json:"sex"`
	IDNumber   string    `json:"idNumber"`
	Status     int       `json:"status"`
	CreateTime time.Time `json:"createTime"`
	UpdateTime time.Time `json:"updateTime"`
	CreateUser int64     `json:"createUser"`
	UpdateUser int64     `json:"updateUser"`
}

// Category es una categoría de platos o menús del catálogo.
type Category struct {
	ID         int64     `json:"id"`
	Type       int       `json:"type"`
	Name       string    `json:"name"`
	Sort       int       `json:"sort"`
	Status     int       `json:"status"`
	CreateTime time.Time `json:"createTime"`
	UpdateTime time.Time `json:"updateTime"`
	CreateUser int64     `json:"createUser"`
	UpdateUser int64     `json:"updateUser"`
}

// PageQuery son los parámetros comunes de paginación.
// Name filtra por substring (case-insensitive); Type filtra categorías
// cuando es distinto de cero.
type PageQuery struct {
	Page     int
	PageSize int
	Name     string
	Type     int
}

// Offset devuelve el desplazamiento SQL equivalente.
func (q PageQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}
