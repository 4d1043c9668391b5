// Package admin define los DTOs del back-office.
package admin

// PageResult es el sobre estándar de toda respuesta paginada.
type PageResult struct {
	Total   int64 `json:"total"`
	Records any   `json:"records"`
}
