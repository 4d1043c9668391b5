package admin

// CreateEmployeeRequest es el body de POST /admin/employee.
// El password no viene en el alta: se asigna el password por defecto.
type CreateEmployeeRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Sex      string `json:"sex"`
	IDNumber string `json:"idNumber"`
}

// UpdateEmployeeRequest es el body de PUT /admin/employee.
// Actualiza perfil, nunca password ni status.
type UpdateEmployeeRequest struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Sex      string `json:"sex"`
	IDNumber string `json:"idNumber"`
}
