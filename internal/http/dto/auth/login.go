// Package auth define los DTOs de autenticación de empleados.
package auth

// LoginRequest es el body de POST /admin/employee/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse es la respuesta del login exitoso.
type LoginResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	UserName string `json:"userName"`
	Token    string `json:"token"`
}

// ChangePasswordRequest es el body de PUT /admin/employee/editPassword.
// La identidad del empleado sale del contexto, no del body.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}
