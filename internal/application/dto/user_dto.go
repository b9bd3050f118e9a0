package dto

// UpdateUserRequest actualización de un usuario del tenant (admin).
// El email y la contraseña se gestionan por los flujos de auth, no aquí.
type UpdateUserRequest struct {
	FirstName   string         `json:"firstName" validate:"required,max=50"`
	LastName    string         `json:"lastName" validate:"required,max=50"`
	Role        string         `json:"role" validate:"omitempty,oneof=owner admin manager employee customer"`
	Status      string         `json:"status" validate:"omitempty,oneof=active inactive suspended"`
	Preferences PreferencesDTO `json:"preferences"`
}

// ListUsersRequest filtros de listado de usuarios.
type ListUsersRequest struct {
	PageRequest
	Role string `query:"role" validate:"omitempty,oneof=owner admin manager employee customer"`
}
