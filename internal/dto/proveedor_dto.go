package dto

type ContactoProveedorRequest struct {
	Nombre   string  `json:"nombre" validate:"required,min=2,max=120"`
	Cargo    *string `json:"cargo"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

type CrearProveedorRequest struct {
	Nombre    string                     `json:"nombre" validate:"required,min=2,max=120"`
	RUC       *string                    `json:"ruc"`
	Telefono  *string                    `json:"telefono"`
	Email     *string                    `json:"email" validate:"omitempty,email"`
	Direccion *string                    `json:"direccion"`
	Notas     *string                    `json:"notas"`
	Contactos []ContactoProveedorRequest `json:"contactos" validate:"dive"`
}

type ContactoProveedorResponse struct {
	ID       string  `json:"id"`
	Nombre   string  `json:"nombre"`
	Cargo    *string `json:"cargo"`
	Telefono *string `json:"telefono"`
	Email    *string `json:"email"`
}

type ProveedorResponse struct {
	ID        string                      `json:"id"`
	Nombre    string                      `json:"nombre"`
	RUC       *string                     `json:"ruc"`
	Telefono  *string                     `json:"telefono"`
	Email     *string                     `json:"email"`
	Direccion *string                     `json:"direccion"`
	Notas     *string                     `json:"notas"`
	Activo    bool                        `json:"activo"`
	Contactos []ContactoProveedorResponse `json:"contactos"`
}
