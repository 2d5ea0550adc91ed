package entity

import "strings"

// Permission es un permiso como dato, no como código: ModuleName se interpreta
// como ruta HTTP y Action como método. El resolver compara ambos por igualdad
// exacta tras normalizar mayúsculas; no hay wildcards ni prefijos.
type Permission struct {
	ID          string
	ModuleName  string // ruta, p.ej. "/api/users"
	Action      string // método HTTP, p.ej. "GET"
	Category    string
	Description string
}

// Matches informa si el permiso autoriza la pareja (path, method) ya
// normalizada (path en minúsculas, method en mayúsculas).
func (p *Permission) Matches(path, method string) bool {
	return strings.ToLower(p.ModuleName) == path && strings.ToUpper(p.Action) == method
}
