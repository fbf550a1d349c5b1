package snapshot

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/daskasas/inventory-tracker/internal/domain"
)

// ExcludedCategories categorías que no son inventario físico (servicios, envíos, etc.).
// Se comparan por subcadena y distinguiendo mayúsculas.
var ExcludedCategories = []string{"Delivery", "Installation", "Other", "Rooms", "Service", "Courier"}

// Nombres de los presets de política.
const (
	PolicyFull      = "full"
	PolicyDashboard = "dashboard"
)

// Policy reglas de limpieza configurables. El reporte completo y el dashboard
// limpian distinto; cada uno es un preset.
type Policy struct {
	Name                   string
	RequireNonZeroQuantity bool            // descarta filas con cantidad <= 0
	RequireCodePrefix      string          // vacío = sin filtro de prefijo
	MinPriceTier1          decimal.Decimal // se exige PriceTier1 > MinPriceTier1
	ExcludedCategories     []string
}

// FullCleanPolicy preset del pipeline de limpieza completo.
func FullCleanPolicy() Policy {
	return Policy{
		Name:                   PolicyFull,
		RequireNonZeroQuantity: true,
		RequireCodePrefix:      "P",
		MinPriceTier1:          decimal.NewFromInt(10),
		ExcludedCategories:     ExcludedCategories,
	}
}

// DashboardPolicy preset del pipeline que solo alimenta el dashboard: conserva cantidades en cero
// y no filtra por prefijo.
func DashboardPolicy() Policy {
	return Policy{
		Name:                   PolicyDashboard,
		RequireNonZeroQuantity: false,
		RequireCodePrefix:      "",
		MinPriceTier1:          decimal.NewFromInt(10),
		ExcludedCategories:     ExcludedCategories,
	}
}

// PolicyByName resuelve un preset por nombre ("full" o "dashboard"; vacío = full).
func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyFull:
		return FullCleanPolicy(), nil
	case PolicyDashboard:
		return DashboardPolicy(), nil
	default:
		return Policy{}, fmt.Errorf("política de ingesta desconocida %q: %w", name, domain.ErrInvalidInput)
	}
}

// excludesCategory indica si la categoría contiene alguna de las subcadenas excluidas.
func (p Policy) excludesCategory(category string) bool {
	for _, ex := range p.ExcludedCategories {
		if ex != "" && strings.Contains(category, ex) {
			return true
		}
	}
	return false
}
