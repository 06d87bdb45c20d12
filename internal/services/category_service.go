package services

import "strings"

// DefaultCategory is assigned when no keyword table matches the description
const DefaultCategory = "Otros"

var incomeKeywords = []string{
	"sueldo", "salario", "pago", "ingreso", "venta",
	"bonus", "ganancia", "reembolso", "comisión",
}

// categoryKeywords maps each category to its trigger keywords. Order matters:
// the first matching category wins.
var categoryKeywords = []struct {
	name     string
	keywords []string
}{
	{"Alimentacion", []string{"café", "comida", "desayuno", "almuerzo", "cena", "restaurant"}},
	{"Transporte", []string{"taxi", "bus", "uber", "gasolina", "metro", "tren"}},
	{"Entretenimiento", []string{"cine", "película", "juego", "música", "bar", "pub"}},
	{"Salud", []string{"farmacia", "medicina", "doctor", "médico", "hospital", "gym"}},
	{"Servicios", []string{"internet", "teléfono", "electricidad", "agua", "gas"}},
	{"Compras", []string{"ropa", "zapatos", "tienda", "regalo", "amazon"}},
	{"Ingresos", incomeKeywords},
}

// CategoryService assigns categories by substring keyword matching on the
// lowercased description. The transaction type is never derived here; the
// amount sign is the single source of truth for income vs expense.
type CategoryService struct{}

// NewCategoryService creates a new category service
func NewCategoryService() CategoryServiceInterface {
	return &CategoryService{}
}

// Categorize returns the first category whose keyword table matches the
// description, or DefaultCategory when nothing matches
func (cs *CategoryService) Categorize(description string) string {
	lowered := strings.ToLower(description)

	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry.name
			}
		}
	}

	return DefaultCategory
}

// Categories returns the known category names, matching table order, with the
// default category last
func (cs *CategoryService) Categories() []string {
	names := make([]string, 0, len(categoryKeywords)+1)
	for _, entry := range categoryKeywords {
		names = append(names, entry.name)
	}
	return append(names, DefaultCategory)
}
