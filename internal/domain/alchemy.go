package domain

// Element is a base alchemical ingredient with an on-hand count.
// Crafting consumes elements, extraction produces them.
type Element struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Color    string `json:"color,omitempty"`
}

// Material is a raw harvestable resource convertible into elements.
type Material struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ExtractionYield is one row of the material -> element mapping:
// extracting one unit of the material produces YieldPerUnit units of the element.
type ExtractionYield struct {
	ElementID    int    `json:"element_id"`
	ElementName  string `json:"name"`
	YieldPerUnit int    `json:"yield"`
}

// MaterialYields is the grouped extraction mapping for a single material.
type MaterialYields struct {
	MaterialID   int               `json:"material_id"`
	MaterialName string            `json:"material"`
	Stock        int               `json:"stock"`
	Elements     []ExtractionYield `json:"elements"`
}

// ExtractionResult reports a completed extraction.
type ExtractionResult struct {
	MaterialID int `json:"material_id"`
	Quantity   int `json:"quantity"`
}

// BaseKind is the closed set of base substances a recipe may use.
// The base slot of a recipe always has proportion 1.
type BaseKind string

const (
	BaseAceite BaseKind = "Aceite"
	BaseGrasa  BaseKind = "Grasa"
)

// IsRecognizedBase reports whether name matches one of the base substances.
func IsRecognizedBase(name string) bool {
	return name == string(BaseAceite) || name == string(BaseGrasa)
}

// RecipeRequirement is a single element requirement of a recipe.
type RecipeRequirement struct {
	ElementName string `json:"name"`
	Proportion  int    `json:"proportion"`
}

// Recipe is a named craftable product together with its element requirements.
// Regular holds at most four requirements; the base substance is kept apart
// instead of occupying a magic fifth slot.
type Recipe struct {
	ProductID   int                 `json:"product_id,omitempty"`
	ProductName string              `json:"product_name"`
	Description string              `json:"description,omitempty"`
	Toxicity    int                 `json:"toxicity,omitempty"`
	Regular     []RecipeRequirement `json:"regular"`
	Base        BaseKind            `json:"base,omitempty"`
}

// MaxRegularRequirements is the number of non-base requirement slots a recipe carries.
const MaxRegularRequirements = 4

// RecipeRow is a flat requirement row as stored: one element per product.
// Listing endpoints group these into Recipe values.
type RecipeRow struct {
	ProductID   int
	ProductName string
	Description string
	Toxicity    int
	ElementName string
	Proportion  int
}
