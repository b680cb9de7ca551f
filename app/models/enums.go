package models

// Enum values and their human-readable labels. The label maps back the
// /types/, /suitabilities/, /payment_methods/ and /statuses/ endpoints the
// front-office uses to populate dropdowns.

// ─── Product type ─────────────────────────────────────────────────────────────

const (
	ProductTypeStarter  = "starter"
	ProductTypeMain     = "main"
	ProductTypeDessert  = "dessert"
	ProductTypeBeverage = "beverage"
	ProductTypeSide     = "side"
	ProductTypeOther    = "other"
)

// ProductTypes maps product type values to display labels.
var ProductTypes = map[string]string{
	ProductTypeStarter:  "Starter",
	ProductTypeMain:     "Main Course",
	ProductTypeDessert:  "Dessert",
	ProductTypeBeverage: "Beverage",
	ProductTypeSide:     "Side Dish",
	ProductTypeOther:    "Other",
}

// ─── Product suitability ──────────────────────────────────────────────────────

const (
	SuitabilityVegetarian = "vegetarian"
	SuitabilityVegan      = "vegan"
	SuitabilityGlutenFree = "gluten_free"
	SuitabilityDairyFree  = "dairy_free"
	SuitabilityNutFree    = "nut_free"
	SuitabilityHalal      = "halal"
	SuitabilityKosher     = "kosher"
	SuitabilityNone       = "none"
)

// ProductSuitabilities maps suitability values to display labels.
var ProductSuitabilities = map[string]string{
	SuitabilityVegetarian: "Vegetarian",
	SuitabilityVegan:      "Vegan",
	SuitabilityGlutenFree: "Gluten Free",
	SuitabilityDairyFree:  "Dairy Free",
	SuitabilityNutFree:    "Nut Free",
	SuitabilityHalal:      "Halal",
	SuitabilityKosher:     "Kosher",
	SuitabilityNone:       "None",
}

// ─── Payment method ───────────────────────────────────────────────────────────

const (
	PaymentCash         = "cash"
	PaymentBankTransfer = "bank_transfer"
	PaymentPaypal       = "paypal"
	PaymentCard         = "card"
)

// PaymentMethods maps payment method values to display labels.
var PaymentMethods = map[string]string{
	PaymentCash:         "Cash",
	PaymentBankTransfer: "Bank Transfer",
	PaymentPaypal:       "PayPal",
	PaymentCard:         "Card",
}

// ─── Order status ─────────────────────────────────────────────────────────────

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// OrderStatuses maps order status values to display labels.
var OrderStatuses = map[string]string{
	StatusPending:    "Pending",
	StatusConfirmed:  "Confirmed",
	StatusInProgress: "In Progress",
	StatusCompleted:  "Completed",
	StatusCancelled:  "Cancelled",
}

// ─── Allergens ────────────────────────────────────────────────────────────────

// AllergenNames is the fixed catalogue of the 14 declarable allergens.
// The seeder creates one Allergen row per entry.
var AllergenNames = map[string]string{
	"celery":      "Celery",
	"gluten":      "Cereals containing gluten",
	"crustaceans": "Crustaceans",
	"eggs":        "Eggs",
	"fish":        "Fish",
	"lupin":       "Lupin",
	"milk":        "Milk",
	"molluscs":    "Molluscs",
	"mustard":     "Mustard",
	"nuts":        "Nuts",
	"peanuts":     "Peanuts",
	"sesame":      "Sesame seeds",
	"soybeans":    "Soybeans",
	"sulphites":   "Sulphur dioxide and sulphites",
}
