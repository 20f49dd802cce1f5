package model

import (
	"strings"
	"time"
)

// Item represents a listed good for sale.
type Item struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	Price              Price     `json:"price"`
	SellerID           *int64    `json:"seller_id,omitempty"`
	Major              string    `json:"major,omitempty"`
	Professor          string    `json:"professor,omitempty"`
	Category           string    `json:"category,omitempty"`
	CourseCode         string    `json:"course_code,omitempty"`
	AmountUsage        string    `json:"amount_usage,omitempty"`
	PaymentMethods     string    `json:"payment_methods,omitempty"`
	AdditionalInfo     string    `json:"additional_info,omitempty"`
	OutcomeDescription string    `json:"outcome_description,omitempty"`
	CreatedAt          time.Time `json:"created_at"`

	// Joined fields (not always populated).
	SellerName string      `json:"seller,omitempty"`
	Cover      string      `json:"cover,omitempty"`
	Images     []ItemImage `json:"images,omitempty"`
	Outcomes   []ItemImage `json:"outcomes,omitempty"`
}

// ItemImage is a stored product or outcome photo, referenced by its
// media-store path.
type ItemImage struct {
	ID       int64  `json:"id"`
	ItemID   int64  `json:"item_id"`
	Position int    `json:"position"`
	Path     string `json:"path"`
}

// Image attachment limits per item.
const (
	MaxItemImages    = 3
	MaxOutcomeImages = 5
)

// Choice is a fixed classification value with its display label.
type Choice struct {
	Value string
	Label string
}

// Majors lists the accepted major tags.
var Majors = []Choice{
	{"advertising", "Advertising"},
	{"animation", "Animation"},
	{"3d_animation", "3D Animation and Visual Effects"},
	{"comics", "Comics"},
	{"design", "Design"},
	{"film", "Film"},
	{"fine_arts", "Fine Arts"},
	{"illustration", "Illustration"},
	{"photography", "Photography & Video"},
	{"visual_studies", "Visual and Critical Studies"},
	{"art_history", "Art History"},
	{"humanities", "Humanities and Sciences"},
	{"others", "Others"},
}

// Categories lists the accepted category tags.
var Categories = []Choice{
	{"paints", "Paints"},
	{"brushes", "Brushes"},
	{"papers", "Papers/Canvas"},
	{"tools", "Tools"},
	{"mediums", "Mediums"},
	{"markers", "Markers/Ink"},
	{"pencils", "Pencils"},
	{"pastels", "Pastels"},
	{"modeling", "Modeling"},
	{"textbook", "Textbook"},
	{"filming", "Filming Device"},
	{"electronic", "Electronic Device"},
}

// PaymentOptions lists the payment methods offered on checkout.
var PaymentOptions = []Choice{
	{"venmo", "Venmo"},
	{"cash", "Cash"},
	{"zelle", "Zelle"},
	{"paypal", "PayPal"},
	{"apple_pay", "Apple Pay"},
}

func choiceLabel(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label
		}
	}
	return ""
}

func validChoice(choices []Choice, value string) bool {
	return choiceLabel(choices, value) != ""
}

// MajorLabel returns the display label for a major tag, or "" if unknown.
func MajorLabel(value string) string { return choiceLabel(Majors, value) }

// CategoryLabel returns the display label for a category tag, or "" if unknown.
func CategoryLabel(value string) string { return choiceLabel(Categories, value) }

// ItemForm holds raw item fields as submitted, before validation.
type ItemForm struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	Price              string `json:"price"`
	Major              string `json:"major"`
	Professor          string `json:"professor"`
	Category           string `json:"category"`
	CourseCode         string `json:"course_code"`
	AmountUsage        string `json:"amount_usage"`
	PaymentMethods     string `json:"payment_methods"`
	AdditionalInfo     string `json:"additional_info"`
	OutcomeDescription string `json:"outcome_description"`
}

// ItemFields holds validated item fields ready for storage.
type ItemFields struct {
	Name               string
	Description        string
	Price              Price
	Major              string
	Professor          string
	Category           string
	CourseCode         string
	AmountUsage        string
	PaymentMethods     string
	AdditionalInfo     string
	OutcomeDescription string
}

// Validate checks the form and returns the validated fields.
// Major and category may be empty; when present they must belong to
// their fixed choice sets. Price must be a non-negative decimal amount.
func (f ItemForm) Validate() (ItemFields, FieldErrors) {
	errs := FieldErrors{}

	name := strings.TrimSpace(f.Name)
	if name == "" {
		errs["name"] = "name is required"
	}

	price, err := ParsePrice(f.Price)
	if err != nil {
		errs["price"] = err.Error()
	}

	if f.Major != "" && !validChoice(Majors, f.Major) {
		errs["major"] = "not a valid major"
	}
	if f.Category != "" && !validChoice(Categories, f.Category) {
		errs["category"] = "not a valid category"
	}

	if len(errs) > 0 {
		return ItemFields{}, errs
	}

	return ItemFields{
		Name:               name,
		Description:        f.Description,
		Price:              price,
		Major:              f.Major,
		Professor:          f.Professor,
		Category:           f.Category,
		CourseCode:         f.CourseCode,
		AmountUsage:        f.AmountUsage,
		PaymentMethods:     f.PaymentMethods,
		AdditionalInfo:     f.AdditionalInfo,
		OutcomeDescription: f.OutcomeDescription,
	}, nil
}
