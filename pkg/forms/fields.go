package forms

// Canonical field keys. These are the keys of the wizard's aggregate form
// data map; unset keys default to the empty string.
const (
	KeyCompanyName        = "companyName"
	KeyContactPerson      = "contactPerson"
	KeyEmail              = "email"
	KeyPhone              = "phone"
	KeyCountry            = "country"
	KeyProductCategory    = "productCategory"
	KeyProductDescription = "productDescription"
	KeyMOQ                = "moq"
	KeyPackagingType      = "packagingType"
	KeyUnitPrice          = "unitPrice"
	KeyCurrency           = "currency"
	KeyRegistrationNumber = "businessRegistrationNumber"
	KeyCertifications     = "certifications"
	KeyTermsAccepted      = "termsAccepted"
	KeyPrivacyAccepted    = "privacyAccepted"
)

// Catalog group names referenced by enum fields.
const (
	GroupCountries      = "countries"
	GroupCategories     = "productCategories"
	GroupCurrencies     = "currencies"
	GroupPackagingTypes = "packagingTypes"
)

// StepCount is the number of sequential wizard sections.
const StepCount = 4

// Description limits for the product description field.
const (
	DescriptionMinLen = 50
	DescriptionMaxLen = 2000
)

// fields is the fixed catalog, ordered by step then prompt order.
var fields = []Field{
	{Key: KeyCompanyName, Label: "Company name", Step: 1, Class: ClassText, Required: true},
	{Key: KeyContactPerson, Label: "Contact person", Step: 1, Class: ClassText, Required: true},
	{Key: KeyEmail, Label: "Email", Step: 1, Class: ClassEmail, Required: true},
	{Key: KeyPhone, Label: "Phone", Step: 1, Class: ClassPhone, Required: true},
	{Key: KeyCountry, Label: "Country", Step: 1, Class: ClassEnum, Required: true, Group: GroupCountries},

	{Key: KeyProductCategory, Label: "Product category", Step: 2, Class: ClassEnum, Required: true, Group: GroupCategories},
	{Key: KeyProductDescription, Label: "Product description", Step: 2, Class: ClassBoundedText, Required: true, MinLen: DescriptionMinLen, MaxLen: DescriptionMaxLen},
	{Key: KeyMOQ, Label: "Minimum order quantity", Step: 2, Class: ClassPositiveNumber, Required: true},
	{Key: KeyPackagingType, Label: "Packaging type", Step: 2, Class: ClassEnum, Required: true, Group: GroupPackagingTypes},
	{Key: KeyUnitPrice, Label: "Unit price", Step: 2, Class: ClassPositiveNumber, Required: true},
	{Key: KeyCurrency, Label: "Currency", Step: 2, Class: ClassEnum, Group: GroupCurrencies},

	{Key: KeyRegistrationNumber, Label: "Business registration number", Step: 3, Class: ClassText},
	{Key: KeyCertifications, Label: "Certifications", Step: 3, Class: ClassText},

	{Key: KeyTermsAccepted, Label: "Terms of service accepted", Step: 4, Class: ClassConsent, Required: true},
	{Key: KeyPrivacyAccepted, Label: "Privacy policy accepted", Step: 4, Class: ClassConsent, Required: true},
}

// Fields returns the full catalog in declaration order. The slice is a copy;
// mutating it does not affect validation.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldsForStep returns the catalog entries owned by the given step.
func FieldsForStep(step int) []Field {
	var out []Field
	for _, field := range fields {
		if field.Step == step {
			out = append(out, field)
		}
	}
	return out
}

// Lookup resolves a field definition by key.
func Lookup(key string) (Field, bool) {
	for _, field := range fields {
		if field.Key == key {
			return field, true
		}
	}
	return Field{}, false
}

// StepOf returns the step owning the given field key, or 0 when the key is
// not part of the catalog.
func StepOf(key string) int {
	if field, ok := Lookup(key); ok {
		return field.Step
	}
	return 0
}

// RequiredFields returns the keys that must be filled before submission,
// excluding the review-step consent flags.
func RequiredFields() []string {
	var out []string
	for _, field := range fields {
		if field.Required && field.Class != ClassConsent {
			out = append(out, field.Key)
		}
	}
	return out
}

// IsTrue reports whether a stored consent value counts as granted.
func IsTrue(value string) bool {
	return value == "true"
}
