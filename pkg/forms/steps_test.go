package forms_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-vendorform/pkg/forms"
)

func completeStepOneData() map[string]string {
	return map[string]string{
		forms.KeyCompanyName:   "Saigon Sourcing Co.",
		forms.KeyContactPerson: "Linh Tran",
		forms.KeyEmail:         "linh@saigonsourcing.example",
		forms.KeyPhone:         "+84 28 3822 9999",
		forms.KeyCountry:       "Vietnam",
	}
}

func TestValidateStepOne(t *testing.T) {
	result := forms.ValidateStep(1, completeStepOneData(), forms.Context{})
	if !result.Valid {
		t.Fatalf("complete step 1 invalid: %v", result.Errors)
	}

	result = forms.ValidateStep(1, map[string]string{forms.KeyEmail: "not-an-email"}, forms.Context{})
	if result.Valid {
		t.Fatal("empty step 1 reported valid")
	}

	var failed []string
	for key := range result.Errors {
		failed = append(failed, key)
	}
	sort.Strings(failed)
	want := []string{
		forms.KeyCompanyName,
		forms.KeyContactPerson,
		forms.KeyCountry,
		forms.KeyEmail,
		forms.KeyPhone,
	}
	if diff := cmp.Diff(want, failed); diff != "" {
		t.Fatalf("failed fields mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateStepTwo(t *testing.T) {
	data := map[string]string{
		forms.KeyProductCategory:    "Textiles & Apparel",
		forms.KeyProductDescription: strings.Repeat("organic cotton tote bags ", 4),
		forms.KeyMOQ:                "1000",
		forms.KeyPackagingType:      "Carton",
		forms.KeyUnitPrice:          "12.50",
	}
	result := forms.ValidateStep(2, data, forms.Context{})
	if !result.Valid {
		t.Fatalf("complete step 2 invalid: %v", result.Errors)
	}

	data[forms.KeyMOQ] = "-10"
	result = forms.ValidateStep(2, data, forms.Context{})
	if result.Valid {
		t.Fatal("negative moq accepted")
	}
	if _, ok := result.Errors[forms.KeyMOQ]; !ok {
		t.Fatalf("moq missing from error map: %v", result.Errors)
	}
}

func TestValidateStepThreeAlwaysValid(t *testing.T) {
	if result := forms.ValidateStep(3, nil, forms.Context{}); !result.Valid {
		t.Fatalf("step 3 with no data invalid: %v", result.Errors)
	}
	data := map[string]string{forms.KeyCertifications: "ISO 9001, OEKO-TEX"}
	if result := forms.ValidateStep(3, data, forms.Context{}); !result.Valid {
		t.Fatalf("step 3 with enrichments invalid: %v", result.Errors)
	}
}

func TestValidateStepFourConsents(t *testing.T) {
	cases := []struct {
		name    string
		terms   string
		privacy string
		valid   bool
	}{
		{name: "both granted", terms: "true", privacy: "true", valid: true},
		{name: "terms missing", terms: "", privacy: "true"},
		{name: "privacy declined", terms: "true", privacy: "false"},
		{name: "both missing"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := map[string]string{
				forms.KeyTermsAccepted:   tc.terms,
				forms.KeyPrivacyAccepted: tc.privacy,
			}
			result := forms.ValidateStep(4, data, forms.Context{})
			if result.Valid != tc.valid {
				t.Fatalf("step 4 valid = %v, want %v (%v)", result.Valid, tc.valid, result.Errors)
			}
		})
	}
}

func TestValidateAllCoversEveryStep(t *testing.T) {
	results := forms.ValidateAll(nil, forms.Context{})
	if len(results) != forms.StepCount {
		t.Fatalf("ValidateAll returned %d steps, want %d", len(results), forms.StepCount)
	}
	if !results[3].Valid {
		t.Fatal("step 3 should be valid with empty data")
	}
	if results[1].Valid || results[2].Valid || results[4].Valid {
		t.Fatal("steps with required fields should be invalid with empty data")
	}
}
