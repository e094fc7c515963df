package review_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-vendorform/pkg/forms"
	"github.com/goliatone/go-vendorform/pkg/review"
)

func submittableData() map[string]string {
	return map[string]string{
		forms.KeyCompanyName:        "Saigon Sourcing Co.",
		forms.KeyContactPerson:      "Linh Tran",
		forms.KeyEmail:              "linh@saigonsourcing.example",
		forms.KeyPhone:              "+84 28 3822 9999",
		forms.KeyCountry:            "Vietnam",
		forms.KeyProductCategory:    "Textiles & Apparel",
		forms.KeyProductDescription: strings.Repeat("organic cotton tote bags ", 4),
		forms.KeyMOQ:                "1000",
		forms.KeyPackagingType:      "Carton",
		forms.KeyUnitPrice:          "12.50",
		forms.KeyTermsAccepted:      "true",
		forms.KeyPrivacyAccepted:    "true",
	}
}

func TestEstimatedOrderValue(t *testing.T) {
	value, ok := review.EstimatedOrderValue(map[string]string{
		forms.KeyUnitPrice: "12.50",
		forms.KeyMOQ:       "1000",
	})
	if !ok || value != "12500.00" {
		t.Fatalf("EstimatedOrderValue = %q, %v; want \"12500.00\", true", value, ok)
	}

	if _, ok := review.EstimatedOrderValue(map[string]string{forms.KeyUnitPrice: "12.50"}); ok {
		t.Fatal("estimate produced without a quantity")
	}
	if _, ok := review.EstimatedOrderValue(map[string]string{
		forms.KeyUnitPrice: "-1",
		forms.KeyMOQ:       "10",
	}); ok {
		t.Fatal("estimate produced from a negative price")
	}
}

func TestCanSubmitRequiresBothConsents(t *testing.T) {
	data := submittableData()
	if !review.CanSubmit(data, forms.Context{}) {
		t.Fatal("complete application rejected")
	}

	data[forms.KeyTermsAccepted] = "false"
	if review.CanSubmit(data, forms.Context{}) {
		t.Fatal("submission allowed with terms declined")
	}

	data[forms.KeyTermsAccepted] = "true"
	data[forms.KeyPrivacyAccepted] = ""
	if review.CanSubmit(data, forms.Context{}) {
		t.Fatal("submission allowed with privacy consent missing")
	}
}

func TestCanSubmitRequiresEarlierSteps(t *testing.T) {
	data := submittableData()
	data[forms.KeyEmail] = "not-an-email"
	if review.CanSubmit(data, forms.Context{}) {
		t.Fatal("submission allowed with an invalid earlier step")
	}
}

func TestCompletion(t *testing.T) {
	if got := review.Completion(nil); got != 0 {
		t.Fatalf("Completion(empty) = %v, want 0", got)
	}
	if got := review.Completion(submittableData()); got != 1 {
		t.Fatalf("Completion(complete) = %v, want 1", got)
	}

	partial := map[string]string{
		forms.KeyCompanyName:   "Saigon Sourcing Co.",
		forms.KeyContactPerson: "Linh Tran",
	}
	got := review.Completion(partial)
	if got <= 0 || got >= 1 {
		t.Fatalf("Completion(partial) = %v, want a fraction in (0,1)", got)
	}
}

func TestSummarizeSanitizesAndLabels(t *testing.T) {
	data := submittableData()
	data[forms.KeyCertifications] = `<script>alert("x")</script>ISO 9001`

	rows := review.Summarize(data)
	if len(rows) == 0 {
		t.Fatal("no rows produced")
	}

	byLabel := make(map[string]review.Row, len(rows))
	for _, row := range rows {
		byLabel[row.Label] = row
	}

	certifications := byLabel["Certifications"]
	if strings.Contains(certifications.Value, "<script>") {
		t.Fatalf("markup survived sanitation: %q", certifications.Value)
	}
	if !strings.Contains(certifications.Value, "ISO 9001") {
		t.Fatalf("text content lost in sanitation: %q", certifications.Value)
	}
	if certifications.Step != 3 {
		t.Fatalf("certifications owner step = %d, want 3", certifications.Step)
	}

	if byLabel["Company name"].Step != 1 {
		t.Fatal("company name should belong to step 1")
	}
	if byLabel["Currency"].Value != "(not provided)" {
		t.Fatalf("empty optional value = %q, want placeholder", byLabel["Currency"].Value)
	}
	if _, found := byLabel["Terms of service accepted"]; found {
		t.Fatal("consent flags should not appear in the summary")
	}
}

func TestRenderText(t *testing.T) {
	data := submittableData()
	rows := review.Summarize(data)
	estimate, _ := review.EstimatedOrderValue(data)

	out, err := review.RenderText(rows, review.Completion(data), estimate)
	if err != nil {
		t.Fatalf("RenderText returned error: %v", err)
	}
	for _, want := range []string{"Step 1", "Step 2", "Saigon Sourcing Co.", "Completion: 100%", "12500.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
