package submit

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed contract/submission.yaml
var embeddedContract []byte

// intakeOperationID names the intake operation inside the contract document.
const intakeOperationID = "submitApplication"

// Contract wraps the request-body schema of the intake operation and checks
// outbound payloads against it before any network traffic happens.
type Contract struct {
	schema *openapi3.Schema
}

// LoadContract parses an OpenAPI document and extracts the JSON request
// schema of the submitApplication operation.
func LoadContract(ctx context.Context, raw []byte) (*Contract, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("submit: load contract: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("submit: validate contract: %w", err)
	}

	if doc.Paths != nil {
		for _, item := range doc.Paths.Map() {
			if item == nil || item.Post == nil || item.Post.OperationID != intakeOperationID {
				continue
			}
			operation := item.Post
			if operation.RequestBody == nil || operation.RequestBody.Value == nil {
				break
			}
			media := operation.RequestBody.Value.Content.Get("application/json")
			if media == nil || media.Schema == nil || media.Schema.Value == nil {
				break
			}
			return &Contract{schema: media.Schema.Value}, nil
		}
	}
	return nil, errors.New("submit: contract does not describe the intake operation")
}

// DefaultContract loads the embedded intake description.
func DefaultContract(ctx context.Context) (*Contract, error) {
	return LoadContract(ctx, embeddedContract)
}

// Check validates a payload against the intake schema. Violations come back
// as permanent submission errors; retrying an out-of-contract payload cannot
// help.
func (c *Contract) Check(payload map[string]any) error {
	if c == nil || c.schema == nil {
		return nil
	}
	if err := c.schema.VisitJSON(payload); err != nil {
		return permanent(0, fmt.Errorf("payload violates intake contract: %w", err))
	}
	return nil
}
