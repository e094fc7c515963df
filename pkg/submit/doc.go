// Package submit implements the client side of the brokerage's application
// intake boundary. The remote service is opaque to the wizard: submissions
// either succeed or fail, and a failure is classified as retryable (network
// trouble, 5xx, throttling) or permanent (contract violations, other 4xx).
// Before anything leaves the process the payload is checked against the
// embedded OpenAPI description of the intake endpoint, and the actual call
// runs through a retry/circuit-breaker executor so a flapping backend cannot
// be hammered by eager resubmits.
package submit
