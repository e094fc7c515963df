package attach

import (
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category distinguishes the two independent attachment lists.
type Category string

const (
	CategoryDocuments     Category = "documents"
	CategoryProductImages Category = "productImages"
)

// Policy bounds what a category accepts. Extensions are matched without the
// leading dot and case-insensitively; MIME types are matched exactly.
type Policy struct {
	MaxFiles   int      `yaml:"maxFiles"`
	MaxBytes   int64    `yaml:"maxBytes"`
	Extensions []string `yaml:"extensions"`
	MIMETypes  []string `yaml:"mimeTypes"`
}

const megabyte = 1 << 20

// DefaultDocumentPolicy bounds business-credential uploads.
func DefaultDocumentPolicy() Policy {
	return Policy{
		MaxFiles:   5,
		MaxBytes:   5 * megabyte,
		Extensions: []string{"pdf", "doc", "docx", "jpg", "jpeg", "png"},
		MIMETypes: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			"image/jpeg",
			"image/png",
		},
	}
}

// DefaultImagePolicy bounds product-image uploads.
func DefaultImagePolicy() Policy {
	return Policy{
		MaxFiles:   5,
		MaxBytes:   2 * megabyte,
		Extensions: []string{"jpg", "jpeg", "png", "webp"},
		MIMETypes:  []string{"image/jpeg", "image/png", "image/webp"},
	}
}

// ParsePolicies decodes a YAML document mapping category names to policies,
// overlaying the defaults so partial documents stay valid.
func ParsePolicies(raw []byte) (map[Category]Policy, error) {
	var doc map[Category]Policy
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("attach: parse policies: %w", err)
	}
	out := map[Category]Policy{
		CategoryDocuments:     DefaultDocumentPolicy(),
		CategoryProductImages: DefaultImagePolicy(),
	}
	for category, policy := range doc {
		out[category] = policy
	}
	return out, nil
}

// allowsType reports whether the candidate's extension or MIME type is in
// the policy's allow set. An empty allow set accepts everything.
func (p Policy) allowsType(name, mimeType string) bool {
	if len(p.Extensions) == 0 && len(p.MIMETypes) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	for _, allowed := range p.Extensions {
		if ext != "" && ext == strings.ToLower(allowed) {
			return true
		}
	}
	for _, allowed := range p.MIMETypes {
		if mimeType != "" && strings.EqualFold(mimeType, allowed) {
			return true
		}
	}
	return false
}
