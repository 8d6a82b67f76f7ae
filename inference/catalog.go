package inference

import (
	"encoding/json"
	"os"
	"strconv"
)

// ClassCatalog maps the model's i-th output unit to a label. The catalog is
// loaded once at startup and read-only afterwards.
type ClassCatalog []string

func LoadClassCatalog(path string) (ClassCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var catalog ClassCatalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// TreatmentCatalog maps a label to an opaque remediation payload, passed
// through verbatim. No schema is enforced.
type TreatmentCatalog map[string]json.RawMessage

func LoadTreatmentCatalog(path string) (TreatmentCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var catalog TreatmentCatalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Resolver turns a class index into a label and optional treatment. A nil
// Resolver or empty catalogs degrade rather than fail: labels fall back to
// the index's decimal form and treatments to nil.
type Resolver struct {
	Classes    ClassCatalog
	Treatments TreatmentCatalog
}

func (r *Resolver) Resolve(index int) (string, json.RawMessage) {
	label := strconv.Itoa(index)
	if r != nil && index >= 0 && index < len(r.Classes) {
		label = r.Classes[index]
	}
	if r == nil {
		return label, nil
	}
	return label, r.Treatments[label]
}
