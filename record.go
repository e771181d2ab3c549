package gmp

// Record is a single name/value pair extracted from the page.
// Records have no identity beyond their position; duplicate names are kept.
type Record struct {
	// Name is the trimmed text of the label cell.
	Name string `json:"name"`

	// RawValue is the trimmed text of the value cell, as found on the page.
	RawValue string `json:"raw_value"`

	// Value is the first number found in RawValue, or nil if there is none.
	Value *float64 `json:"normalized_value"`
}

// NewRecord returns a Record for name and raw, normalizing raw into Value.
func NewRecord(name, raw string) Record {
	return Record{
		Name:     name,
		RawValue: raw,
		Value:    Normalize(raw),
	}
}
