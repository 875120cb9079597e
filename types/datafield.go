package types

import "fmt"

// DataFieldKind discriminates the two shapes a data-field specification
// can take.
type DataFieldKind int

const (
	// DataFieldSingle is a single field name searched with default weight
	DataFieldSingle DataFieldKind = iota
	// DataFieldWeighted is a list of field names with per-field weights
	DataFieldWeighted
)

// FieldWeight pairs a document field with its search weight.
type FieldWeight struct {
	Field  string  `json:"field"`
	Weight float64 `json:"weight"`
}

// DataField is a tagged variant describing which document fields a query
// searches. It is either a single field or a weighted field list, never
// both; consumers switch on Kind and handle each case exhaustively.
type DataField struct {
	kind   DataFieldKind
	single string
	fields []FieldWeight
}

// SingleField returns a DataField targeting one field with default weight.
func SingleField(name string) DataField {
	return DataField{kind: DataFieldSingle, single: name}
}

// WeightedFields returns a DataField targeting several fields with explicit
// weights.
func WeightedFields(fields ...FieldWeight) DataField {
	return DataField{kind: DataFieldWeighted, fields: fields}
}

// Kind reports which variant this DataField holds.
func (df DataField) Kind() DataFieldKind {
	return df.kind
}

// Single returns the field name for the DataFieldSingle case.
func (df DataField) Single() string {
	return df.single
}

// Weighted returns the field list for the DataFieldWeighted case. The
// returned slice must not be modified.
func (df DataField) Weighted() []FieldWeight {
	return df.fields
}

// IsZero reports whether the DataField was never set.
func (df DataField) IsZero() bool {
	return df.kind == DataFieldSingle && df.single == "" && df.fields == nil
}

// FieldNames flattens either variant into the plain list of field names.
func (df DataField) FieldNames() []string {
	switch df.kind {
	case DataFieldSingle:
		if df.single == "" {
			return nil
		}
		return []string{df.single}
	case DataFieldWeighted:
		names := make([]string, 0, len(df.fields))
		for _, fw := range df.fields {
			names = append(names, fw.Field)
		}
		return names
	default:
		return nil
	}
}

// String implements fmt.Stringer for log output.
func (df DataField) String() string {
	switch df.kind {
	case DataFieldSingle:
		return df.single
	case DataFieldWeighted:
		return fmt.Sprintf("%v", df.FieldNames())
	default:
		return "unknown"
	}
}
