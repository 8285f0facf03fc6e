package metrics

// FieldType tags a series column
type FieldType string

const (
	FieldTypeNumber FieldType = "number"
	FieldTypeTime   FieldType = "time"
	FieldTypeString FieldType = "string"
)

// FieldConfig is the display configuration attached to a field
type FieldConfig struct {
	DisplayName       string `json:"displayName,omitempty"`
	DisplayNameFromDS string `json:"displayNameFromDS,omitempty"`
	Unit              string `json:"unit,omitempty"`
}

// Field is one column of a series. Values holds decoded JSON samples:
// numbers, strings or nil.
type Field struct {
	Name   string            `json:"name"`
	Type   FieldType         `json:"type"`
	Labels map[string]string `json:"labels,omitempty"`
	Config FieldConfig       `json:"config"`
	Values []any             `json:"values"`
}

// Frame is one series pushed by the host application
type Frame struct {
	Name   string  `json:"name,omitempty"`
	RefID  string  `json:"refId,omitempty"`
	Fields []Field `json:"fields"`
}

// displayName picks the name the host application shows for the field
func (f Field) displayName() string {
	switch {
	case f.Config.DisplayName != "":
		return f.Config.DisplayName
	case f.Config.DisplayNameFromDS != "":
		return f.Config.DisplayNameFromDS
	default:
		return f.Name
	}
}

// lastValue returns the last non-null sample
func (f Field) lastValue() (Value, bool) {
	for i := len(f.Values) - 1; i >= 0; i-- {
		if v, ok := toValue(f.Values[i]); ok {
			return v, true
		}
	}
	return Value{}, false
}
