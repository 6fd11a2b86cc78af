package models

// ColumnCategorization partitions a sheet's logical column names into roles.
type ColumnCategorization struct {
	// Unique lists columns expected to hold non-repeating identifiers.
	Unique []string `json:"unique" yaml:"unique"`
	// Categorical lists columns holding labels or codes that are expected to repeat.
	Categorical []string `json:"categorical,omitempty" yaml:"categorical"`
	// Measurement lists columns holding measured quantities.
	Measurement []string `json:"measurement,omitempty" yaml:"measurement"`
	// Other lists everything else.
	Other []string `json:"other,omitempty" yaml:"other"`
}

// IsEmpty reports whether no column was assigned a role.
func (c ColumnCategorization) IsEmpty() bool {
	return len(c.Unique) == 0 && len(c.Categorical) == 0 && len(c.Measurement) == 0 && len(c.Other) == 0
}
