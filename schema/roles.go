package schema

// ============================================================================
// TYPE CLASSIFIER — Declared type → semantic roles
// ============================================================================
// Two orthogonal partitions (DIMENSION/MEASURE, DISCRETE/CONTINUOUS) plus the
// value family (DATE/TEXT/NUMBER). Membership comes from fixed tables; a type
// absent from every table has the empty role set.
// ============================================================================

// Roles is a set of semantic roles.
type Roles uint8

const (
	RoleDimension Roles = 1 << iota
	RoleMeasure
	RoleDiscrete
	RoleContinuous
	RoleDate
	RoleText
	RoleNumber
)

var roleNames = []struct {
	role Roles
	name string
}{
	{RoleDimension, "dimension"},
	{RoleMeasure, "measure"},
	{RoleDiscrete, "discrete"},
	{RoleContinuous, "continuous"},
	{RoleDate, "date"},
	{RoleText, "text"},
	{RoleNumber, "number"},
}

// Classification tables.
var (
	TextTypes       = []ColumnDataType{TypeString, TypeText}
	NumberTypes     = []ColumnDataType{TypeInteger, TypeDecimal}
	DateTypes       = []ColumnDataType{TypeDate, TypeDatetime, TypeTime}
	MeasureTypes    = []ColumnDataType{TypeInteger, TypeDecimal}
	DimensionTypes  = []ColumnDataType{TypeString, TypeText, TypeDate, TypeDatetime, TypeTime}
	DiscreteTypes   = []ColumnDataType{TypeString, TypeText}
	ContinuousTypes = []ColumnDataType{TypeInteger, TypeDecimal, TypeDate, TypeDatetime, TypeTime}
)

var classification = buildClassification()

func buildClassification() map[ColumnDataType]Roles {
	tables := []struct {
		role  Roles
		types []ColumnDataType
	}{
		{RoleText, TextTypes},
		{RoleNumber, NumberTypes},
		{RoleDate, DateTypes},
		{RoleMeasure, MeasureTypes},
		{RoleDimension, DimensionTypes},
		{RoleDiscrete, DiscreteTypes},
		{RoleContinuous, ContinuousTypes},
	}
	m := make(map[ColumnDataType]Roles)
	for _, tbl := range tables {
		for _, t := range tbl.types {
			m[t] |= tbl.role
		}
	}
	return m
}

// Classify returns the role set of a declared type. Names match
// case-insensitively, so "decimal" classifies like TypeDecimal.
func Classify(t ColumnDataType) Roles {
	if r, ok := classification[t]; ok {
		return r
	}
	return classification[ParseColumnDataType(string(t))]
}

// Has reports whether every role in want is present.
func (r Roles) Has(want Roles) bool {
	return want != 0 && r&want == want
}

// Strings lists role names, mostly for logs and JSON output.
func (r Roles) Strings() []string {
	var out []string
	for _, rn := range roleNames {
		if r&rn.role != 0 {
			out = append(out, rn.name)
		}
	}
	return out
}

func (c Column) Roles() Roles      { return Classify(c.Type) }
func (c Column) IsDate() bool      { return Classify(c.Type).Has(RoleDate) }
func (c Column) IsText() bool      { return Classify(c.Type).Has(RoleText) }
func (c Column) IsNumber() bool    { return Classify(c.Type).Has(RoleNumber) }
func (c Column) IsMeasure() bool   { return Classify(c.Type).Has(RoleMeasure) }
func (c Column) IsDimension() bool { return Classify(c.Type).Has(RoleDimension) }

// IsDate reports whether t is classified DATE.
func (t ColumnDataType) IsDate() bool { return Classify(t).Has(RoleDate) }
