package radar

// VerticalProfile is a read-only accessor over a derived vertical profile
// product, consumed optionally by CAPPI sampling when a caller supplies one
// alongside a polar volume.
type VerticalProfile interface {
	// Field returns the named field's values by height level, or false if
	// the field is absent. Standard field names are the constants below;
	// arbitrary what/quantity fields are also accepted.
	Field(name string) ([]float64, bool)
	Heights() []float64
}

// SimpleVerticalProfile is a concrete, in-memory VerticalProfile
// implementation keyed by field name.
type SimpleVerticalProfile struct {
	HeightsM []float64
	Fields   map[string][]float64
}

// NewSimpleVerticalProfile returns a profile over the given height levels
// with an empty field set.
func NewSimpleVerticalProfile(heightsM []float64) *SimpleVerticalProfile {
	return &SimpleVerticalProfile{HeightsM: heightsM, Fields: make(map[string][]float64)}
}

func (p *SimpleVerticalProfile) Heights() []float64 { return p.HeightsM }

func (p *SimpleVerticalProfile) Field(name string) ([]float64, bool) {
	v, ok := p.Fields[name]
	return v, ok
}

// Standard vertical profile field names.
const (
	FieldFF     = "FF"
	FieldFFDev  = "FFDev"
	FieldW      = "W"
	FieldWDev   = "WDev"
	FieldDD     = "DD"
	FieldDDDev  = "DDDev"
	FieldDiv    = "Div"
	FieldDivDev = "DivDev"
	FieldDef    = "Def"
	FieldDefDev = "DefDev"
	FieldAD     = "AD"
	FieldADDev  = "ADDev"
	FieldDBZ    = "DBZ"
	FieldDBZDev = "DBZDev"
	FieldHGHT   = "HGHT"
	FieldN      = "n"
	FieldUWND   = "UWND"
	FieldVWND   = "VWND"
)
