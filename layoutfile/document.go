package layoutfile

// Document is the on-disk form shared by YAML and TOML.
type Document struct {
	Layouts map[string]Definition `yaml:"layouts" toml:"layouts"`
}

// Definition declares one layout. Exactly one of Type, Fields, Tuple or
// Enum must be set.
type Definition struct {
	Enum   *EnumDef   `yaml:"enum,omitempty" toml:"enum,omitempty"`
	Doc    string     `yaml:"doc,omitempty" toml:"doc,omitempty"`
	Type   string     `yaml:"type,omitempty" toml:"type,omitempty"`
	Fields []FieldDef `yaml:"fields,omitempty" toml:"fields,omitempty"`
	Tuple  []string   `yaml:"tuple,omitempty" toml:"tuple,omitempty"`
}

// FieldDef is a struct member. An empty name is allowed for padding only.
type FieldDef struct {
	Name string `yaml:"name,omitempty" toml:"name,omitempty"`
	Type string `yaml:"type" toml:"type"`
}

type EnumDef struct {
	// Order is "le" (default) or "be".
	Order string `yaml:"order,omitempty" toml:"order,omitempty"`
	// Unknown is "strict" (default) or "catch-all".
	Unknown  string       `yaml:"unknown,omitempty" toml:"unknown,omitempty"`
	Variants []VariantDef `yaml:"variants" toml:"variants"`
	Bits     uint32       `yaml:"bits" toml:"bits"`
}

type VariantDef struct {
	Name     string `yaml:"name" toml:"name"`
	Payload  string `yaml:"payload,omitempty" toml:"payload,omitempty"`
	Value    uint64 `yaml:"value,omitempty" toml:"value,omitempty"`
	Fallback bool   `yaml:"fallback,omitempty" toml:"fallback,omitempty"`
}

func (d Definition) forms() int {
	n := 0
	if d.Type != "" {
		n++
	}
	if len(d.Fields) > 0 {
		n++
	}
	if len(d.Tuple) > 0 {
		n++
	}
	if d.Enum != nil {
		n++
	}
	return n
}
