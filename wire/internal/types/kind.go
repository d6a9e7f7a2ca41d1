package types

type Kind uint8

const (
	KindBool Kind = iota
	KindUint
	KindInt
	KindFloat32
	KindFloat64
	KindPad
	KindStruct
	KindTuple
	KindArray
	KindEnum
)

var kindNames = [...]string{
	KindBool:    "bool",
	KindUint:    "uint",
	KindInt:     "int",
	KindFloat32: "f32",
	KindFloat64: "f64",
	KindPad:     "pad",
	KindStruct:  "struct",
	KindTuple:   "tuple",
	KindArray:   "array",
	KindEnum:    "enum",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsSequence reports whether k is packed as an ordered list of elements.
func (k Kind) IsSequence() bool {
	return k == KindStruct || k == KindTuple || k == KindArray
}

// Policy selects how an enum handles discriminants with no mapped variant.
type Policy uint8

const (
	StrictError Policy = iota
	CatchAll
)

func (p Policy) String() string {
	if p == CatchAll {
		return "catch-all"
	}
	return "strict"
}
