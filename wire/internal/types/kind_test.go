package types //nolint:revive // package name is used by internal consumers

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		want string
		kind Kind
	}{
		{"bool", KindBool},
		{"uint", KindUint},
		{"int", KindInt},
		{"f32", KindFloat32},
		{"f64", KindFloat64},
		{"pad", KindPad},
		{"struct", KindStruct},
		{"tuple", KindTuple},
		{"array", KindArray},
		{"enum", KindEnum},
		{"unknown", Kind(255)},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.kind.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestKindIsSequence(t *testing.T) {
	for _, k := range []Kind{KindStruct, KindTuple, KindArray} {
		if !k.IsSequence() {
			t.Errorf("%s should be a sequence", k)
		}
	}
	if KindEnum.IsSequence() || KindUint.IsSequence() {
		t.Error("enum and uint are not sequences")
	}
}

func TestPolicyString(t *testing.T) {
	if StrictError.String() != "strict" || CatchAll.String() != "catch-all" {
		t.Errorf("got %q, %q", StrictError, CatchAll)
	}
}
