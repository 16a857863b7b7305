package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "op and kind",
			err:  &Error{Op: "uniprot.next", Kind: KindIncompleteRecord},
			want: "uniprot.next: incomplete record",
		},
		{
			name: "field context",
			err:  MalformedField("uniprot.decode", "PE", "9: ..."),
			want: "uniprot.decode: malformed field [PE]: 9: ...",
		},
		{
			name: "wrapped cause",
			err:  NoInput("reader.open", "data.dat", fmt.Errorf("no such file")),
			want: "reader.open: no input: data.dat: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetKind(t *testing.T) {
	inner := MissingField("uniprot.next", "OX")
	wrapped := Wrap("pipeline.run", inner)

	if got := GetKind(wrapped); got != KindMissingField {
		t.Errorf("GetKind(wrapped) = %v, want KindMissingField", got)
	}
	if !IsKind(wrapped, KindMissingField) {
		t.Error("IsKind(wrapped, KindMissingField) = false, want true")
	}
	if IsKind(wrapped, KindNoInput) {
		t.Error("IsKind(wrapped, KindNoInput) = true, want false")
	}
	if got := GetKind(fmt.Errorf("plain")); got != KindUnknown {
		t.Errorf("GetKind(plain) = %v, want KindUnknown", got)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap("op", nil) != nil {
		t.Error("Wrap(op, nil) should be nil")
	}
	if WrapMsg("op", "msg", nil) != nil {
		t.Error("WrapMsg(op, msg, nil) should be nil")
	}
}

func TestUnknownTaxonDBContext(t *testing.T) {
	err := UnknownTaxonDB("uniprot.species", "FlyBase_TaxID")
	if !strings.Contains(err.Error(), "FlyBase_TaxID") {
		t.Errorf("error %q should name the qualifier", err.Error())
	}
	if err.Prefix != "OX" {
		t.Errorf("Prefix = %q, want OX", err.Prefix)
	}
}
