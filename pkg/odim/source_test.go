package odim

import "testing"

func TestParseSourceIdent(t *testing.T) {
	source := "WMO:02588,RAD:SE50,NOD:sekkr,CMT:Kiruna"

	tests := []struct {
		key     string
		want    string
		wantOK  bool
	}{
		{"NOD:", "sekkr", true},
		{"RAD:", "SE50", true},
		{"CMT:", "Kiruna", true},
		{"PLC:", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseSourceIdent(source, tt.key)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ParseSourceIdent(%q) = (%q, %v), want (%q, %v)", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNodOrComment(t *testing.T) {
	v, ok := NodOrComment("WMO:02588,NOD:sekkr,CMT:Kiruna")
	if !ok || v != "sekkr" {
		t.Errorf("NOD present: got (%q, %v), want (sekkr, true)", v, ok)
	}

	v, ok = NodOrComment("WMO:02588,CMT:Kiruna")
	if !ok || v != "Kiruna" {
		t.Errorf("NOD absent, CMT present: got (%q, %v), want (Kiruna, true)", v, ok)
	}

	_, ok = NodOrComment("WMO:02588")
	if ok {
		t.Error("neither NOD nor CMT present: expected not ok")
	}
}

func TestExtractIntoBufferTooSmall(t *testing.T) {
	buf := make([]byte, 3)
	_, err := ExtractInto(buf, "NOD:sekkr", "NOD:")
	if err != ErrBufferTooSmall {
		t.Errorf("expected ErrBufferTooSmall, got %v", err)
	}
}

func TestExtractIntoSuccess(t *testing.T) {
	buf := make([]byte, 16)
	n, err := ExtractInto(buf, "NOD:sekkr", "NOD:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(buf[:n]) != "sekkr" {
		t.Errorf("got %q, want sekkr", buf[:n])
	}
}
