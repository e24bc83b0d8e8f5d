package profile

import (
	"testing"

	"gioui.org/layout"
	"gioui.org/op"
)

func TestOptSet(t *testing.T) {
	var p Opt
	for _, tc := range []struct {
		in   string
		want Opt
		err  bool
	}{
		{in: "CPU", want: CPU},
		{in: " gio ", want: Gio},
		{in: "", want: None},
		{in: "heap", err: true},
	} {
		err := p.Set(tc.in)
		if tc.err {
			if err == nil {
				t.Errorf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil || p != tc.want {
			t.Errorf("%q: got %v, %v", tc.in, p, err)
		}
	}
	if p.Type() != "profile" {
		t.Errorf("type %q", p.Type())
	}
}

func TestNoneProfiler(t *testing.T) {
	pf := None.NewProfiler(nil)
	pf.Start()
	pf.Record(layout.Context{Ops: new(op.Ops)})
	pf.Stop()
}
