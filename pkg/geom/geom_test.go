package geom

import (
	"encoding/json"
	"testing"

	"golang.org/x/text/language"
)

func TestSpecAlignAxis(t *testing.T) {
	tests := []struct {
		align   SpecAlign
		axis    Axis
		hasAxis bool
	}{
		{Left, Horizontal, true},
		{Right, Horizontal, true},
		{Top, Vertical, true},
		{Bottom, Vertical, true},
		{Center, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			axis, ok := tt.align.Axis()
			if ok != tt.hasAxis {
				t.Fatalf("Axis() ok = %v, want %v", ok, tt.hasAxis)
			}
			if ok && axis != tt.axis {
				t.Errorf("Axis() = %v, want %v", axis, tt.axis)
			}
			if !tt.align.Fits(tt.axis) {
				t.Errorf("Fits(%v) = false", tt.axis)
			}
		})
	}

	if Left.Fits(Vertical) {
		t.Error("left should not fit the vertical axis")
	}
	if !Center.Fits(Vertical) || !Center.Fits(Horizontal) {
		t.Error("center should fit both axes")
	}
}

func TestLayoutSystemMapping(t *testing.T) {
	tests := []struct {
		name string
		sys  LayoutSystem
		in   SpecAlign
		axis GenAxis
		want GenAlign
	}{
		{"ltr left", DefaultSystem, Left, Primary, GenStart},
		{"ltr right", DefaultSystem, Right, Primary, GenEnd},
		{"ltr top", DefaultSystem, Top, Secondary, GenStart},
		{"ltr bottom", DefaultSystem, Bottom, Secondary, GenEnd},
		{"ltr center", DefaultSystem, Center, Primary, GenCenter},
		{"rtl left", LayoutSystem{RTL, TTB}, Left, Primary, GenEnd},
		{"rtl right", LayoutSystem{RTL, TTB}, Right, Primary, GenStart},
		{"btt top", LayoutSystem{LTR, BTT}, Top, Secondary, GenEnd},
		{"vertical text left", LayoutSystem{TTB, RTL}, Left, Secondary, GenEnd},
		{"vertical text top", LayoutSystem{TTB, RTL}, Top, Primary, GenStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sys.GenAlign(tt.in); got != tt.want {
				t.Errorf("GenAlign(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if axis, ok := tt.in.Axis(); ok {
				if got := tt.sys.GenAxis(axis); got != tt.axis {
					t.Errorf("GenAxis(%v) = %v, want %v", axis, got, tt.axis)
				}
			}
		})
	}
}

func TestLayoutSystemValidate(t *testing.T) {
	if _, err := NewLayoutSystem(LTR, TTB); err != nil {
		t.Errorf("ltr,ttb should be valid: %v", err)
	}
	if _, err := NewLayoutSystem(LTR, RTL); err == nil {
		t.Error("ltr,rtl should be rejected")
	}
}

func TestDir(t *testing.T) {
	for _, d := range []Dir{LTR, RTL, TTB, BTT} {
		if d.Inv().Inv() != d {
			t.Errorf("%v.Inv().Inv() = %v", d, d.Inv().Inv())
		}
		if d.Inv().Axis() != d.Axis() {
			t.Errorf("%v.Inv() changed axis", d)
		}
		if d.Inv().IsPositive() == d.IsPositive() {
			t.Errorf("%v.Inv() kept sign", d)
		}
		parsed, err := ParseDir(d.String())
		if err != nil || parsed != d {
			t.Errorf("ParseDir(%q) = %v, %v", d.String(), parsed, err)
		}
	}
}

func TestLayoutAlignGetSet(t *testing.T) {
	a := NewLayoutAlign(GenStart, GenEnd)
	if a.Get(Primary) != GenStart || a.Get(Secondary) != GenEnd {
		t.Fatalf("Get() = %v", a)
	}
	a.Set(Secondary, GenCenter)
	if a.Secondary != GenCenter || a.Primary != GenStart {
		t.Errorf("Set(Secondary) = %v", a)
	}
	if a.String() != "start,center" {
		t.Errorf("String() = %q", a.String())
	}
	parsed, err := ParseLayoutAlign("start, center")
	if err != nil || parsed != a {
		t.Errorf("ParseLayoutAlign() = %v, %v", parsed, err)
	}
	if _, err := ParseLayoutAlign("start"); err == nil {
		t.Error("ParseLayoutAlign(\"start\") should fail")
	}
}

func TestParseSpecAlign(t *testing.T) {
	for _, a := range []SpecAlign{Left, Right, Top, Bottom, Center} {
		got, err := ParseSpecAlign(a.String())
		if err != nil || got != a {
			t.Errorf("ParseSpecAlign(%q) = %v, %v", a.String(), got, err)
		}
	}
	if _, err := ParseSpecAlign("middle"); err == nil {
		t.Error("ParseSpecAlign(\"middle\") should fail")
	}
}

func TestJSONText(t *testing.T) {
	in := struct {
		Align LayoutAlign  `json:"align"`
		Sys   LayoutSystem `json:"sys"`
		Req   SpecAlign    `json:"req"`
	}{NewLayoutAlign(GenEnd, GenCenter), LayoutSystem{RTL, TTB}, Bottom}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"align":{"primary":"end","secondary":"center"},"sys":{"primary":"rtl","secondary":"ttb"},"req":"bottom"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var out struct {
		Req SpecAlign `json:"req"`
	}
	if err := json.Unmarshal([]byte(`{"req":"diagonal"}`), &out); err == nil {
		t.Error("unknown alignment should fail to decode")
	}
}

func TestSystemForLanguage(t *testing.T) {
	tests := []struct {
		tag  string
		want LayoutSystem
	}{
		{"en", DefaultSystem},
		{"de-CH", DefaultSystem},
		{"ar", LayoutSystem{RTL, TTB}},
		{"he-IL", LayoutSystem{RTL, TTB}},
		{"fa", LayoutSystem{RTL, TTB}},
		{"az-Latn", DefaultSystem},
		{"az-Arab", LayoutSystem{RTL, TTB}},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := SystemForLanguage(language.MustParse(tt.tag)); got != tt.want {
				t.Errorf("SystemForLanguage(%s) = %v, want %v", tt.tag, got, tt.want)
			}
		})
	}

	if _, _, err := ParseLanguage("not a tag!"); err == nil {
		t.Error("ParseLanguage should reject malformed tags")
	}
}
