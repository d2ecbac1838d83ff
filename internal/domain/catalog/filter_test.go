package catalog

import "testing"

func filterFixture() []Animal {
	return []Animal{
		{ID: 1, Kind: "狗", Sex: SexMale, Place: "臺北市動物之家"},
		{ID: 2, Kind: "貓", Sex: SexFemale, Place: "新北市政府動物保護防疫處"},
		{ID: 3, Kind: "其他", Sex: SexUnknown, Place: "臺北市動物之家"},
	}
}

func TestApplyZeroFilter(t *testing.T) {
	animals := filterFixture()
	got := Apply(animals, Filter{})
	if len(got) != len(animals) {
		t.Fatalf("len = %d, want %d", len(got), len(animals))
	}
}

func TestApplyArea(t *testing.T) {
	got := Apply(filterFixture(), Filter{Area: "臺北"})
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	for _, a := range got {
		if a.ID == 2 {
			t.Error("id 2 no es de 臺北")
		}
	}
}

func TestApplyKind(t *testing.T) {
	cases := []struct {
		kind   Kind
		wantID int
	}{
		{KindDog, 1},
		{KindCat, 2},
		{KindOther, 3},
	}
	for _, tc := range cases {
		got := Apply(filterFixture(), Filter{Kind: tc.kind})
		if len(got) != 1 || got[0].ID != tc.wantID {
			t.Errorf("kind=%s: got %v, want solo id %d", tc.kind, got, tc.wantID)
		}
	}
}

func TestApplySex(t *testing.T) {
	got := Apply(filterFixture(), Filter{Sex: SexFemale})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("sex=F: got %v", got)
	}
}

func TestApplyCombined(t *testing.T) {
	got := Apply(filterFixture(), Filter{Area: "臺北", Kind: KindDog})
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("combinado: got %v", got)
	}

	got = Apply(filterFixture(), Filter{Area: "臺北", Kind: KindCat})
	if len(got) != 0 {
		t.Fatalf("sin coincidencias: got %v", got)
	}
}

func TestParseSex(t *testing.T) {
	cases := map[string]Sex{
		"m": SexMale, "M": SexMale, "male": SexMale,
		"f": SexFemale, "female": SexFemale,
		"n": SexUnknown, "unknown": SexUnknown,
		"": "", "x": "",
	}
	for in, want := range cases {
		if got := ParseSex(in); got != want {
			t.Errorf("ParseSex(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"cat": KindCat, "Dog": KindDog, "other": KindOther,
		"": "", "bird": "",
	}
	for in, want := range cases {
		if got := ParseKind(in); got != want {
			t.Errorf("ParseKind(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf("貓"); got != KindCat {
		t.Errorf("貓 => %q", got)
	}
	if got := KindOf("狗"); got != KindDog {
		t.Errorf("狗 => %q", got)
	}
	if got := KindOf("兔"); got != KindOther {
		t.Errorf("兔 => %q", got)
	}
}
