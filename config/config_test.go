package config

import "testing"

func TestSetConfigBumpsGeneration(t *testing.T) {
	s := NewStore()
	g0 := s.Generation()
	c := s.Snapshot()
	c.WPM = 30
	if err := s.SetConfig(c); err != nil {
		t.Fatal(err)
	}
	if s.Generation() == g0 {
		t.Fatal("generation did not advance after SetConfig")
	}
	if got := s.Snapshot().WPM; got != 30 {
		t.Fatalf("wpm = %d, want 30", got)
	}
}

func TestSetConfigRejectsInvalid(t *testing.T) {
	s := NewStore()
	c := s.Snapshot()
	c.WPM = 200
	if err := s.SetConfig(c); err == nil {
		t.Fatal("want error for out-of-range wpm")
	}
}

func TestPresetActivateCopyResetName(t *testing.T) {
	s := NewStore()
	if err := s.SetName(2, "contest"); err != nil {
		t.Fatal(err)
	}
	p, err := s.Get(2)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "contest" {
		t.Fatalf("name = %q, want contest", p.Name)
	}

	if err := s.Activate(2); err != nil {
		t.Fatal(err)
	}
	if s.ActiveIndex() != 2 {
		t.Fatalf("active index = %d, want 2", s.ActiveIndex())
	}

	if err := s.Copy(2, 3); err != nil {
		t.Fatal(err)
	}
	got, _ := s.Get(3)
	if got.Name != "contest" {
		t.Fatalf("copy = %+v, want name contest", got)
	}

	if err := s.Reset(2); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Get(2)
	if got.Name == "contest" {
		t.Fatal("reset should reinstate the default name, not keep the renamed value")
	}
}

func TestPresetIndexOutOfRange(t *testing.T) {
	s := NewStore()
	if _, err := s.Get(PresetCount); err == nil {
		t.Fatal("want error for out-of-range preset index")
	}
	if err := s.Activate(-1); err == nil {
		t.Fatal("want error for negative preset index")
	}
}

func TestRegistryLookupByPathAndShortName(t *testing.T) {
	s := NewStore()
	pLong, ok := Lookup("iambic.wpm")
	if !ok {
		t.Fatal("iambic.wpm not found")
	}
	pShort, ok := Lookup("wpm")
	if !ok {
		t.Fatal("wpm not found")
	}
	if pLong != pShort {
		t.Fatal("dotted path and short name should resolve to the same parameter")
	}
	if err := SetByName(s, "wpm", 22); err != nil {
		t.Fatal(err)
	}
	if got := s.Snapshot().WPM; got != 22 {
		t.Fatalf("wpm = %d, want 22", got)
	}
}

func TestRegistrySetByNameRejectsOutOfRange(t *testing.T) {
	s := NewStore()
	if err := SetByName(s, "weight", 10); err == nil {
		t.Fatal("want error for weight below registered minimum")
	}
}

func TestRegistryUnknownName(t *testing.T) {
	s := NewStore()
	if err := SetByName(s, "no_such_param", 1); err == nil {
		t.Fatal("want error for unknown parameter")
	}
}
