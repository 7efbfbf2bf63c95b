package fatura

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestLayoutStore_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := OpenLayoutStore(filepath.Join(dir, "layouts.db"))
	if err != nil {
		t.Fatalf("OpenLayoutStore: %v", err)
	}
	defer s.Close()

	// Missing key => nil, nil so callers fall back to defaults.
	got, err := s.Load("sales_invoices")
	if err != nil {
		t.Fatalf("Load (missing): %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing key; got %#v", got)
	}

	want := []Column{
		{ID: "number", Label: "Number", Visible: true, Width: 140, Order: 0},
		{ID: "total", Label: "Total", Visible: false, Width: 120, Order: 1, Align: AlignRight},
	}
	if err := s.Save("sales_invoices", want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err = s.Load("sales_invoices")
	if err != nil {
		t.Fatalf("Load (after save): %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestLayoutStore_SaveReplacesPrevious(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := OpenLayoutStore(filepath.Join(dir, "layouts.db"))
	if err != nil {
		t.Fatalf("OpenLayoutStore: %v", err)
	}
	defer s.Close()

	first := []Column{{ID: "a", Width: 100}}
	second := []Column{{ID: "a", Width: 200}, {ID: "b", Width: 80}}

	if err := s.Save("t", first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save("t", second); err != nil {
		t.Fatalf("Save (replace): %v", err)
	}

	got, err := s.Load("t")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(second, got) {
		t.Fatalf("replace mismatch:\nwant: %#v\ngot:  %#v", second, got)
	}
}

func TestLayoutStore_CorruptRowFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := OpenLayoutStore(filepath.Join(dir, "layouts.db"))
	if err != nil {
		t.Fatalf("OpenLayoutStore: %v", err)
	}
	defer s.Close()

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO grid_layouts (table_name, columns) VALUES (?, ?)`,
		"broken", "{not json[")
	if err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}

	got, err := s.Load("broken")
	if err != nil {
		t.Fatalf("Load (corrupt): %v", err)
	}
	if got != nil {
		t.Fatalf("corrupt row should read as absent; got %#v", got)
	}
}
