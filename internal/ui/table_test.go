package ui

import "testing"

func TestTableAlignsColumns(t *testing.T) {
	tbl := NewTable(2)
	tbl.AddRow("a", "one")
	tbl.AddRow("longer", "two")

	got := tbl.String()
	want := "a       one\nlonger  two\n"
	if got != want {
		t.Fatalf("table output = %q, want %q", got, want)
	}
}

func TestTableDropsExtraCells(t *testing.T) {
	tbl := NewTable(1)
	tbl.AddRow("kept", "dropped")

	if got := tbl.String(); got != "kept\n" {
		t.Fatalf("table output = %q", got)
	}
}

func TestTableEmpty(t *testing.T) {
	if got := NewTable(3).String(); got != "" {
		t.Fatalf("empty table output = %q", got)
	}
}

func TestListDefaults(t *testing.T) {
	l := NewList()
	l.Add("first")
	l.Add("second")

	got := l.String()
	want := "  • first\n  • second\n"
	if got != want {
		t.Fatalf("list output = %q, want %q", got, want)
	}
}

func TestListCustomIndentAndBullet(t *testing.T) {
	l := NewList()
	l.SetIndent("")
	l.SetBullet("-")
	l.Add("item")

	if got := l.String(); got != "- item\n" {
		t.Fatalf("list output = %q", got)
	}
}
