package csvformat

import (
	"reflect"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   Format
	}{
		{"stickered", []string{"Sticker #", "Owner's Name", "Email"}, FormatStickered},
		{"waitlist", []string{"Requestor", "Email", "Housing Assignment", "Graduation Year"}, FormatWaitlist},
		{"simple", []string{"Name", "Email"}, FormatSimple},
		{"heuristic", []string{"Full name", "Contact email", "Dorm housing"}, FormatHeuristic},
		// Owner's Name takes priority even when waitlist columns are present.
		{"stickered wins", []string{"Owner's Name", "Requestor", "Housing Assignment", "Email"}, FormatStickered},
		// Requestor without Housing Assignment is not a waitlist sheet.
		{"partial waitlist", []string{"Requestor", "Email"}, FormatHeuristic},
	}
	for _, tt := range tests {
		if got := DetectFormat(tt.header); got != tt.want {
			t.Errorf("%s: DetectFormat = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestGraduationYear(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"2027", "2027"},
		{"Spring 2027", "2027"},
		{"2027 (May)", "2027"},
		{"class of '27", ""},
		{"", ""},
		{"12345", ""},
		{"id 12345 grad 2028", "2028"},
		{"graduating", ""},
	}
	for _, tt := range tests {
		if got := GraduationYear(tt.raw); got != tt.want {
			t.Errorf("GraduationYear(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestExtractDonorsWaitlist(t *testing.T) {
	rows := [][]string{
		{"Requestor", "Email", "Housing Assignment", "Graduation Year"},
		{"Ada Lovelace", "ADA@example.edu", "North Hall 12", "Spring 2027"},
		{"Grace Hopper", "grace@example.edu", "West Hall 3", "2026"},
		// Same email as the first row, different housing: later row wins.
		{"Ada Lovelace", "ada@example.edu", "South Hall 44", "Spring 2027"},
	}

	got := ExtractDonors(rows)
	want := []DonorRecord{
		{Name: "Ada Lovelace", Email: "ada@example.edu", Housing: "South Hall 44", GradYear: "2027", Row: 3},
		{Name: "Grace Hopper", Email: "grace@example.edu", Housing: "West Hall 3", GradYear: "2026", Row: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractDonors = %+v, want %+v", got, want)
	}
}

func TestExtractDonorsStickered(t *testing.T) {
	rows := [][]string{
		{"Sticker #", "Owner's Name", "Email", "Item"},
		{"101", "Alan Turing", "Alan@Example.edu", "Desk lamp"},
		{"102", "", "nobody@example.edu", "Rug"},
		{"103", "No Email", "", "Mirror"},
	}

	got := ExtractDonors(rows)
	if len(got) != 1 {
		t.Fatalf("expected 1 donor, got %d", len(got))
	}
	if got[0].Name != "Alan Turing" || got[0].Email != "alan@example.edu" {
		t.Errorf("unexpected record %+v", got[0])
	}
	if got[0].Housing != "" || got[0].GradYear != "" {
		t.Errorf("stickered format must not carry housing or grad year: %+v", got[0])
	}
}

func TestExtractDonorsHeuristic(t *testing.T) {
	rows := [][]string{
		{"Student Name", "School Email", "Housing Location", "Expected Year"},
		{" Katherine Johnson ", " KJ@example.edu ", "East Hall", "May 2028"},
	}

	got := ExtractDonors(rows)
	if len(got) != 1 {
		t.Fatalf("expected 1 donor, got %d", len(got))
	}
	want := DonorRecord{Name: "Katherine Johnson", Email: "kj@example.edu", Housing: "East Hall", GradYear: "2028", Row: 1}
	if got[0] != want {
		t.Errorf("got %+v, want %+v", got[0], want)
	}
}

func TestExtractDonorsShortRows(t *testing.T) {
	rows := [][]string{
		{"Name", "Email", "Housing"},
		{"Short Row", "short@example.edu"},
	}

	got := ExtractDonors(rows)
	if len(got) != 1 {
		t.Fatalf("expected 1 donor, got %d", len(got))
	}
	if got[0].Housing != "" {
		t.Errorf("missing column must project to empty, got %q", got[0].Housing)
	}
}

func TestExtractDonorsEmptyInput(t *testing.T) {
	if got := ExtractDonors(nil); got != nil {
		t.Errorf("expected nil for nil input, got %+v", got)
	}
	if got := ExtractDonors([][]string{{"Name", "Email"}}); got != nil {
		t.Errorf("expected nil for header-only input, got %+v", got)
	}
}

func TestExtractAccounting(t *testing.T) {
	rows := [][]string{
		{"Name", "Email"},
		{"Ada Lovelace", "ada@example.edu"},
		{"", "noname@example.edu"},
		{"Ada Again", "ADA@example.edu"},
		{"Grace Hopper", "grace@example.edu"},
	}

	ext := Extract(rows)
	if ext.Format != FormatSimple {
		t.Errorf("Format = %q, want simple", ext.Format)
	}
	if ext.DataRows != 4 {
		t.Errorf("DataRows = %d, want 4", ext.DataRows)
	}
	if len(ext.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(ext.Records))
	}
	if ext.Records[0].Name != "Ada Again" {
		t.Errorf("later duplicate row should win, got %q", ext.Records[0].Name)
	}
	if ext.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", ext.Duplicates)
	}
	if !reflect.DeepEqual(ext.InvalidRows, []int{2}) {
		t.Errorf("InvalidRows = %v, want [2]", ext.InvalidRows)
	}
}
