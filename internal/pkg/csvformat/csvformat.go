// Package csvformat normalizes the known donor spreadsheet layouts into a
// canonical donor record. The store receives CSVs exported from several
// historical tracking sheets; each is detected by its header row and
// projected through an explicit field mapping.
package csvformat

import (
	"regexp"
	"strings"
)

// Format identifies one of the known spreadsheet layouts.
type Format string

const (
	// FormatStickered is the sticker-tagged item sheet: donor is
	// "Owner's Name" plus "Email", no housing or graduation year.
	FormatStickered Format = "stickered"
	// FormatWaitlist is the fridge waitlist export: "Requestor", "Email",
	// "Housing Assignment" and "Graduation Year".
	FormatWaitlist Format = "waitlist"
	// FormatSimple is a plain "Name"/"Email" sheet with optional
	// "Housing" and "Grad Year" columns.
	FormatSimple Format = "simple"
	// FormatHeuristic matches columns by substring when no named layout
	// applies.
	FormatHeuristic Format = "heuristic"
)

// DonorRecord is the canonical projection of one spreadsheet row.
// Email is already trimmed and lowercased. Row is the 1-based data row
// the record came from; for deduplicated emails it points at the last
// contributing row.
type DonorRecord struct {
	Name     string
	Email    string
	Housing  string
	GradYear string
	Row      int
}

var digitRun = regexp.MustCompile(`[0-9]+`)

// GraduationYear extracts the first run of exactly four digits found
// anywhere in raw. This is lenient extraction, not validation: "Spring
// 2027" and "2027 (May)" both yield "2027", and a value with no 4-digit
// run yields "".
func GraduationYear(raw string) string {
	for _, run := range digitRun.FindAllString(raw, -1) {
		if len(run) == 4 {
			return run
		}
	}
	return ""
}

// DetectFormat picks the layout for a header row. Detection order matters:
// the stickered sheet also carries an Email column, and the waitlist sheet
// also carries Name-like columns, so the most specific headers win.
func DetectFormat(header []string) Format {
	has := func(name string) bool {
		for _, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return true
			}
		}
		return false
	}

	switch {
	case has("Owner's Name"):
		return FormatStickered
	case has("Requestor") && has("Housing Assignment"):
		return FormatWaitlist
	case has("Name") && has("Email"):
		return FormatSimple
	default:
		return FormatHeuristic
	}
}

// columnIndex finds the index of the exact (case-insensitive) header name,
// or -1.
func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// columnIndexContaining finds the first header whose lowercased name
// contains any of the given substrings, or -1.
func columnIndexContaining(header []string, substrings ...string) int {
	for i, h := range header {
		lower := strings.ToLower(h)
		for _, sub := range substrings {
			if strings.Contains(lower, sub) {
				return i
			}
		}
	}
	return -1
}

// mapping holds resolved column positions for one layout. A position of -1
// means the layout has no such column.
type mapping struct {
	name     int
	email    int
	housing  int
	gradYear int
}

// resolveMapping builds the column mapping for a detected format.
func resolveMapping(format Format, header []string) mapping {
	switch format {
	case FormatStickered:
		return mapping{
			name:     columnIndex(header, "Owner's Name"),
			email:    columnIndex(header, "Email"),
			housing:  -1,
			gradYear: -1,
		}
	case FormatWaitlist:
		return mapping{
			name:     columnIndex(header, "Requestor"),
			email:    columnIndex(header, "Email"),
			housing:  columnIndex(header, "Housing Assignment"),
			gradYear: columnIndex(header, "Graduation Year"),
		}
	case FormatSimple:
		return mapping{
			name:     columnIndex(header, "Name"),
			email:    columnIndex(header, "Email"),
			housing:  columnIndex(header, "Housing"),
			gradYear: columnIndex(header, "Grad Year"),
		}
	default:
		return mapping{
			name:     columnIndexContaining(header, "name"),
			email:    columnIndexContaining(header, "email"),
			housing:  columnIndexContaining(header, "housing"),
			gradYear: columnIndexContaining(header, "grad", "year"),
		}
	}
}

// cell returns the trimmed value at index i, or "" when the column is
// absent or the row is short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// project applies a mapping to one row. ok is false when the row does not
// yield both a name and an email.
func (m mapping) project(row []string) (DonorRecord, bool) {
	rec := DonorRecord{
		Name:     cell(row, m.name),
		Email:    strings.ToLower(cell(row, m.email)),
		Housing:  cell(row, m.housing),
		GradYear: GraduationYear(cell(row, m.gradYear)),
	}
	if rec.Name == "" || rec.Email == "" {
		return DonorRecord{}, false
	}
	return rec, true
}

// Extraction is the full result of normalizing one CSV batch.
type Extraction struct {
	Format  Format
	Records []DonorRecord
	// DataRows is the number of non-header rows in the input.
	DataRows int
	// InvalidRows lists 1-based data row numbers that did not yield both
	// a name and an email.
	InvalidRows []int
	// Duplicates counts in-batch rows collapsed into an earlier record
	// because they shared an email.
	Duplicates int
}

// Extract projects raw CSV rows (header first) into canonical donor
// records. Rows without a derivable name and email are reported in
// InvalidRows. Records are deduplicated by lowercased email within the
// batch; when the same email appears more than once the later row's
// values win, keeping the position of the first occurrence.
func Extract(rows [][]string) Extraction {
	if len(rows) == 0 {
		return Extraction{Format: FormatHeuristic}
	}

	header := rows[0]
	format := DetectFormat(header)
	m := resolveMapping(format, header)

	ext := Extraction{
		Format:   format,
		DataRows: len(rows) - 1,
	}
	seen := make(map[string]int)
	for n, row := range rows[1:] {
		rec, ok := m.project(row)
		if !ok {
			ext.InvalidRows = append(ext.InvalidRows, n+1)
			continue
		}
		rec.Row = n + 1
		if i, dup := seen[rec.Email]; dup {
			ext.Records[i] = rec
			ext.Duplicates++
			continue
		}
		seen[rec.Email] = len(ext.Records)
		ext.Records = append(ext.Records, rec)
	}
	return ext
}

// ExtractDonors is Extract reduced to the record list.
func ExtractDonors(rows [][]string) []DonorRecord {
	return Extract(rows).Records
}
