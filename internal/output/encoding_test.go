package output

import (
	"bytes"
	"encoding/json"
	"testing"
)

type reportFixture struct {
	ReachableFiles []string      `json:"reachableFiles"`
	UnusedExports  []exportEntry `json:"unusedExports"`
}

type exportEntry struct {
	File string `json:"file"`
	Name string `json:"name"`
}

func TestDeterministicEncodeIndented_SortsKeysAlphabetically(t *testing.T) {
	type unsorted struct {
		Zebra string `json:"zebra"`
		Alpha string `json:"alpha"`
	}

	got, err := DeterministicEncodeIndented(unsorted{Zebra: "z", Alpha: "a"}, "  ")
	if err != nil {
		t.Fatalf("DeterministicEncodeIndented() error = %v", err)
	}

	want := "{\n  \"alpha\": \"a\",\n  \"zebra\": \"z\"\n}"
	if string(got) != want {
		t.Errorf("DeterministicEncodeIndented() = %s, want %s", got, want)
	}
}

func TestDeterministicEncodeIndented_NilSliceBecomesEmptyArray(t *testing.T) {
	report := reportFixture{ReachableFiles: nil, UnusedExports: nil}

	got, err := DeterministicEncodeIndented(report, "  ")
	if err != nil {
		t.Fatalf("DeterministicEncodeIndented() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if _, ok := decoded["reachableFiles"].([]interface{}); !ok {
		t.Errorf("reachableFiles should decode as an empty array, got %v (%T)", decoded["reachableFiles"], decoded["reachableFiles"])
	}
	if bytes.Contains(got, []byte("null")) {
		t.Errorf("output should never contain a null list, got: %s", got)
	}
}

func TestDeterministicEncodeIndented_SliceOfStructs(t *testing.T) {
	report := reportFixture{
		ReachableFiles: []string{"src/index.ts"},
		UnusedExports: []exportEntry{
			{File: "src/index.ts", Name: "helper"},
		},
	}

	got, err := DeterministicEncodeIndented(report, "  ")
	if err != nil {
		t.Fatalf("DeterministicEncodeIndented() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	unused, ok := decoded["unusedExports"].([]interface{})
	if !ok || len(unused) != 1 {
		t.Fatalf("unusedExports = %v, want a one-element array", decoded["unusedExports"])
	}
	row, ok := unused[0].(map[string]interface{})
	if !ok || row["file"] != "src/index.ts" || row["name"] != "helper" {
		t.Errorf("unusedExports[0] = %v, want {file: src/index.ts, name: helper}", row)
	}
}

func TestDeterministicEncodeIndented_NilPointerIsNull(t *testing.T) {
	var p *reportFixture
	got, err := DeterministicEncodeIndented(p, "  ")
	if err != nil {
		t.Fatalf("DeterministicEncodeIndented() error = %v", err)
	}
	if string(got) != "null" {
		t.Errorf("DeterministicEncodeIndented(nil pointer) = %s, want null", got)
	}
}

func TestDeterministicEncodeIndented_Consistency(t *testing.T) {
	report := reportFixture{
		ReachableFiles: []string{"b.ts", "a.ts"},
		UnusedExports: []exportEntry{
			{File: "b.ts", Name: "z"},
			{File: "a.ts", Name: "y"},
		},
	}

	first, err := DeterministicEncodeIndented(report, "  ")
	if err != nil {
		t.Fatalf("DeterministicEncodeIndented() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := DeterministicEncodeIndented(report, "  ")
		if err != nil {
			t.Fatalf("DeterministicEncodeIndented() error = %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Errorf("encoding is not deterministic across runs:\n%s\nvs\n%s", first, again)
		}
	}
}
