package policy

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustRecord(t *testing.T, raw string) Record {
	t.Helper()
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal %s: %v", raw, err)
	}
	return rec
}

func TestDecodeResultSet_PreservesFieldOrder(t *testing.T) {
	set, err := DecodeResultSet([]byte(`[
		{"numero": "123", "zeta": 1, "cliente": "Maria Silva", "alpha": true,
		 "details": {"status": "Ativa", "corretor": "Ana"}}
	]`))
	if err != nil {
		t.Fatalf("DecodeResultSet: %v", err)
	}
	if len(set) != 1 {
		t.Fatalf("len(set) = %d, want 1", len(set))
	}

	if diff := cmp.Diff([]string{"numero", "zeta", "cliente", "alpha", "details"}, set[0].Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	details, ok := set[0].Details()
	if !ok {
		t.Fatal("Details() not found")
	}
	if diff := cmp.Diff([]string{"status", "corretor"}, details.Keys()); diff != "" {
		t.Fatalf("details keys mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeResultSet_EmptyArray(t *testing.T) {
	set, err := DecodeResultSet([]byte(`[]`))
	if err != nil {
		t.Fatalf("DecodeResultSet: %v", err)
	}
	if set == nil || len(set) != 0 {
		t.Fatalf("set = %#v, want empty non-nil", set)
	}
}

func TestDecodeResultSet_RejectsWrongShapes(t *testing.T) {
	cases := map[string]string{
		"object":        `{"numero": "1"}`,
		"scalar items":  `[1, 2]`,
		"truncated":     `[{"numero": "1"}`,
		"trailing data": `[] []`,
		"not json":      `<html>`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeResultSet([]byte(body)); err == nil {
				t.Fatalf("DecodeResultSet(%s) succeeded, want error", body)
			}
		})
	}
}

func TestRecord_KeyUsesNumeroThenID(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`{"numero": "123", "id": "x"}`, "123"},
		{`{"numero": 987}`, "987"},
		{`{"id": "abc"}`, "abc"},
		{`{"numero": null, "id": "abc"}`, "abc"},
		{`{"numero": "", "id": "5"}`, "5"},
		{`{"cliente": "Sem Número"}`, ""},
	}
	for _, tc := range cases {
		if got := mustRecord(t, tc.raw).Key(); got != tc.want {
			t.Errorf("Key(%s) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestRecord_LookupFallsBackToDetails(t *testing.T) {
	rec := mustRecord(t, `{"numero": "1", "details": {"corretor": "Ana", "numero": "x"}}`)

	cases := []struct {
		path string
		want any
	}{
		{"corretor", "Ana"},
		{"numero", "1"},
		{"details.numero", "x"},
	}
	for _, tc := range cases {
		v, ok := rec.Lookup(tc.path)
		if !ok || v != tc.want {
			t.Errorf("Lookup(%q) = %v, %v; want %v, true", tc.path, v, ok, tc.want)
		}
	}
	if _, ok := rec.Lookup("details.missing"); ok {
		t.Fatal("Lookup(details.missing) found a value")
	}
}

func TestRecord_MarshalKeepsOrder(t *testing.T) {
	rec := mustRecord(t, `{"b": 1, "a": [1, "x"], "details": {"z": null, "y": false}}`)
	out, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"b":1,"a":[1,"x"],"details":{"z":null,"y":false}}`
	if string(out) != want {
		t.Fatalf("Marshal = %s, want %s", out, want)
	}
}

func TestRecord_SetKeepsFirstPosition(t *testing.T) {
	var rec Record
	rec.Set("numero", "1")
	rec.Set("cliente", "A")
	rec.Set("numero", "2")

	if diff := cmp.Diff([]string{"numero", "cliente"}, rec.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	if got := rec.Key(); got != "2" {
		t.Fatalf("Key() = %q, want 2", got)
	}
}
