package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || lines != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", lines, err)
	}
}

func TestParseAndFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "zap json line",
			input: `{"level":"info","ts":"2025-10-08T21:01:05.123-0300","msg":"search completed","seq":3,"outcome":"success","caller":"search/client.go:1"}`,
			want:  "21:01:05 INFO search completed outcome=success seq=3",
		},
		{
			name:  "error with nested field",
			input: `{"level":"warn","msg":"search failed","error":"server returned status 500","params":{"numero":"1"}}`,
			want:  `WARN search failed error=server returned status 500 params={"numero":"1"}`,
		},
		{
			name:  "plain text passes through",
			input: "not json at all",
			want:  "not json at all",
		},
		{
			name:  "broken json passes through",
			input: `{"level":"info"`,
			want:  `{"level":"info"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(Parse(tt.input)); got != tt.want {
				t.Errorf("Format(Parse()) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_Level(t *testing.T) {
	e := Parse(`{"level":"error","msg":"boom"}`)
	if e.Level != "ERROR" || e.Message != "boom" || len(e.Fields) != 0 {
		t.Fatalf("Parse = %#v", e)
	}
}
