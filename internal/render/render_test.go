package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/bft-labs/phonedata/pkg/phonedata"
)

var beijing = phonedata.PhoneInfo{
	Province: "北京",
	City:     "北京",
	ZipCode:  "100000",
	AreaCode: "010",
	CardType: "中国移动",
}

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(&buf, JSON)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := p.Result("13800138000", beijing); err != nil {
		t.Fatalf("Result() error = %v", err)
	}
	if err := p.Failure("1990000", fmt.Errorf("wrapped: %w", phonedata.ErrNotFound)); err != nil {
		t.Fatalf("Failure() error = %v", err)
	}
	if err := p.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}

	var ok map[string]string
	if err := json.Unmarshal([]byte(lines[0]), &ok); err != nil {
		t.Fatalf("decode %q: %v", lines[0], err)
	}
	want := map[string]string{
		"number":    "13800138000",
		"province":  "北京",
		"city":      "北京",
		"zip_code":  "100000",
		"area_code": "010",
		"card_type": "中国移动",
	}
	for k, v := range want {
		if ok[k] != v {
			t.Errorf("%s = %q, want %q", k, ok[k], v)
		}
	}
	if _, has := ok["error"]; has {
		t.Errorf("successful result carries error field: %q", lines[0])
	}

	var failed map[string]string
	if err := json.Unmarshal([]byte(lines[1]), &failed); err != nil {
		t.Fatalf("decode %q: %v", lines[1], err)
	}
	if failed["number"] != "1990000" || !strings.Contains(failed["error"], "not found") {
		t.Errorf("failure line = %q", lines[1])
	}
	if _, has := failed["province"]; has {
		t.Errorf("failure line carries record fields: %q", lines[1])
	}
}

func TestPrinter_Text(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(&buf, Text)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	p.Result("13800138000", beijing)
	p.Failure("abc1234", phonedata.ErrInvalidQuery)
	if buf.Len() != 0 {
		t.Errorf("text output written before Flush: %q", buf.String())
	}
	if err := p.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	out := buf.String()
	for _, s := range []string{"13800138000", "100000", "010", "中国移动", "abc1234", "error:"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "xml"); err == nil {
		t.Error("New() expected error for unknown format")
	}
}
