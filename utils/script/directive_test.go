package script

import (
	"errors"
	"testing"
)

func TestParse_Load(t *testing.T) {
	directive, ok, err := Parse(2, "load 12")
	if err != nil || !ok {
		t.Fatalf("Expected load to parse, got ok=%v err=%v", ok, err)
	}
	if directive.Kind != Load || directive.Address != 12 || directive.Line != 2 {
		t.Errorf("Expected load 12 at line 2, got %+v", directive)
	}
}

func TestParse_Store(t *testing.T) {
	directive, ok, err := Parse(3, "  store 4   Abc ")
	if err != nil || !ok {
		t.Fatalf("Expected store to parse, got ok=%v err=%v", ok, err)
	}
	if directive.Kind != Store || directive.Address != 4 || directive.Value != 'A' {
		t.Errorf("Expected store 4 'A', got %+v", directive)
	}
}

func TestParse_Print(t *testing.T) {
	for _, target := range []string{TargetRam, TargetSwap, TargetTable, TargetTlb} {
		directive, _, err := Parse(1, "print "+target)
		if err != nil {
			t.Errorf("Expected print %s to parse, got: %v", target, err)
		}
		if directive.Kind != Print || directive.Target != target {
			t.Errorf("Expected print %s, got %+v", target, directive)
		}
	}
}

func TestParse_EmptyLine(t *testing.T) {
	_, ok, err := Parse(5, "   ")
	if ok || err != nil {
		t.Errorf("Expected empty line to be skipped, got ok=%v err=%v", ok, err)
	}
}

func TestParse_ThrowError(t *testing.T) {
	lines := []string{"load", "load abc", "store 4", "store x A", "print", "print disk"}
	for _, line := range lines {
		if _, _, err := Parse(1, line); err == nil {
			t.Errorf("Expected error for %q, got nil", line)
		}
	}
}

func TestParse_UnknownDirective(t *testing.T) {
	_, ok, err := Parse(1, "mcalc 1 2 ADD")

	var unknown *ErrUnknownDirective
	if !ok || !errors.As(err, &unknown) || unknown.Command != "mcalc" {
		t.Errorf("Expected unknown directive error, got ok=%v err=%v", ok, err)
	}
}
