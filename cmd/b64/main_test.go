package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEncodeCmd(t *testing.T) {
	path := writeFile(t, "in", []byte("foobar"))
	got, err := run(t, "encode", path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Zm9vYmFy\n" {
		t.Fatalf("expected %q, got %q", "Zm9vYmFy\n", got)
	}

	got, err = run(t, "encode", "--mode", "nopad", writeFile(t, "in", []byte("f")))
	if err != nil {
		t.Fatal(err)
	}
	if got != "Zg\n" {
		t.Fatalf("expected %q, got %q", "Zg\n", got)
	}
}

func TestDecodeCmd(t *testing.T) {
	path := writeFile(t, "in", []byte("Zm 9v Ym Fy\n"))
	got, err := run(t, "decode", "--mode", "rfc2045", path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "foobar" {
		t.Fatalf("expected %q, got %q", "foobar", got)
	}

	got, err = run(t, "decode", "--mode", "rfc4648", path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "f" {
		t.Fatalf("expected %q, got %q", "f", got)
	}

	if _, err := run(t, "decode", "--mode", "strict", writeFile(t, "in", []byte("????"))); err == nil {
		t.Fatal("expected an error for undecodable input")
	}
}

func TestModeFlag(t *testing.T) {
	var m modeFlag
	for _, s := range []string{"rfc2045", "strict", "rfc4648", "nopad", "padopt"} {
		if err := m.Set(s); err != nil {
			t.Fatal(err)
		}
		if m.String() != s {
			t.Fatalf("expected %q, got %q", s, m.String())
		}
	}
	if err := m.Set("bogus"); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}
