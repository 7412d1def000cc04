package cli

import (
	"os"
	"reflect"
	"testing"
)

func TestParseGlobalFlagsHost(t *testing.T) {
	os.Unsetenv("ISSUETRACK_HOST")
	gf, remaining := parseGlobalFlags([]string{"--host", "http://x:1234", "list"})
	if gf.host != "http://x:1234" {
		t.Errorf("host: want http://x:1234, got %s", gf.host)
	}
	if len(remaining) != 1 || remaining[0] != "list" {
		t.Errorf("remaining: want [list], got %v", remaining)
	}
}

func TestParseGlobalFlagsHostEquals(t *testing.T) {
	os.Unsetenv("ISSUETRACK_HOST")
	gf, _ := parseGlobalFlags([]string{"--host=http://y:9", "stats"})
	if gf.host != "http://y:9" {
		t.Errorf("host: want http://y:9, got %s", gf.host)
	}
}

func TestParseGlobalFlagsPretty(t *testing.T) {
	os.Unsetenv("ISSUETRACK_HOST")
	gf, remaining := parseGlobalFlags([]string{"--pretty", "list"})
	if !gf.pretty {
		t.Error("expected pretty=true")
	}
	if len(remaining) != 1 || remaining[0] != "list" {
		t.Errorf("remaining: want [list], got %v", remaining)
	}
}

func TestParseGlobalFlagsNone(t *testing.T) {
	os.Unsetenv("ISSUETRACK_HOST")
	gf, remaining := parseGlobalFlags([]string{"list"})
	if gf.host != defaultHost {
		t.Errorf("host: want %s, got %s", defaultHost, gf.host)
	}
	if gf.pretty {
		t.Error("expected pretty=false")
	}
	if len(remaining) != 1 || remaining[0] != "list" {
		t.Errorf("remaining: want [list], got %v", remaining)
	}
}

func TestParseGlobalFlagsEnvHost(t *testing.T) {
	t.Setenv("ISSUETRACK_HOST", "http://env:8000")
	gf, _ := parseGlobalFlags([]string{"list"})
	if gf.host != "http://env:8000" {
		t.Errorf("host: want http://env:8000, got %s", gf.host)
	}
}

func TestSplitList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"  ", nil},
		{"Avian", []string{"Avian"}},
		{"Avian,Virology", []string{"Avian", "Virology"}},
		{" Avian , Virology ,", []string{"Avian", "Virology"}},
	}
	for _, c := range cases {
		if got := splitList(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("splitList(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRunUnknownCommand(t *testing.T) {
	os.Unsetenv("ISSUETRACK_HOST")
	if err := Run([]string{"frobnicate"}, "test"); err == nil {
		t.Error("expected error for unknown command")
	}
}
