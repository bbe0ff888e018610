package tds

import "testing"

func TestParseVersion(t *testing.T) {
    cases := map[string]int{"4.2": TDS42, "5.0": TDS50, "7.0": TDS70, "8.0": TDS80}
    for s, want := range cases {
        got, err := ParseVersion(s)
        if err != nil || got != want {
            t.Fatalf("ParseVersion(%q) = %d, %v; want %d", s, got, err, want)
        }
    }
    if _, err := ParseVersion("6.5"); err == nil {
        t.Fatalf("expected error for unsupported version")
    }
}

func TestVersionOrdering(t *testing.T) {
    if !(TDS42 < TDS50 && TDS50 < TDS70 && TDS70 < TDS80) {
        t.Fatalf("version constants must be ordered")
    }
}

func TestParseServerType(t *testing.T) {
    if st, err := ParseServerType("sqlserver"); err != nil || st != SQLServer {
        t.Fatalf("sqlserver: %d %v", st, err)
    }
    if st, err := ParseServerType("sybase"); err != nil || st != Sybase {
        t.Fatalf("sybase: %d %v", st, err)
    }
    if _, err := ParseServerType("oracle"); err == nil {
        t.Fatalf("expected error for unknown server type")
    }
}
