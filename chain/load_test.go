package chain

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "chain.json", `{
		"spot": 17500,
		"expiry": "28-12-2028",
		"quotes": [
			{"strike": 17400, "call_price": 210.5, "put_price": 95.2},
			{"strike": 17500, "call_price": 150.0, "put_price": 140.3}
		]
	}`)

	ch, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.Spot != 17500 || ch.Expiry != "28-12-2028" {
		t.Fatalf("header mismatch: spot %v expiry %q", ch.Spot, ch.Expiry)
	}
	if len(ch.Quotes) != 2 || ch.Quotes[1].PutPrice != 140.3 {
		t.Fatalf("quotes mismatch: %+v", ch.Quotes)
	}
}

func TestLoadJSONErrors(t *testing.T) {
	if _, err := LoadJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("missing file must fail")
	}

	path := writeFile(t, "chain.json", `{"spot": `)
	if _, err := LoadJSON(path); err == nil {
		t.Fatal("malformed JSON must fail")
	}
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "chain.csv", "strike,call_price,put_price\n17400,210.5,95.2\n17500,150.0,140.3\n")

	ch, err := LoadCSV(path, 17500, "28-12-2028")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ch.Spot != 17500 || ch.Expiry != "28-12-2028" {
		t.Fatalf("header mismatch: spot %v expiry %q", ch.Spot, ch.Expiry)
	}
	if len(ch.Quotes) != 2 || ch.Quotes[0].Strike != 17400 || ch.Quotes[1].PutPrice != 140.3 {
		t.Fatalf("quotes mismatch: %+v", ch.Quotes)
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	if _, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), 100, "28-12-2028"); err == nil {
		t.Fatal("missing file must fail")
	}
}
