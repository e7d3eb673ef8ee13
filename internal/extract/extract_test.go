package extract

import (
	"strings"
	"testing"

	"solana-wallet-forensics/internal/testutil"
)

func TestAddresses_DedupAndOrder(t *testing.T) {
	a, b, c := testutil.Addr("a"), testutil.Addr("b"), testutil.Addr("c")

	doc := strings.Join([]string{
		"Victim reported transfer to", b, "on Monday.",
		"Funds then moved to", a, "and back to", b + ".",
		"Malformed: 0OIl" + strings.Repeat("x", 30), "and short 9xQeWvG816bUx9EPjHmaT23yvVM2ZWb.",
		"Final hop:", c,
	}, " ")

	got := Addresses(doc)

	want := []string{b, a, c}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("address[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestAddresses_RejectsInvalidAlphabet(t *testing.T) {
	tests := []string{
		"",
		"no addresses here",
		strings.Repeat("1", 31),
		strings.Repeat("2", 45),
		"0" + strings.Repeat("2", 40),
		strings.Repeat("l", 40),
	}
	for _, tt := range tests {
		if got := Addresses(tt); len(got) != 0 {
			t.Errorf("Addresses(%q) = %v, want none", tt, got)
		}
	}
}

func TestAddresses_Delimiters(t *testing.T) {
	a := testutil.Addr("a")
	got := Addresses(`{"wallet":"` + a + `"}`)
	if len(got) != 1 || got[0] != a {
		t.Errorf("expected %s, got %v", a, got)
	}
}
