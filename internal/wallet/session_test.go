package wallet

import (
	"errors"
	"testing"
)

const (
	ethAddr = "0xb548D4C0aE3b2b1f0A0fA6C1dF36e4F0B1C2D3E4"
	solAddr = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
)

func TestEthereumVerifier(t *testing.T) {
	v := EthereumVerifier{}
	if !v.ValidAddress(ethAddr) {
		t.Fatal("expected valid address")
	}
	for _, bad := range []string{"", "0x123", "b548D4C0aE3b2b1f0A0fA6C1dF36e4F0B1C2D3E4", solAddr} {
		if v.ValidAddress(bad) {
			t.Fatalf("expected %q to be invalid", bad)
		}
	}
	if got := v.Short(ethAddr); got != "0xb548..." {
		t.Fatalf("unexpected short form %q", got)
	}
}

func TestSolanaVerifier(t *testing.T) {
	v := SolanaVerifier{}
	if !v.ValidAddress(solAddr) {
		t.Fatal("expected valid address")
	}
	for _, bad := range []string{"", "not-base58-0OIl", ethAddr, "11111111111111111111111111111111"} {
		if v.ValidAddress(bad) {
			t.Fatalf("expected %q to be invalid", bad)
		}
	}
}

func TestConnectorResolve(t *testing.T) {
	eth, err := NewConnector("ethereum", true)
	if err != nil {
		t.Fatal(err)
	}
	noDemo, _ := NewConnector("ethereum", false)

	cases := []struct {
		name string
		c    *Connector
		in   Session
		want bool
	}{
		{"valid wallet", eth, Session{FID: "123", Address: ethAddr}, true},
		{"missing fid", eth, Session{Address: ethAddr}, false},
		{"missing address", eth, Session{FID: "123"}, false},
		{"wrong ecosystem address", eth, Session{FID: "123", Address: solAddr}, false},
		{"demo allowed", eth, Session{FID: DemoFID}, true},
		{"demo disabled", noDemo, Session{FID: DemoFID}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.c.Resolve(tc.in)
			if got.Connected() != tc.want {
				t.Fatalf("connected=%v want %v", got.Connected(), tc.want)
			}
			if got.Ecosystem != Ethereum {
				t.Fatalf("ecosystem should be stamped, got %q", got.Ecosystem)
			}
		})
	}
}

func TestSolanaConnector(t *testing.T) {
	c, err := NewConnector("solana", false)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Resolve(Session{FID: "7", Address: solAddr}).Connected() {
		t.Fatal("expected solana wallet to connect")
	}
}

func TestUnsupportedEcosystem(t *testing.T) {
	if _, err := NewConnector("dogecoin", true); !errors.Is(err, ErrUnsupportedEcosystem) {
		t.Fatalf("expected ErrUnsupportedEcosystem, got %v", err)
	}
}

func TestLabel(t *testing.T) {
	cases := []struct {
		in   Session
		want string
	}{
		{Session{FID: DemoFID, Username: "ignored"}, "Demo User"},
		{Session{FID: "1", Username: "alice", DisplayName: "Alice"}, "alice"},
		{Session{FID: "1", DisplayName: "Alice"}, "Alice"},
		{Session{FID: "1"}, "FID: 1"},
		{Session{}, "Anonymous"},
	}
	for _, tc := range cases {
		if got := tc.in.Label(); got != tc.want {
			t.Errorf("Label(%+v) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if (Session{}).BettorID() != "" || (Session{FID: "9"}).BettorID() != "fid:9" {
		t.Fatal("unexpected bettor ids")
	}
}
