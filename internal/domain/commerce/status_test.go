package commerce

import (
	"errors"
	"testing"
)

func TestParseCatalogStatus(t *testing.T) {
	for _, raw := range []string{"DRAFT", "BROADCASTED", "SOLD"} {
		status, err := ParseCatalogStatus(raw)
		if err != nil {
			t.Fatalf("ParseCatalogStatus(%q) error = %v", raw, err)
		}
		if string(status) != raw {
			t.Fatalf("ParseCatalogStatus(%q) = %q", raw, status)
		}
	}

	if _, err := ParseCatalogStatus("draft"); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("ParseCatalogStatus(lowercase) error = %v", err)
	}
	if _, err := ParseCatalogStatus(""); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("ParseCatalogStatus(empty) error = %v", err)
	}
}

func TestCheckTransition(t *testing.T) {
	cases := []struct {
		from CatalogStatus
		to   CatalogStatus
		ok   bool
	}{
		{StatusDraft, StatusBroadcasted, true},
		{StatusBroadcasted, StatusSold, true},
		{StatusDraft, StatusSold, false},
		{StatusSold, StatusDraft, false},
		{StatusBroadcasted, StatusDraft, false},
		{StatusSold, StatusSold, false},
	}

	for _, tc := range cases {
		err := CheckTransition(tc.from, tc.to)
		if tc.ok && err != nil {
			t.Fatalf("CheckTransition(%s, %s) error = %v", tc.from, tc.to, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("CheckTransition(%s, %s) error = %v, want ErrInvalidTransition", tc.from, tc.to, err)
		}
	}
}

func TestParseNetworkEventType(t *testing.T) {
	if _, err := ParseNetworkEventType("OUTGOING_CATALOG"); err != nil {
		t.Fatalf("ParseNetworkEventType(outgoing) error = %v", err)
	}
	if _, err := ParseNetworkEventType("INCOMING_BID"); err != nil {
		t.Fatalf("ParseNetworkEventType(incoming) error = %v", err)
	}
	if _, err := ParseNetworkEventType("SOMETHING"); !errors.Is(err, ErrUnknownEventType) {
		t.Fatalf("ParseNetworkEventType(unknown) error = %v", err)
	}
}
