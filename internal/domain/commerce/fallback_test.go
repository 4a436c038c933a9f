package commerce

import "testing"

func TestParseTranscriptFull(t *testing.T) {
	listing := ParseTranscript("I have 200 kg of fresh tomatoes harvested this morning, asking Rs 1800 per quintal.", "en")

	if listing.Engine != EngineFallback {
		t.Fatalf("Engine = %q", listing.Engine)
	}
	if listing.Quantity != 200 || listing.Unit != "kg" {
		t.Fatalf("quantity = %v %s, want 200 kg", listing.Quantity, listing.Unit)
	}
	if listing.Price != 1800 {
		t.Fatalf("price = %v, want 1800", listing.Price)
	}
	if listing.Crop != "tomato" {
		t.Fatalf("crop = %q, want tomato", listing.Crop)
	}
	if listing.Currency != "INR" {
		t.Fatalf("currency = %q", listing.Currency)
	}
	if err := listing.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestParseTranscriptRupeeSymbol(t *testing.T) {
	listing := ParseTranscript("Selling 50 quintals of grade A onions at ₹2,200 per quintal.", "en")

	if listing.Price != 2200 {
		t.Fatalf("price = %v, want 2200", listing.Price)
	}
	if listing.Quantity != 50 || listing.Unit != "quintal" {
		t.Fatalf("quantity = %v %s, want 50 quintal", listing.Quantity, listing.Unit)
	}
	if listing.Crop != "onion" {
		t.Fatalf("crop = %q, want onion", listing.Crop)
	}
}

func TestParseTranscriptPriceSuffix(t *testing.T) {
	listing := ParseTranscript("ripe mango 30 crates, 1200 rupees per crate", "en")

	if listing.Price != 1200 {
		t.Fatalf("price = %v, want 1200", listing.Price)
	}
	if listing.Unit != "crate" {
		t.Fatalf("unit = %q, want crate", listing.Unit)
	}
	if listing.Crop != "mango" {
		t.Fatalf("crop = %q, want mango", listing.Crop)
	}
}

func TestParseTranscriptDefaults(t *testing.T) {
	listing := ParseTranscript("kuch bhi bech do", "hi")

	if listing.Quantity != fallbackQuantity || listing.Unit != fallbackUnit {
		t.Fatalf("quantity = %v %s, want defaults", listing.Quantity, listing.Unit)
	}
	if listing.Price != fallbackPrice {
		t.Fatalf("price = %v, want default", listing.Price)
	}
	if listing.Descriptor == "" {
		t.Fatalf("descriptor is empty")
	}
	if err := listing.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestParseTranscriptTags(t *testing.T) {
	listing := ParseTranscript("fresh organic turmeric, export ready", "en")

	want := map[string]bool{"fresh": true, "organic": true, "export-quality": true}
	if len(listing.Tags) != len(want) {
		t.Fatalf("tags = %v", listing.Tags)
	}
	for _, tag := range listing.Tags {
		if !want[tag] {
			t.Fatalf("unexpected tag %q in %v", tag, listing.Tags)
		}
	}
}
