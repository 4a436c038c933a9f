package commerce

import (
	"regexp"
	"strconv"
	"strings"
)

// Deterministic transcript parser used when the hosted translator is
// unavailable. It only needs to be good enough for the demo scenarios:
// pull out a quantity+unit, a rupee price, a known crop and a few tags.

const (
	fallbackQuantity = 100.0
	fallbackUnit     = "kg"
	fallbackPrice    = 1500.0
	fallbackCurrency = "INR"
)

var (
	quantityPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(kilograms?|kilos?|kgs?|quintals?|tonnes?|tons?|dozens?|litres?|liters?|bags?|crates?|boxes?)`)
	pricePattern    = regexp.MustCompile(`(?i)(?:₹|rs\.?|rupees?|inr)\s*(\d+(?:,\d{3})*(?:\.\d+)?)`)
	priceSuffixPattern = regexp.MustCompile(`(?i)(\d+(?:,\d{3})*(?:\.\d+)?)\s*(?:₹|rupees?|rs\.?)`)
)

var cropKeywords = []string{
	"tomato", "onion", "potato", "wheat", "rice", "paddy", "maize",
	"mango", "banana", "grape", "pomegranate", "chilli", "turmeric",
	"cotton", "sugarcane", "groundnut", "soybean", "brinjal", "okra",
}

var tagKeywords = map[string]string{
	"organic":   "organic",
	"fresh":     "fresh",
	"grade a":   "grade-a",
	"grade one": "grade-a",
	"ripe":      "ripe",
	"export":    "export-quality",
	"harvest":   "freshly-harvested",
}

var unitAliases = map[string]string{
	"kilogram": "kg", "kilo": "kg", "kgs": "kg", "kg": "kg",
	"quintal": "quintal", "tonne": "tonne", "ton": "tonne",
	"dozen": "dozen", "litre": "litre", "liter": "litre",
	"bag": "bag", "crate": "crate", "box": "box",
}

// ParseTranscript derives a Listing from a raw voice transcript. It always
// returns a listing that passes Validate.
func ParseTranscript(transcript string, language string) Listing {
	listing := Listing{
		Quantity:   fallbackQuantity,
		Unit:       fallbackUnit,
		Price:      fallbackPrice,
		Currency:   fallbackCurrency,
		Transcript: transcript,
		Language:   strings.TrimSpace(language),
		Engine:     EngineFallback,
	}

	lower := strings.ToLower(transcript)

	if m := quantityPattern.FindStringSubmatch(transcript); m != nil {
		if qty, err := strconv.ParseFloat(m[1], 64); err == nil && qty > 0 {
			listing.Quantity = qty
			listing.Unit = normalizeUnit(m[2])
		}
	}

	if price, ok := parsePrice(transcript); ok {
		listing.Price = price
	}

	for _, crop := range cropKeywords {
		if strings.Contains(lower, crop) {
			listing.Crop = crop
			break
		}
	}

	for keyword, tag := range tagKeywords {
		if strings.Contains(lower, keyword) {
			listing.Tags = append(listing.Tags, tag)
		}
	}
	sortTags(listing.Tags)

	listing.Descriptor = buildDescriptor(listing)
	return listing
}

func parsePrice(transcript string) (float64, bool) {
	m := pricePattern.FindStringSubmatch(transcript)
	if m == nil {
		m = priceSuffixPattern.FindStringSubmatch(transcript)
	}
	if m == nil {
		return 0, false
	}

	raw := strings.ReplaceAll(m[1], ",", "")
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}

func normalizeUnit(raw string) string {
	unit := strings.ToLower(strings.TrimSpace(raw))
	for _, candidate := range []string{unit, strings.TrimSuffix(unit, "s"), strings.TrimSuffix(unit, "es")} {
		if normalized, ok := unitAliases[candidate]; ok {
			return normalized
		}
	}
	return unit
}

func buildDescriptor(listing Listing) string {
	crop := listing.Crop
	if crop == "" {
		crop = "farm produce"
	}

	parts := []string{crop}
	if len(listing.Tags) > 0 {
		parts = append([]string{strings.Join(listing.Tags, " ")}, parts...)
	}
	return strings.Join(parts, " ")
}

func sortTags(tags []string) {
	for i := 1; i < len(tags); i++ {
		for j := i; j > 0 && tags[j] < tags[j-1]; j-- {
			tags[j], tags[j-1] = tags[j-1], tags[j]
		}
	}
}
