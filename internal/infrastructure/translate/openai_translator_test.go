package translate

import (
	"errors"
	"testing"

	"setu/internal/bootstrap/config"
	"setu/internal/domain/commerce"
	"setu/internal/ports"
)

func TestNewOpenAITranslatorRequiresKey(t *testing.T) {
	_, err := NewOpenAITranslator(config.TranslatorConfig{})
	if !errors.Is(err, ports.ErrTranslatorUnavailable) {
		t.Fatalf("NewOpenAITranslator(no key) error = %v", err)
	}
}

func TestDecodeListingReplyPlain(t *testing.T) {
	listing, err := DecodeListingReply(`{"descriptor":"fresh tomato","crop":"tomato","quantity":200,"unit":"kg","price":1800,"currency":"INR","tags":["fresh"]}`)
	if err != nil {
		t.Fatalf("DecodeListingReply() error = %v", err)
	}
	if listing.Crop != "tomato" || listing.Price != 1800 {
		t.Fatalf("DecodeListingReply() = %+v", listing)
	}
}

func TestDecodeListingReplyCodeFence(t *testing.T) {
	reply := "Here you go:\n```json\n{\"descriptor\":\"onion lot\",\"quantity\":50,\"unit\":\"quintal\",\"price\":2200}\n```"
	listing, err := DecodeListingReply(reply)
	if err != nil {
		t.Fatalf("DecodeListingReply() error = %v", err)
	}
	if listing.Descriptor != "onion lot" {
		t.Fatalf("descriptor = %q", listing.Descriptor)
	}
	if listing.Currency != "INR" {
		t.Fatalf("currency default = %q", listing.Currency)
	}
}

func TestDecodeListingReplyRejectsInvalid(t *testing.T) {
	if _, err := DecodeListingReply("sorry, I cannot help"); err == nil {
		t.Fatalf("DecodeListingReply(prose) expected error")
	}
	if _, err := DecodeListingReply(`{"descriptor":"x","quantity":0,"price":10}`); !errors.Is(err, commerce.ErrQuantityNotPositive) {
		t.Fatalf("DecodeListingReply(zero quantity) error = %v", err)
	}
	if _, err := DecodeListingReply(`{"descriptor":"x","quantity":5,"price":-1}`); !errors.Is(err, commerce.ErrPriceNotPositive) {
		t.Fatalf("DecodeListingReply(negative price) error = %v", err)
	}
}
