package commerce

import "strings"

// Translation engines that can produce a Listing.
const (
	EngineLLM      = "llm"
	EngineFallback = "fallback"
)

// Listing is the structured commerce payload stored in a catalog's JSON
// column. It loosely imitates a Beckn/ONDC item descriptor; it is not a
// protocol-conformant document.
type Listing struct {
	Descriptor string   `json:"descriptor"`
	Crop       string   `json:"crop,omitempty"`
	Quantity   float64  `json:"quantity"`
	Unit       string   `json:"unit"`
	Price      float64  `json:"price"`
	Currency   string   `json:"currency"`
	Tags       []string `json:"tags,omitempty"`

	// Provenance of the translation.
	Transcript string `json:"transcript,omitempty"`
	Language   string `json:"language,omitempty"`
	Engine     string `json:"engine,omitempty"`

	// Set when a bid has been accepted and the catalog moved to SOLD.
	AcceptedBidID string `json:"accepted_bid_id,omitempty"`
}

func (l Listing) Validate() error {
	if strings.TrimSpace(l.Descriptor) == "" {
		return ErrDescriptorRequired
	}
	if l.Price <= 0 {
		return ErrPriceNotPositive
	}
	if l.Quantity <= 0 {
		return ErrQuantityNotPositive
	}
	return nil
}

// FarmerSummary is the seller identity carried on outgoing network messages.
type FarmerSummary struct {
	FarmerID      uint64 `json:"farmer_id"`
	Name          string `json:"name"`
	Location      string `json:"location,omitempty"`
	PaymentHandle string `json:"payment_handle,omitempty"`
}

// BroadcastMessage is the OUTGOING_CATALOG payload sent to the simulated
// buyer network and recorded in the network log.
type BroadcastMessage struct {
	MessageID string        `json:"message_id" jsonschema:"title=Message ID,description=Unique id of this broadcast"`
	Domain    string        `json:"domain" jsonschema:"example=setu:agri-trade"`
	Action    string        `json:"action" jsonschema:"example=catalog_broadcast"`
	CatalogID uint64        `json:"catalog_id"`
	Farmer    FarmerSummary `json:"farmer"`
	Listing   Listing       `json:"listing"`
	Timestamp string        `json:"timestamp"`
}

// BidMessage is the INCOMING_BID payload recorded for a simulated buyer
// response.
type BidMessage struct {
	BidID     string  `json:"bid_id"`
	MessageID string  `json:"message_id"`
	CatalogID uint64  `json:"catalog_id"`
	BuyerID   string  `json:"buyer_id"`
	BuyerName string  `json:"buyer_name"`
	Location  string  `json:"location,omitempty"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Accepted  bool    `json:"accepted,omitempty"`
	Timestamp string  `json:"timestamp"`
}

const BroadcastDomain = "setu:agri-trade"

const (
	ActionCatalogBroadcast = "catalog_broadcast"
	ActionBid              = "bid"
)
