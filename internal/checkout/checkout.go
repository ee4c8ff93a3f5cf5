package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"cempagamez/internal/cart"
	"cempagamez/internal/domain"
)

const receiptHeader = "Here is the receipt of my game purchased (Total: RM %s)"

// PayIndividual is the payment view for a single game.
func PayIndividual(g domain.Game) domain.PaymentIntent {
	return domain.PaymentIntent{Items: []domain.Game{g}}
}

// CheckoutAll is the payment view for every cart item still in the catalog.
// The cart itself is left as it was.
func CheckoutAll(catalog domain.Catalog, c cart.Cart) domain.PaymentIntent {
	return domain.PaymentIntent{Items: c.Items(catalog)}
}

// Total is the intent's sum, rounded to cents.
func Total(p domain.PaymentIntent) string {
	return Sum(p.Items).StringFixed(2)
}

// Receipt is the message the buyer sends after paying.
func Receipt(p domain.PaymentIntent) string {
	var b strings.Builder
	fmt.Fprintf(&b, receiptHeader, Total(p))
	for _, g := range p.Items {
		b.WriteString("\n> ")
		b.WriteString(g.Title)
		b.WriteString(" (RM")
		b.WriteString(RM(g.Price))
		b.WriteString(")")
	}
	return b.String()
}

// Merchant holds the external endpoints a payment is handed off to.
type Merchant struct {
	GatewayURL   string
	QRImageURL   string
	MessagingURL string // e.g. https://wa.me
	ID           string
}

// Handoff is everything the payment view renders. Nothing here is verified; the
// buyer pays outside the app and sends the receipt.
type Handoff struct {
	GatewayURL string        `json:"gateway_url"`
	QRImageURL string        `json:"qr_image_url"`
	MessageURL string        `json:"message_url"`
	Receipt    string        `json:"receipt"`
	Total      string        `json:"total"`
	Items      []domain.Game `json:"items"`
}

func (m Merchant) Handoff(p domain.PaymentIntent) Handoff {
	receipt := Receipt(p)
	return Handoff{
		GatewayURL: m.GatewayURL,
		QRImageURL: m.QRImageURL,
		MessageURL: m.MessageURL(receipt),
		Receipt:    receipt,
		Total:      Total(p),
		Items:      p.Items,
	}
}

// MessageURL is a deep link that opens a chat with the merchant, prefilled with text.
func (m Merchant) MessageURL(text string) string {
	return strings.TrimRight(m.MessagingURL, "/") + "/" + url.PathEscape(m.ID) + "?text=" + encodeComponent(text)
}

var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent escapes everything except A-Z a-z 0-9 and -_.!~*'(), the set
// browsers leave alone in a URI component.
func encodeComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}
