package storefront

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cempagamez/internal/catalog"
	"cempagamez/internal/checkout"
	"cempagamez/internal/domain"
)

var merchant = checkout.Merchant{
	GatewayURL:   "https://pay.example/sc/abc",
	QRImageURL:   "https://img.example/qr.png",
	MessagingURL: "https://wa.me",
	ID:           "601162829775",
}

func bigCatalog(n int) domain.Catalog {
	out := make(domain.Catalog, n)
	for i := range out {
		id := fmt.Sprint(i + 1)
		out[i] = domain.Game{ID: id, Title: "Game " + id, Price: 8, ImageURL: catalog.PrimaryImageURL(id)}
	}
	return out
}

func TestDerive_Pagination(t *testing.T) {
	games := bigCatalog(23)

	s := Reduce(NewState(), games, GoToPage{Page: 3})
	v := Derive(s, games, true, merchant)
	assert.Len(t, v.Cards, 3)
	assert.Equal(t, 23, v.Matches)
	assert.Equal(t, "Page 3 of 3", v.PageStatus)
	assert.True(t, v.Nav.Show)
	assert.False(t, v.Nav.HasNext)

	s = Reduce(s, games, GoToPage{Page: 4})
	v = Derive(s, games, true, merchant)
	assert.Empty(t, v.Cards)
}

func TestDerive_SearchMatchesTitleOnly(t *testing.T) {
	games := catalog.Defaults()

	v := Derive(Reduce(NewState(), games, SetSearch{Query: "valhalla"}), games, true, merchant)
	require.Len(t, v.Cards, 1)
	assert.Equal(t, "Shadows of Valhalla", v.Cards[0].Game.Title)
	assert.False(t, v.Nav.Show)

	v = Derive(Reduce(NewState(), games, SetSearch{Query: "zzz"}), games, true, merchant)
	assert.Empty(t, v.Cards)
	assert.Equal(t, `No games found matching "zzz"`, v.NoResults)
	assert.Empty(t, v.PageStatus)
}

func TestDerive_LoadingShowsNoEmptyMessage(t *testing.T) {
	v := Derive(NewState(), domain.Catalog{}, false, merchant)
	assert.True(t, v.Loading)
	assert.Empty(t, v.NoResults)
	assert.Empty(t, v.Cards)
}

func TestDerive_CartAndPayment(t *testing.T) {
	games := catalog.Defaults()
	s := NewState()
	s = Reduce(s, games, AddToCart{ID: "2"})
	s = Reduce(s, games, AddToCart{ID: "1"})

	v := Derive(s, games, true, merchant)
	assert.Equal(t, 2, v.CartCount)
	assert.Equal(t, "18.00", v.CartTotal)
	require.Len(t, v.CartItems, 2)
	assert.Equal(t, "1", v.CartItems[0].Game.ID)
	assert.Nil(t, v.Payment)

	for _, c := range v.Cards {
		assert.Equal(t, c.Game.ID == "1" || c.Game.ID == "2", c.InCart, c.Game.ID)
		assert.Equal(t, catalog.DefaultImageURL, c.Images[len(c.Images)-1])
	}

	s = Reduce(s, games, CheckoutAll{})
	v = Derive(s, games, true, merchant)
	require.NotNil(t, v.Payment)
	assert.Equal(t, "18.00", v.Payment.Total)
	assert.True(t, strings.HasPrefix(v.Payment.MessageURL, "https://wa.me/601162829775?text="))
	assert.Equal(t, 2, strings.Count(v.Payment.Receipt, "\n> "))
}

func TestDerive_EmptyCart(t *testing.T) {
	v := Derive(NewState(), catalog.Defaults(), true, merchant)
	assert.Zero(t, v.CartCount)
	assert.Empty(t, v.CartItems)
	assert.Equal(t, "0.00", v.CartTotal)
}
