package recipes

import "errors"

var (
	// ErrNotFound: Menü ürünü için tanımlı reçete yok
	ErrNotFound = errors.New("reçete bulunamadı")

	// ErrInvalidRecipe: Geçersiz malzeme satırı (miktar, bilinmeyen malzeme vs.)
	ErrInvalidRecipe = errors.New("geçersiz reçete verisi")
)
