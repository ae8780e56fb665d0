package inventory

import "errors"

var (
	// ErrNotFound: Verilen ID ile stok kaydı yok
	ErrNotFound = errors.New("stok kaydı bulunamadı")

	// ErrInvalidInput: Eksik zorunlu alan veya geçersiz sayısal değer
	ErrInvalidInput = errors.New("geçersiz stok verisi")
)
