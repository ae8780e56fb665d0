package alerts

import "errors"

// ErrNotFound: Verilen ID ile uyarı kaydı yok
var ErrNotFound = errors.New("stok uyarısı bulunamadı")
