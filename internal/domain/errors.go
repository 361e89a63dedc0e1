package domain

import "errors"

var (
	ErrEmailAlreadyRegistered = errors.New("bu e-posta adresi zaten kayıtlı")
	ErrInvalidCredentials     = errors.New("geçersiz e-posta veya şifre")
	ErrUserNotFound           = errors.New("kullanıcı bulunamadı")
	ErrProductNotFound        = errors.New("ürün bulunamadı")
	ErrOrderNotFound          = errors.New("sipariş bulunamadı")
)
