package domain

import "errors"

var (
	ErrNotFound           = errors.New("no encontrado")
	ErrValidation         = errors.New("datos inválidos")
	ErrEmptyCart          = errors.New("carrito vacío")
	ErrInsufficientAmount = errors.New("monto recibido insuficiente")
	ErrInvalidPayment     = errors.New("medio de pago inválido")
	ErrEmptyMessage       = errors.New("mensaje vacío")
	ErrAssistantBusy      = errors.New("asistente ocupado")

	// ErrRemote marca fallas de un servicio remoto (conexión o status no 2xx).
	ErrRemote = errors.New("servicio remoto no disponible")
)
