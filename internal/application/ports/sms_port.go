package ports

import "context"

// SMSSender es el puerto de salida para el envío de códigos de verificación
// por SMS. La entrega efectiva es responsabilidad del proveedor.
type SMSSender interface {
	// Enviar despacha el mensaje al teléfono E.164 indicado.
	Enviar(ctx context.Context, telefonoE164, mensaje string) error
}
