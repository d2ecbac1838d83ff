package catalog

import (
	"context"
	"errors"
)

// Errores que puede devolver un Source. El adapter upstream los envuelve
// con detalle; acá solo definimos la taxonomía que le importa al service.
var (
	// ErrTimeout: el fetch superó su deadline y fue cancelado.
	ErrTimeout = errors.New("upstream timeout")
	// ErrHTTP: el upstream respondió con status no exitoso.
	ErrHTTP = errors.New("upstream http error")
	// ErrParse: el payload del upstream no se pudo decodificar.
	ErrParse = errors.New("upstream parse error")
)

// ErrUpstreamUnavailable: el fetch falló y no hay cache (ni vencida) para
// degradar. Es el único fallo que ve el handler.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// Source es el puerto hacia el proveedor externo del catálogo.
// Sin retries acá: la política de fallback vive en el Service.
type Source interface {
	FetchCatalog(ctx context.Context) ([]Animal, error)
}

// Transcoder re-codifica una referencia de imagen a una forma compacta.
// Contrato best-effort: SIEMPRE devuelve una referencia usable (la nueva
// o la original); nunca un error.
type Transcoder interface {
	Transcode(ctx context.Context, imageRef string) string
}
