package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/jpeg"
	_ "image/png" // registro del decoder PNG
	"net/http"
	"strings"
	"time"

	"pet-adoption-catalog/internal/platform/httpclient"
	"pet-adoption-catalog/internal/platform/logger"
)

// Deadline corto por imagen: la transcodificación es cosmética,
// no puede frenar el refresh del catálogo.
const fetchDeadline = 5 * time.Second

const jpegQuality = 80

// Transcoder implementa catalog.Transcoder: baja la imagen original del
// refugio y la re-encodea como data URL JPEG comprimida. Cualquier fallo
// (red, formato raro, imagen gigante) devuelve la referencia original.
type Transcoder struct {
	http *httpclient.Client
	log  logger.Logger
}

type Config struct {
	// Transport inyectable (tests).
	Transport http.RoundTripper

	Logger logger.Logger
}

func New(cfg Config) *Transcoder {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	var hc *httpclient.Client
	if cfg.Transport != nil {
		hc = httpclient.NewWithTransport(fetchDeadline, cfg.Transport)
	} else {
		hc = httpclient.New(fetchDeadline)
	}

	return &Transcoder{
		http: hc,
		log:  log,
	}
}

// Transcode nunca falla: si no puede mejorar la imagen, devuelve imageRef.
func (t *Transcoder) Transcode(ctx context.Context, imageRef string) string {
	imageRef = strings.TrimSpace(imageRef)
	if imageRef == "" {
		return imageRef
	}
	// Ya es data URL: nada que hacer.
	if strings.HasPrefix(imageRef, "data:") {
		return imageRef
	}

	ctx, cancel := context.WithTimeout(ctx, fetchDeadline)
	defer cancel()

	raw, err := t.http.GetBytes(ctx, imageRef)
	if err != nil {
		t.log.Debug("image fetch failed", map[string]any{
			"ref":   imageRef,
			"error": err.Error(),
		})
		return imageRef
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		t.log.Debug("image decode failed", map[string]any{
			"ref":   imageRef,
			"error": err.Error(),
		})
		return imageRef
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return imageRef
	}

	// Si la versión comprimida no achica, quedarse con el original.
	if buf.Len() >= len(raw) {
		return imageRef
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
