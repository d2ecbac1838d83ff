package images

import (
	"fmt"
	"net/url"
	"strings"
)

// Preset agrupa los parámetros de transformación fetch de Cloudinary.
type Preset struct {
	Width   int
	Height  int
	Quality string // auto, auto:good, auto:best, auto:low o 1-100
	Crop    string // fill, fit, crop, scale
}

// Presets por uso: miniatura de tarjeta/listado y detalle.
var (
	PresetCard = Preset{
		Width:   400,
		Height:  300,
		Quality: "auto:good",
		Crop:    "fill",
	}

	PresetDetail = Preset{
		Width:   800,
		Height:  600,
		Quality: "auto:best",
		Crop:    "fit",
	}
)

// Optimizer construye URLs fetch de Cloudinary para servir las fotos de
// los refugios comprimidas. Con CloudName vacío devuelve la URL original.
type Optimizer struct {
	CloudName string
}

// OptimizedURL devuelve la URL fetch de Cloudinary para imageURL, o la
// URL original cuando no corresponde transformar.
func (o Optimizer) OptimizedURL(imageURL string, p Preset) string {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		return imageURL
	}
	if o.CloudName == "" || o.CloudName == "demo" {
		return imageURL
	}
	if !suitable(imageURL) {
		return imageURL
	}

	parts := make([]string, 0, 4)
	size := make([]string, 0, 3)
	if p.Width > 0 {
		size = append(size, fmt.Sprintf("w_%d", p.Width))
	}
	if p.Height > 0 {
		size = append(size, fmt.Sprintf("h_%d", p.Height))
	}
	if p.Crop != "" {
		size = append(size, "c_"+p.Crop)
	}
	if len(size) > 0 {
		parts = append(parts, strings.Join(size, ","))
	}
	if p.Quality != "" {
		parts = append(parts, "q_"+p.Quality)
	}
	parts = append(parts, "f_auto", "fl_progressive")

	return fmt.Sprintf(
		"https://res.cloudinary.com/%s/image/fetch/%s/%s",
		o.CloudName,
		strings.Join(parts, ","),
		url.QueryEscape(imageURL),
	)
}

// suitable descarta URLs que no conviene pasar por el fetch proxy:
// data URLs (ya vienen transcodificadas), URLs que ya son de Cloudinary,
// paths locales, y los hosts de gobierno que rechazan hotlinking.
func suitable(imageURL string) bool {
	if strings.HasPrefix(imageURL, "data:") {
		return false
	}
	if !strings.Contains(imageURL, "http") {
		return false
	}
	if strings.Contains(imageURL, "cloudinary.com") {
		return false
	}
	if strings.Contains(imageURL, "pet.gov.tw") {
		return false
	}
	return true
}
