package images

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptimizedURL(t *testing.T) {
	o := Optimizer{CloudName: "mycloud"}

	got := o.OptimizedURL("https://img.example/photo.jpg", PresetCard)
	assert.True(t, strings.HasPrefix(got, "https://res.cloudinary.com/mycloud/image/fetch/"))
	assert.Contains(t, got, "w_400,h_300,c_fill")
	assert.Contains(t, got, "q_auto:good")
	assert.Contains(t, got, "https%3A%2F%2Fimg.example%2Fphoto.jpg")
}

func TestOptimizedURLPassthrough(t *testing.T) {
	o := Optimizer{CloudName: "mycloud"}

	// Casos que deben devolver la URL tal cual.
	for _, ref := range []string{
		"",
		"data:image/jpeg;base64,abc",
		"https://res.cloudinary.com/other/image/fetch/x",
		"https://www.pet.gov.tw/upload/pic/123.jpg",
		"/default.webp",
	} {
		assert.Equal(t, ref, o.OptimizedURL(ref, PresetCard), "ref=%q", ref)
	}

	// Sin cloud name configurado (o demo) tampoco se transforma.
	ref := "https://img.example/photo.jpg"
	assert.Equal(t, ref, Optimizer{}.OptimizedURL(ref, PresetCard))
	assert.Equal(t, ref, Optimizer{CloudName: "demo"}.OptimizedURL(ref, PresetDetail))
}
