package glhal

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	"scenerender/internal/hal"

	"github.com/go-gl/gl/v4.1-core/gl"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
)

// Texture is a 2D RGBA texture with nearest filtering.
type Texture struct {
	id            uint32
	width, height int
}

func newTexture(img image.Image) *Texture {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
		xdraw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, xdraw.Src)
	}

	t := &Texture{width: rgba.Rect.Dx(), height: rgba.Rect.Dy()}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(t.width),
		int32(t.height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t
}

func (t *Texture) ID() uint32  { return t.id }
func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

// DecodeImage reads an image file in any registered format.
func DecodeImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// TextureCache loads image files into textures once per path.
type TextureCache struct {
	h hal.Hal

	mu       sync.RWMutex
	textures map[string]hal.Texture
}

// NewTextureCache creates a cache creating textures through h.
func NewTextureCache(h hal.Hal) *TextureCache {
	return &TextureCache{h: h, textures: make(map[string]hal.Texture)}
}

// Get returns the texture for path, loading it on first use.
func (c *TextureCache) Get(path string) (hal.Texture, error) {
	c.mu.RLock()
	if tex, ok := c.textures[path]; ok {
		c.mu.RUnlock()
		return tex, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double check locking
	if tex, ok := c.textures[path]; ok {
		return tex, nil
	}

	img, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	tex, err := c.h.CreateTexture2D(img)
	if err != nil {
		return nil, err
	}
	c.textures[path] = tex
	return tex, nil
}

var _ hal.Texture = (*Texture)(nil)
