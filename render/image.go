package render

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"sketchgen/config"
	"sketchgen/sketch"
	"sketchgen/style"
	"sketchgen/tree"
	"sketchgen/utils/images"
)

var errRemoteImage = errors.New("remote images are not fetched")

// Image renders bitmaps. Image data is loaded from data URIs or files,
// fitted into the node box and embedded as PNG. Prepared bitmaps are
// cached by source and size for the lifetime of the renderer.
type Image struct {
	cfg   *config.ImagesConfig
	cache *cache.Cache
	log   *zap.Logger
}

// NewImage returns an image renderer.
func NewImage(cfg *config.ImagesConfig, log *zap.Logger) *Image {
	if cfg == nil {
		cfg = &config.ImagesConfig{Embed: true, ScaleFactor: 1}
	}
	if log == nil {
		log = zap.NewNop()
	}
	ttl, purge := cfg.CacheTTL, 2*cfg.CacheTTL
	if ttl <= 0 {
		ttl, purge = cache.NoExpiration, 0
	}
	return &Image{cfg: cfg, cache: cache.New(ttl, purge), log: log.Named("image")}
}

func (r *Image) RenderGroupLayer(box tree.LayoutBox, st, _ style.Style, props map[string]any) *sketch.Layer {
	return group(box, st, layerName(props, "Image"))
}

func (r *Image) RenderBackingLayers(box tree.LayoutBox, st, _ style.Style, props map[string]any, _ Children) ([]*sketch.Layer, error) {
	layers := backing(box, st)
	l := sketch.NewLayer(sketch.ClassBitmap, layerName(props, "Image"), innerFrame(box))
	if r.cfg.Embed {
		if src := source(props); src != "" {
			l.Image = r.load(src, box)
		} else {
			r.log.Debug("Image without source")
		}
	}
	return append(layers, l), nil
}

// load returns embedded data for src or nil.
func (r *Image) load(src string, box tree.LayoutBox) *sketch.ImageData {
	scale := r.cfg.ScaleFactor
	if scale <= 0 {
		scale = 1
	}
	w, h := int(math.Round(box.Width*scale)), int(math.Round(box.Height*scale))

	key := fmt.Sprintf("%s@%dx%d/%s", src, w, h, r.cfg.Resize)
	if x, found := r.cache.Get(key); found {
		return x.(*sketch.ImageData)
	}

	bm, err := r.prepare(src, w, h)
	if err != nil {
		r.log.Warn("Unable to load image", zap.String("src", shorten(src)), zap.Error(err))
		if r.cfg.UseBroken {
			r.cache.Set(key, (*sketch.ImageData)(nil), cache.DefaultExpiration)
			return nil
		}
		r.log.Debug("Substituting image with placeholder", zap.String("src", shorten(src)))
		bm = images.Placeholder()
	}

	sum := sha1.Sum(bm.Data)
	data := &sketch.ImageData{
		Class:  "MSJSONOriginalDataReference",
		SHA1:   hex.EncodeToString(sum[:]),
		Data:   base64.StdEncoding.EncodeToString(bm.Data),
		Width:  bm.Width,
		Height: bm.Height,
	}
	r.cache.Set(key, data, cache.DefaultExpiration)
	return data
}

func (r *Image) prepare(src string, w, h int) (*images.Bitmap, error) {
	data, err := r.read(src)
	if err != nil {
		return nil, err
	}
	return images.Prepare(data, w, h, r.cfg.Resize)
}

func (r *Image) read(src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "data:"):
		return decodeDataURI(src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return nil, errRemoteImage
	}
	path := strings.TrimPrefix(src, "file://")
	if !filepath.IsAbs(path) && r.cfg.BaseDir != "" {
		path = filepath.Join(r.cfg.BaseDir, path)
	}
	return os.ReadFile(path)
}

// decodeDataURI decodes "data:[<mediatype>][;base64],<data>".
func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, found := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !found {
		return nil, errors.New("malformed data uri")
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("malformed base64 data uri: %w", err)
		}
		return data, nil
	}
	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("malformed data uri: %w", err)
	}
	return []byte(text), nil
}

// source reads "src" or "source", the latter may be {"uri": ...}.
func source(props map[string]any) string {
	if s, ok := props["src"].(string); ok {
		return s
	}
	switch s := props["source"].(type) {
	case string:
		return s
	case map[string]any:
		uri, _ := s["uri"].(string)
		return uri
	}
	return ""
}

func shorten(s string) string {
	const limit = 64
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
