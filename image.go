package xjdp

import (
	"context"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

// ImageFile is an open temporary file holding a feature's satellite
// image. Closing it removes the file from disk; callers that want to
// keep the image should copy it out first.
type ImageFile struct {
	*os.File
	closed bool
}

// Close closes the file and removes it. It is safe to call more than
// once.
func (f *ImageFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	name := f.Name()
	if err := f.File.Close(); err != nil {
		_ = os.Remove(name)
		return eris.Wrap(err, "xjdp: close image file")
	}
	if err := os.Remove(name); err != nil {
		return eris.Wrap(err, "xjdp: remove image file")
	}
	return nil
}

// Image downloads the feature's satellite image into a fresh temporary
// file, open for reading at offset zero. Image bytes are memoized on the
// feature, so repeated calls download at most once, though each call
// returns its own file. It returns ErrNoImage when the feature carries
// no imagery.
func (c *Catalog) Image(ctx context.Context, f *Feature) (*ImageFile, error) {
	data, err := f.imageData(ctx, c.client)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "xjdp-*.jpg")
	if err != nil {
		return nil, eris.Wrap(err, "xjdp: create image file")
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, eris.Wrap(err, "xjdp: write image file")
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return nil, eris.Wrap(err, "xjdp: rewind image file")
	}
	return &ImageFile{File: tmp}, nil
}
