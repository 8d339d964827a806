// Package record writes terrain frames to an MJPEG AVI file.
package record

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/icza/mjpeg"

	"rps-ca/internal/render"
	"rps-ca/internal/sim"
)

// ErrSizeMismatch is returned when a snapshot does not match the recorder size.
var ErrSizeMismatch = errors.New("record: snapshot size does not match recorder")

// Recorder encodes snapshots as JPEG frames.
type Recorder struct {
	aw      mjpeg.AviWriter
	size    int
	scale   int
	img     *image.RGBA
	buf     bytes.Buffer
	opts    jpeg.Options
	written int
}

// New creates path and prepares it for frames of a size x size grid drawn
// with scale pixels per cell.
func New(path string, size, scale, fps int) (*Recorder, error) {
	if scale <= 0 {
		scale = 1
	}
	side := size * scale
	aw, err := mjpeg.New(path, int32(side), int32(side), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("create video %s: %w", path, err)
	}
	return &Recorder{
		aw:    aw,
		size:  size,
		scale: scale,
		img:   image.NewRGBA(image.Rect(0, 0, side, side)),
		opts:  jpeg.Options{Quality: 90},
	}, nil
}

// AddFrame renders snap and appends it to the video.
func (r *Recorder) AddFrame(snap *sim.Snapshot) error {
	if snap.Size != r.size {
		return ErrSizeMismatch
	}
	render.FrameInto(r.img, snap.Cells, snap.Size, r.scale)
	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, r.img, &r.opts); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := r.aw.AddFrame(r.buf.Bytes()); err != nil {
		return fmt.Errorf("add frame: %w", err)
	}
	r.written++
	return nil
}

// Frames returns the number of frames written.
func (r *Recorder) Frames() int { return r.written }

// Close finalizes the AVI index.
func (r *Recorder) Close() error {
	return r.aw.Close()
}
