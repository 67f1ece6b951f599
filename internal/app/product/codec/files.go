package codec

import (
	"io"
	"os"
	"path/filepath"

	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
)

// SaveFile encodes items into path. The data is streamed to a temporary file
// next to path and renamed into place, so a failed encode never leaves a
// truncated catalog behind. The handle is closed on every exit path.
func SaveFile(path string, enc Encoder, items []domain.Product) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".catalog-*")
	if err != nil {
		return domain.NewIOError("create", path, err)
	}
	closed := false
	defer func() {
		if !closed {
			_ = tmp.Close()
		}
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = enc.Encode(&pathWriter{w: tmp, path: path}, items); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return domain.NewIOError("sync", path, err)
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return domain.NewIOError("close", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return domain.NewIOError("chmod", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return domain.NewIOError("rename", path, err)
	}
	return nil
}

// LoadFile decodes the whole collection stored at path.
func LoadFile(path string, dec Decoder) ([]domain.Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewIOError("open", path, err)
	}
	defer f.Close()

	return dec.Decode(&pathReader{r: f, path: path})
}

// pathReader reports read failures as *domain.IOError so they stay distinct
// from format errors raised by the decoders.
type pathReader struct {
	r    io.Reader
	path string
}

func (pr *pathReader) Read(b []byte) (int, error) {
	n, err := pr.r.Read(b)
	if err != nil && err != io.EOF {
		err = domain.NewIOError("read", pr.path, err)
	}
	return n, err
}

type pathWriter struct {
	w    io.Writer
	path string
}

func (pw *pathWriter) Write(b []byte) (int, error) {
	n, err := pw.w.Write(b)
	if err != nil {
		err = domain.NewIOError("write", pw.path, err)
	}
	return n, err
}
