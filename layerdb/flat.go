package layerdb

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/rotblauer/geomap/params"
)

type GZFileWriterConfig struct {
	CompressionLevel int
	Flag             int
	FilePerm         os.FileMode
	DirPerm          os.FileMode
}

func DefaultGZFileWriterConfig() *GZFileWriterConfig {
	return &GZFileWriterConfig{
		CompressionLevel: params.DefaultGZipCompressionLevel,
		Flag:             os.O_WRONLY | os.O_TRUNC | os.O_CREATE,
		FilePerm:         0660,
		DirPerm:          0770,
	}
}

// LayerPath is where the gzipped GeoJSON for layer id lives under root.
func LayerPath(root, id string) string {
	return filepath.Join(root, params.LayersDir, id+params.LayerGZExtension)
}

// WriteGZ writes data gzipped to path, holding an exclusive lock while writing.
func WriteGZ(path string, data []byte, config *GZFileWriterConfig) error {
	if config == nil {
		config = DefaultGZFileWriterConfig()
	}
	if err := os.MkdirAll(filepath.Dir(path), config.DirPerm); err != nil {
		return err
	}
	f, err := os.OpenFile(path, config.Flag, config.FilePerm)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return err
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	gzw, err := gzip.NewWriterLevel(f, config.CompressionLevel)
	if err != nil {
		return err
	}
	if _, err := gzw.Write(data); err != nil {
		return err
	}
	if err := gzw.Close(); err != nil {
		return err
	}
	return f.Sync()
}

// ReadGZ reads back a file written by WriteGZ, holding a shared lock while reading.
func ReadGZ(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_SH); err != nil {
		return nil, err
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gzr.Close()
	return io.ReadAll(gzr)
}
