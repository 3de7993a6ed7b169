package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/querygen/internal/datagen"
)

// WriteFile creates or truncates path and writes records in format f.
// A failure part way through leaves a truncated file behind.
func WriteFile(path string, f Format, records []datagen.Record) (err error) {
	if f != FormatJSONL && f != FormatParquet {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	w := bufio.NewWriter(file)
	switch f {
	case FormatJSONL:
		err = WriteJSONL(w, records)
	case FormatParquet:
		err = writeParquet(w, records)
	}
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// ReadFile reads a dataset. Parquet is recognized by its magic bytes or
// the .parquet extension; anything else is read as JSONL.
func ReadFile(path string) ([]datagen.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat dataset: %w", err)
	}

	isParquet, err := hasParquetMagic(file)
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	if isParquet || FormatFromPath(path) == FormatParquet {
		return readParquet(file, info.Size())
	}
	return ReadJSONL(file)
}

// hasParquetMagic reports whether r starts with the Parquet magic "PAR1".
// The read offset of r is left unchanged.
func hasParquetMagic(r io.ReaderAt) (bool, error) {
	var magic [4]byte
	n, err := r.ReadAt(magic[:], 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return n == len(magic) && string(magic[:]) == "PAR1", nil
}
