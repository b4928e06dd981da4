package mmap

import (
	"errors"
	"fmt"
	"os"
)

var ErrEmptyFile = errors.New("file is empty")

// File is a read-only view of a whole file. Data stays valid until Close.
type File struct {
	Data []byte
	Size int

	file   *os.File
	mapped bool
}

// Open maps the file at filePath into memory. On platforms without mmap
// support the file is read into a heap buffer instead.
func Open(filePath string) (*File, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to get file info for %q: %w", filePath, err)
	}

	size := int(fi.Size())
	if size == 0 {
		f.Close()
		return nil, fmt.Errorf("%q: %w", filePath, ErrEmptyFile)
	}

	data, mapped, err := mapFile(f, size)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to map file %q with length %d: %w", filePath, size, err)
	}

	return &File{
		Data:   data,
		Size:   size,
		file:   f,
		mapped: mapped,
	}, nil
}

// Close unmaps the memory region and closes the underlying file.
func (mf *File) Close() error {
	var err error
	if mf.Data != nil {
		if mf.mapped {
			err = unmap(mf.Data)
		}
		mf.Data = nil
		if err != nil {
			err = fmt.Errorf("failed to munmap: %w", err)
		}
	}

	if mf.file != nil {
		closeErr := mf.file.Close()
		mf.file = nil
		if closeErr != nil {
			if err != nil {
				return fmt.Errorf("%w (and close failed: %v)", err, closeErr)
			}
			return fmt.Errorf("failed to close file: %w", closeErr)
		}
	}
	return err
}
