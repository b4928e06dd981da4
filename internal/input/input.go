package input

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ostafen/sigscan/internal/mmap"
)

var ErrTooLarge = errors.New("file exceeds the maximum size")

// Buffer holds the bytes of one input while it is being classified.
type Buffer interface {
	Bytes() []byte
	Close() error
}

// Input is a named source of bytes. The name only labels results.
type Input interface {
	Name() string
	Open() (Buffer, error)
}

type memoryBuffer []byte

func (b memoryBuffer) Bytes() []byte { return b }
func (memoryBuffer) Close() error    { return nil }

type memoryInput struct {
	name string
	data []byte
}

// FromBytes returns an Input serving data as is.
func FromBytes(name string, data []byte) Input {
	return &memoryInput{name: name, data: data}
}

func (in *memoryInput) Name() string { return in.name }

func (in *memoryInput) Open() (Buffer, error) {
	return memoryBuffer(in.data), nil
}

// File is an Input backed by a file on disk, memory mapped on Open.
type File struct {
	Path string

	// DisplayName labels the results; defaults to the base name of Path.
	DisplayName string

	// MaxSize rejects larger files with ErrTooLarge (0 = no limit).
	MaxSize int64
}

func (f *File) Name() string {
	if f.DisplayName != "" {
		return f.DisplayName
	}
	return filepath.Base(f.Path)
}

func (f *File) Open() (Buffer, error) {
	info, err := os.Stat(f.Path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%q is not a regular file", f.Path)
	}
	if f.MaxSize > 0 && info.Size() > f.MaxSize {
		return nil, fmt.Errorf("%q (%d bytes): %w", f.Path, info.Size(), ErrTooLarge)
	}

	// mmap refuses zero length mappings
	if info.Size() == 0 {
		return memoryBuffer(nil), nil
	}

	mf, err := mmap.Open(f.Path)
	if errors.Is(err, mmap.ErrEmptyFile) {
		return memoryBuffer(nil), nil
	}
	if err != nil {
		return nil, err
	}
	return &mappedBuffer{f: mf}, nil
}

type mappedBuffer struct {
	f *mmap.File
}

func (b *mappedBuffer) Bytes() []byte { return b.f.Data }
func (b *mappedBuffer) Close() error  { return b.f.Close() }
