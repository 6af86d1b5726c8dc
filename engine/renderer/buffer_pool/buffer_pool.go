package buffer_pool

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/baryon-go/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
)

// DefaultChunkSize is the size in bytes of every uniform buffer owned by a Pool.
const DefaultChunkSize uint64 = 0x10000

// DefaultAlignment is used when no device limit is supplied.
const DefaultAlignment uint64 = 256

// BufferAllocator creates GPU buffers. *wgpu.Device satisfies it.
type BufferAllocator interface {
	CreateBuffer(desc *wgpu.BufferDescriptor) (*wgpu.Buffer, error)
}

// BufferWriter uploads bytes into a GPU buffer. *wgpu.Queue satisfies it.
type BufferWriter interface {
	WriteBuffer(buffer *wgpu.Buffer, offset uint64, data []byte) error
}

// Location addresses an allocation inside a Pool: the chunk index and the byte offset within it.
type Location struct {
	Index  int
	Offset uint64
}

// DynamicOffsets returns the offset as the single element slice expected by SetBindGroup.
func (l Location) DynamicOffsets() []uint32 {
	return []uint32{uint32(l.Offset)}
}

// Pool is a frame arena for per-draw uniform data.
// Allocations are packed into fixed-size chunks at the device's dynamic offset alignment; Reset rewinds the
// arena without releasing the chunks, so the steady-state frame creates no buffers.
type Pool interface {
	// Reset rewinds the arena to the start of the first chunk.
	Reset()

	// Alloc writes data into the arena and returns where it landed.
	// Panics if data is larger than a chunk.
	//
	// Parameters:
	//   - data: the bytes to upload
	//
	// Returns:
	//   - Location: the chunk index and offset of the upload
	//   - error: an error if a new chunk could not be created or the write failed
	Alloc(data []byte) (Location, error)

	// PrepareForCount makes sure enough chunks exist to hold count allocations of size bytes.
	//
	// Parameters:
	//   - size: the size of each allocation
	//   - count: the number of allocations
	//
	// Returns:
	//   - int: the number of chunks required
	//   - error: an error if a chunk could not be created
	PrepareForCount(size uint64, count int) (int, error)

	// BufferCount returns the number of chunks required for count allocations of size bytes.
	BufferCount(size uint64, count int) int

	// Binding returns a bind group entry that exposes size bytes of chunk index at the given binding slot.
	// The offset is left at zero; the draw supplies the real offset dynamically.
	//
	// Parameters:
	//   - binding: the binding slot in the bind group layout
	//   - index: the chunk index
	//   - size: the visible size of one allocation
	//
	// Returns:
	//   - wgpu.BindGroupEntry: the entry to place in a bind group descriptor
	Binding(binding uint32, index int, size uint64) wgpu.BindGroupEntry

	// Buffer returns the chunk at index.
	Buffer(index int) *wgpu.Buffer

	// Len returns the number of chunks created so far.
	Len() int

	// ChunkSize returns the size of each chunk in bytes.
	ChunkSize() uint64

	// Alignment returns the offset alignment used between allocations.
	Alignment() uint64

	// Release frees every chunk.
	Release()
}

var _ Pool = &pool{}

type pool struct {
	mu        *sync.Mutex
	label     string
	allocator BufferAllocator
	writer    BufferWriter
	chunkSize uint64
	alignment uint64

	buffers    []*wgpu.Buffer
	index      int
	lastOffset uint64
}

// NewPool creates a Pool and its first chunk.
//
// Parameters:
//   - allocator: creates chunk buffers, normally the device
//   - writer: uploads allocations, normally the queue
//   - options: functional options for chunk size, alignment and label
//
// Returns:
//   - Pool: the new pool
//   - error: an error if the first chunk could not be created
func NewPool(allocator BufferAllocator, writer BufferWriter, options ...PoolBuilderOption) (Pool, error) {
	p := &pool{
		mu:        &sync.Mutex{},
		label:     "uniform pool",
		allocator: allocator,
		writer:    writer,
		chunkSize: DefaultChunkSize,
		alignment: DefaultAlignment,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.alignment == 0 || p.alignment&(p.alignment-1) != 0 {
		panic(fmt.Sprintf("buffer_pool: alignment %d is not a power of two", p.alignment))
	}
	if err := p.grow(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *pool) grow() error {
	buf, err := p.allocator.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            fmt.Sprintf("%s [%d]", p.label, len(p.buffers)),
		Size:             p.chunkSize,
		Usage:            wgpu.BufferUsageCopyDst | wgpu.BufferUsageUniform,
		MappedAtCreation: false,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to create %s chunk %d", p.label, len(p.buffers))
	}
	p.buffers = append(p.buffers, buf)
	return nil
}

func (p *pool) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.index = 0
	p.lastOffset = 0
}

func (p *pool) Alloc(data []byte) (Location, error) {
	size := uint64(len(data))
	if size > p.chunkSize {
		panic(fmt.Sprintf("buffer_pool: allocation of %d bytes exceeds the chunk size %d", size, p.chunkSize))
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lastOffset+size > p.chunkSize {
		p.index++
		p.lastOffset = 0
	}
	for p.index >= len(p.buffers) {
		if err := p.grow(); err != nil {
			return Location{}, err
		}
	}

	loc := Location{Index: p.index, Offset: p.lastOffset}
	if size > 0 {
		if err := p.writer.WriteBuffer(p.buffers[loc.Index], loc.Offset, data); err != nil {
			return Location{}, errors.Wrapf(err, "failed to write %d bytes to %s chunk %d", size, p.label, loc.Index)
		}
	}
	p.lastOffset = common.AlignUp(p.lastOffset+size, p.alignment)
	return loc, nil
}

func (p *pool) BufferCount(size uint64, count int) int {
	if count <= 0 {
		return 0
	}
	if size > p.chunkSize {
		panic(fmt.Sprintf("buffer_pool: allocation of %d bytes exceeds the chunk size %d", size, p.chunkSize))
	}
	stride := common.AlignUp(size, p.alignment)
	if stride == 0 {
		return 1
	}
	perChunk := int((p.chunkSize-size)/stride) + 1
	return (count + perChunk - 1) / perChunk
}

func (p *pool) PrepareForCount(size uint64, count int) (int, error) {
	n := p.BufferCount(size, count)

	p.mu.Lock()
	defer p.mu.Unlock()
	for len(p.buffers) < n {
		if err := p.grow(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (p *pool) Binding(binding uint32, index int, size uint64) wgpu.BindGroupEntry {
	return wgpu.BindGroupEntry{
		Binding: binding,
		Buffer:  p.Buffer(index),
		Offset:  0,
		Size:    size,
	}
}

func (p *pool) Buffer(index int) *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < 0 || index >= len(p.buffers) {
		panic(fmt.Sprintf("buffer_pool: chunk %d out of range [0, %d)", index, len(p.buffers)))
	}
	return p.buffers[index]
}

func (p *pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buffers)
}

func (p *pool) ChunkSize() uint64 {
	return p.chunkSize
}

func (p *pool) Alignment() uint64 {
	return p.alignment
}

func (p *pool) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
	}
	p.buffers = nil
	p.index = 0
	p.lastOffset = 0
}

// Alloc copies a plain-data struct into the pool.
//
// Parameters:
//   - p: the pool to allocate from
//   - v: the struct to upload; it must contain no pointers
//
// Returns:
//   - Location: the chunk index and offset of the upload
//   - error: an error if the upload failed
func Alloc[T any](p Pool, v *T) (Location, error) {
	return p.Alloc(common.StructToBytes(v))
}
