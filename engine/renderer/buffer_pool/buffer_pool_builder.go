package buffer_pool

// PoolBuilderOption is a functional option used to configure a Pool during construction.
type PoolBuilderOption func(*pool)

// WithChunkSize sets the size in bytes of every chunk.
//
// Parameters:
//   - size: the chunk size
//
// Returns:
//   - PoolBuilderOption: a function that sets the chunk size
func WithChunkSize(size uint64) PoolBuilderOption {
	return func(p *pool) {
		p.chunkSize = size
	}
}

// WithAlignment sets the offset alignment between allocations.
// Pass the device's MinUniformBufferOffsetAlignment limit.
//
// Parameters:
//   - alignment: a power of two
//
// Returns:
//   - PoolBuilderOption: a function that sets the alignment
func WithAlignment(alignment uint64) PoolBuilderOption {
	return func(p *pool) {
		if alignment > 0 {
			p.alignment = alignment
		}
	}
}

// WithLabel sets the debug label used for chunk buffers.
func WithLabel(label string) PoolBuilderOption {
	return func(p *pool) {
		p.label = label
	}
}
