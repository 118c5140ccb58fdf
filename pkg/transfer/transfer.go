package transfer

import (
	"fmt"
	"io"
)

// ChunkSize is the unit of every individual read and write during a copy.
const ChunkSize int64 = 0x8000 // 32,768 bytes

// Copy moves exactly budget bytes from src to dst in reads of at most
// ChunkSize. The final read may be shorter than ChunkSize but never reads
// past the budget. A source that runs out before the budget is satisfied is
// an error; nothing is retried.
func Copy(dst io.Writer, src io.Reader, budget int64) (int64, error) {
	if budget < 0 {
		return 0, fmt.Errorf("negative byte budget: %d", budget)
	}

	buf := make([]byte, ChunkSize)
	var copied int64
	for copied < budget {
		want := budget - copied
		if want > ChunkSize {
			want = ChunkSize
		}

		read, err := io.ReadFull(src, buf[:want])
		if err != nil {
			return copied, fmt.Errorf("source ended %d bytes short of budget: %w", budget-copied-int64(read), err)
		}

		written, err := dst.Write(buf[:read])
		copied += int64(written)
		if err != nil {
			return copied, fmt.Errorf("failed to write chunk: %w", err)
		}
	}

	return copied, nil
}
