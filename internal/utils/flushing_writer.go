package utils

import (
	"io"
	"sync"
)

// flushable matches writers that buffer output, such as bufio.Writer.
type flushable interface {
	Flush() error
}

// FlushingWriter pushes run summaries through buffered writers immediately so
// progress stays visible while tool processes are still executing.
type FlushingWriter struct {
	destination io.Writer
	writeMutex  sync.Mutex
}

// NewFlushingWriter wraps the destination writer, flushing after every write
// when the destination supports it. Wrapping an existing FlushingWriter
// returns it unchanged; a nil destination yields nil.
func NewFlushingWriter(destination io.Writer) io.Writer {
	if destination == nil {
		return nil
	}
	if _, alreadyWrapping := destination.(*FlushingWriter); alreadyWrapping {
		return destination
	}
	return &FlushingWriter{destination: destination}
}

// Write forwards data to the destination and flushes it when possible.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.destination == nil {
		return 0, nil
	}

	flushingWriter.writeMutex.Lock()
	defer flushingWriter.writeMutex.Unlock()

	writtenBytes, writeError := flushingWriter.destination.Write(data)
	if writeError != nil {
		return writtenBytes, writeError
	}

	if bufferedDestination, supportsFlush := flushingWriter.destination.(flushable); supportsFlush {
		if flushError := bufferedDestination.Flush(); flushError != nil {
			return writtenBytes, flushError
		}
	}

	return writtenBytes, nil
}
