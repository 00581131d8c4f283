package sandbox

import "sync"

// task runs fn over data split in contiguous chunks, one goroutine per chunk.
func task[T any](workersCount int, data []T, fn func(data T)) {
	if len(data) == 0 {
		return
	}

	var wg sync.WaitGroup
	workersCount = max(1, min(workersCount, len(data)))
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		start, end := workerID*chunkSize, min((workerID+1)*chunkSize, dataSize)
		if start >= end {
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(data[i])
			}
		}()
	}
	wg.Wait()
}
