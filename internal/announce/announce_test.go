package announce

import (
	"sync"
	"testing"
)

func TestShutdownConcurrentAndIdempotent(t *testing.T) {
	// The context watcher and the owner can both call Shutdown; run with
	// -race to verify the registration handle is released exactly once.
	a := &Announcer{}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Shutdown()
		}()
	}
	wg.Wait()

	if a.server != nil {
		t.Error("server handle should be nil after shutdown")
	}
}
