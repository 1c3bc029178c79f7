package memory

import (
	"testing"

	"github.com/mmynk/minibank/internal/storage"
	"github.com/mmynk/minibank/internal/storage/storagetest"
)

func TestMemoryStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return New()
	})
}
