package ulid

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidID(t *testing.T) {
	validULID := GenerateID()

	tests := []struct {
		id       string
		expected bool
	}{
		{validULID, true},
		{"0", false},
		{"education-2", false},
		{"01b4e6bxy0prj5g420d25mwqy0", false},
		{"01B4E6BXY0PRJ5G420D25MWQY!", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidID(tt.id))
		})
	}
}

func TestTimestamp(t *testing.T) {
	before := time.Now().Add(-time.Second)
	ts, ok := Timestamp(GenerateID())
	require.True(t, ok)
	assert.True(t, ts.After(before))

	_, ok = Timestamp("not-an-id")
	assert.False(t, ok)
}

func TestMockGenerator(t *testing.T) {
	defer ResetGenerator()

	MockGenerator("01HF53Z4RCVPRANKFBZYMS72QW")
	assert.Equal(t, "01HF53Z4RCVPRANKFBZYMS72QW", GenerateID())
	assert.Equal(t, "01HF53Z4RCVPRANKFBZYMS72QW", GenerateID())

	ResetGenerator()
	assert.NotEqual(t, GenerateID(), GenerateID())
}

func TestGenerateUniqueID(t *testing.T) {
	var wg sync.WaitGroup
	ids := make(map[string]struct{})
	mu := sync.Mutex{}

	numIDs := 10000

	wg.Add(numIDs)
	for i := 0; i < numIDs; i++ {
		go func() {
			defer wg.Done()
			id := GenerateID()
			mu.Lock()
			defer mu.Unlock()
			ids[id] = struct{}{}
		}()
	}

	wg.Wait()

	assert.Equal(t, numIDs, len(ids))
}
