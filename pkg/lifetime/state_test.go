package lifetime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intuicio-go/kernel/pkg/lifetime"
)

func TestReadersConcurrentWithNoWriter(t *testing.T) {
	s := lifetime.New()
	require.True(t, s.TryAcquireRead())
	require.True(t, s.TryAcquireRead())
	s.ReleaseRead()
	s.ReleaseRead()
}

func TestWriterExcludesReaders(t *testing.T) {
	s := lifetime.New()
	depth, ok := s.TryAcquireWrite()
	require.True(t, ok)
	assert.Equal(t, uint32(1), depth)

	assert.False(t, s.TryAcquireRead(), "no read borrow while a writer holds the value")
	s.ReleaseWrite(depth)
	assert.True(t, s.TryAcquireRead())
}

func TestReaderExcludesWriter(t *testing.T) {
	s := lifetime.New()
	require.True(t, s.TryAcquireRead())
	_, ok := s.TryAcquireWrite()
	assert.False(t, ok, "no write borrow while a reader holds the value")
	s.ReleaseRead()
	_, ok = s.TryAcquireWrite()
	assert.True(t, ok)
}

func TestNestedWriteBorrowsLIFO(t *testing.T) {
	s := lifetime.New()
	d1, ok := s.TryAcquireWrite()
	require.True(t, ok)
	d2, ok := s.TryAcquireWrite()
	require.True(t, ok)
	assert.Equal(t, d1+1, d2)

	s.ReleaseWrite(d2)
	s.ReleaseWrite(d1)
	assert.True(t, s.TryAcquireRead())
}

func TestReadAccessExcludesWriteAccess(t *testing.T) {
	s := lifetime.New()
	require.True(t, s.TryAcquireReadAccess())
	require.True(t, s.TryAcquireReadAccess(), "multiple read-access guards may coexist")
	assert.False(t, s.IsWriteAccessible())

	s.ReleaseReadAccess()
	assert.False(t, s.IsWriteAccessible(), "one read-access guard still outstanding")
	s.ReleaseReadAccess()
	assert.True(t, s.IsWriteAccessible())
}

func TestWriteAccessExcludesEverything(t *testing.T) {
	s := lifetime.New()
	require.True(t, s.TryAcquireWriteAccess())
	assert.False(t, s.TryAcquireReadAccess())
	assert.False(t, s.TryAcquireWriteAccess())
	s.ReleaseWriteAccess()
	assert.True(t, s.TryAcquireReadAccess())
}
