package memlib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceHeap_SbrkAdvancesBreak(t *testing.T) {
	s := NewSliceHeap(256)

	off, err := s.Sbrk(160)
	require.NoError(t, err)
	require.Equal(t, 0, off)
	require.Equal(t, 160, s.Len())
	require.Len(t, s.Bytes(), 160)

	off, err = s.Sbrk(64)
	require.NoError(t, err)
	require.Equal(t, 160, off, "second Sbrk should return the old break")
	require.Equal(t, 224, s.Len())
}

func TestSliceHeap_ExhaustionLeavesHeapUnchanged(t *testing.T) {
	s := NewSliceHeap(128)

	_, err := s.Sbrk(100)
	require.NoError(t, err)

	_, err = s.Sbrk(64)
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.Equal(t, 100, s.Len(), "failed Sbrk must not move the break")
}

func TestSliceHeap_RejectsNegative(t *testing.T) {
	s := NewSliceHeap(128)
	_, err := s.Sbrk(-8)
	require.ErrorIs(t, err, ErrBadIncrement)
}

func TestSliceHeap_GrowthKeepsEarlierSlices(t *testing.T) {
	s := NewSliceHeap(4096)
	_, err := s.Sbrk(64)
	require.NoError(t, err)

	early := s.Bytes()
	early[10] = 0xAB

	_, err = s.Sbrk(2048)
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), s.Bytes()[10])

	s.Bytes()[10] = 0xCD
	require.Equal(t, byte(0xCD), early[10], "growth must not move the backing store")
}

func TestSliceHeap_DefaultAndClose(t *testing.T) {
	s := NewSliceHeap(0)
	require.Equal(t, DefaultMaxHeap, s.Cap())

	require.NoError(t, s.Close())
	_, err := s.Sbrk(8)
	require.ErrorIs(t, err, ErrClosed)
}

func TestSliceHeap_Reset(t *testing.T) {
	s := NewSliceHeap(128)
	_, err := s.Sbrk(128)
	require.NoError(t, err)
	s.Reset()
	require.Equal(t, 0, s.Len())
	_, err = s.Sbrk(128)
	require.NoError(t, err)
}

func TestMmapHeap_Sbrk(t *testing.T) {
	m, err := NewMmapHeap(1 << 16)
	require.NoError(t, err)
	defer m.Close()

	off, err := m.Sbrk(4096)
	require.NoError(t, err)
	require.Equal(t, 0, off)

	b := m.Bytes()
	require.Len(t, b, 4096)
	b[4095] = 0x7F
	require.Equal(t, byte(0x7F), m.Bytes()[4095])

	_, err = m.Sbrk(1 << 16)
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.Equal(t, 4096, m.Len())
}

func TestMmapHeap_CloseTwice(t *testing.T) {
	m, err := NewMmapHeap(4096)
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	_, err = m.Sbrk(8)
	require.ErrorIs(t, err, ErrClosed)
}

var (
	_ Grower = (*SliceHeap)(nil)
	_ Grower = (*MmapHeap)(nil)
)
