// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pdiddy/statement-engine/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.LedgerConfig{LedgerDir: t.TempDir(), MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	first := Run{
		InputPath:   "inbox/extrato_jan.pdf",
		InputFormat: "pdf",
		OutputPath:  "outputs/extrato_jan_processed.xlsx",
		RowsRead:    42,
		RowsWritten: 40,
		Status:      StatusOK,
		StartedAt:   now.Add(-time.Minute),
		FinishedAt:  now.Add(-time.Minute + 2*time.Second),
	}
	id1, err := s.Record(ctx, first)
	require.NoError(t, err)
	require.Greater(t, id1, int64(0))

	second := Run{
		InputPath:   "inbox/extrato_fev.csv",
		InputFormat: "csv",
		Status:      StatusFailed,
		Error:       `column "linha" not found`,
		StartedAt:   now,
		FinishedAt:  now,
	}
	id2, err := s.Record(ctx, second)
	require.NoError(t, err)
	require.Greater(t, id2, id1)

	runs, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	require.Equal(t, id2, runs[0].ID)
	require.Equal(t, StatusFailed, runs[0].Status)
	require.Equal(t, `column "linha" not found`, runs[0].Error)

	require.Equal(t, "inbox/extrato_jan.pdf", runs[1].InputPath)
	require.Equal(t, 42, runs[1].RowsRead)
	require.Equal(t, 40, runs[1].RowsWritten)
	require.WithinDuration(t, first.StartedAt, runs[1].StartedAt, time.Millisecond)
}

func TestListLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Record(ctx, Run{
			InputPath:   "inbox/a.txt",
			InputFormat: "text",
			Status:      StatusOK,
			StartedAt:   time.Now(),
			FinishedAt:  time.Now(),
		})
		require.NoError(t, err)
	}

	runs, err := s.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
}

func TestStoreReopens(t *testing.T) {
	dir := t.TempDir()
	cfg := types.LedgerConfig{LedgerDir: dir}

	s, err := NewStore(cfg)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), Run{
		InputPath: "x.txt", InputFormat: "text", Status: StatusOK,
		StartedAt: time.Now(), FinishedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Schema creation is idempotent and data survives reopening.
	s2, err := NewStore(cfg)
	require.NoError(t, err)
	defer s2.Close()

	runs, err := s2.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
}
