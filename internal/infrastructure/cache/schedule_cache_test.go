package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/model"
)

func sampleSchedule(t *testing.T) []model.AmortizationScheduleEntry {
	t.Helper()
	res, err := model.GenerateSchedule(model.ScheduleTerms{
		LoanID:     "loan-1",
		Principal:  decimal.NewFromInt(1000),
		AnnualRate: decimal.RequireFromString("12"),
		TermMonths: 3,
		StartDate:  time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	res.Entries[0].IsPaid = true
	return res.Entries
}

func TestScheduleKey(t *testing.T) {
	assert.Equal(t, "schedule:owner-1:loan-1", scheduleKey("owner-1", "loan-1"))
}

func TestEncodeDecodeSchedule(t *testing.T) {
	entries := sampleSchedule(t)

	raw, err := encodeSchedule(7, entries)
	require.NoError(t, err)

	var doc struct {
		Version int `json:"version"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, 7, doc.Version)

	got, err := decodeSchedule("loan-1", raw)
	require.NoError(t, err)

	require.Len(t, got, len(entries))
	for i := range entries {
		assert.Equal(t, entries[i].PaymentNumber, got[i].PaymentNumber)
		assert.True(t, entries[i].PaymentDate.Equal(got[i].PaymentDate))
		assert.True(t, entries[i].PaymentAmount.Equal(got[i].PaymentAmount))
		assert.True(t, entries[i].RemainingBalance.Equal(got[i].RemainingBalance))
		assert.Equal(t, entries[i].IsPaid, got[i].IsPaid)
		assert.Equal(t, "loan-1", got[i].LoanID)
	}
}

func TestDecodeSchedule_RejectsGarbage(t *testing.T) {
	_, err := decodeSchedule("loan-1", []byte("not json"))
	assert.ErrorContains(t, err, "decode schedule")
}

func TestScheduleCache_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	c := NewScheduleCache(client, time.Minute)
	ctx := context.Background()

	entries, ok, err := c.Get(ctx, "owner-1", "loan-1")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Nil(t, entries)

	assert.ErrorContains(t, c.Set(ctx, "owner-1", "loan-1", 1, sampleSchedule(t)), "redis set schedule")
}
