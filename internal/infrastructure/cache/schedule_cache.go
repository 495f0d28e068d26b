package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/vijayakumar6979-dotcom/FinanceFlow-sub004/internal/domain/model"
)

// ScheduleCache implements port.ScheduleCache on Redis. Entries are stored
// as one JSON document per loan, tagged with the loan's schedule version,
// and expire after ttl.
type ScheduleCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewScheduleCache wraps client. Both *redis.Client and *redis.ClusterClient
// satisfy redis.Cmdable.
func NewScheduleCache(client redis.Cmdable, ttl time.Duration) *ScheduleCache {
	return &ScheduleCache{client: client, ttl: ttl}
}

// setIfNewer stores ARGV[1] unless the document already under KEYS[1]
// carries a schedule version of at least ARGV[2]. ARGV[3] is the TTL in
// milliseconds, zero meaning no expiry.
var setIfNewer = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if current then
	local ok, doc = pcall(cjson.decode, current)
	if ok and type(doc) == 'table' and tonumber(doc.version) and tonumber(doc.version) >= tonumber(ARGV[2]) then
		return 0
	end
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

type cachedSchedule struct {
	Version int           `json:"version"`
	Entries []cachedEntry `json:"entries"`
}

type cachedEntry struct {
	PaymentDate      time.Time       `json:"payment_date"`
	PaymentAmount    decimal.Decimal `json:"payment_amount"`
	PrincipalAmount  decimal.Decimal `json:"principal_amount"`
	InterestAmount   decimal.Decimal `json:"interest_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	PaymentNumber    int             `json:"payment_number"`
	IsPaid           bool            `json:"is_paid"`
}

func scheduleKey(ownerID, loanID string) string {
	return fmt.Sprintf("schedule:%s:%s", ownerID, loanID)
}

// Get returns the cached schedule. A miss is ok == false with a nil error.
func (c *ScheduleCache) Get(ctx context.Context, ownerID, loanID string) ([]model.AmortizationScheduleEntry, bool, error) {
	raw, err := c.client.Get(ctx, scheduleKey(ownerID, loanID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get schedule: %w", err)
	}

	entries, err := decodeSchedule(loanID, raw)
	if err != nil {
		return nil, false, err
	}
	return entries, true, nil
}

// Set stores entries as schedule version of the loan. A write carrying an
// older or equal version than the cached one is dropped, so a reader that
// loaded the loan before a concurrent regeneration cannot overwrite the
// newer schedule.
func (c *ScheduleCache) Set(ctx context.Context, ownerID, loanID string, version int, entries []model.AmortizationScheduleEntry) error {
	raw, err := encodeSchedule(version, entries)
	if err != nil {
		return err
	}
	key := scheduleKey(ownerID, loanID)
	if err := setIfNewer.Run(ctx, c.client, []string{key}, raw, version, c.ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("redis set schedule: %w", err)
	}
	return nil
}

func encodeSchedule(version int, entries []model.AmortizationScheduleEntry) ([]byte, error) {
	out := cachedSchedule{Version: version, Entries: make([]cachedEntry, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, cachedEntry{
			PaymentNumber:    e.PaymentNumber,
			PaymentDate:      e.PaymentDate,
			PaymentAmount:    e.PaymentAmount,
			PrincipalAmount:  e.PrincipalAmount,
			InterestAmount:   e.InterestAmount,
			RemainingBalance: e.RemainingBalance,
			IsPaid:           e.IsPaid,
		})
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode schedule: %w", err)
	}
	return raw, nil
}

func decodeSchedule(loanID string, raw []byte) ([]model.AmortizationScheduleEntry, error) {
	var in cachedSchedule
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	out := make([]model.AmortizationScheduleEntry, 0, len(in.Entries))
	for _, e := range in.Entries {
		out = append(out, model.AmortizationScheduleEntry{
			LoanID:           loanID,
			PaymentNumber:    e.PaymentNumber,
			PaymentDate:      e.PaymentDate,
			PaymentAmount:    e.PaymentAmount,
			PrincipalAmount:  e.PrincipalAmount,
			InterestAmount:   e.InterestAmount,
			RemainingBalance: e.RemainingBalance,
			IsPaid:           e.IsPaid,
		})
	}
	return out, nil
}
