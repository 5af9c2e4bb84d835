package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

// Push sends payloads to the product endpoint in batches.
// Each batch is one POST through the shared gate; all batches are joined
// before returning. A non-200 batch is logged and counted but never stops
// the others. Transport failures are joined into the returned error.
func (c *Client) Push(ctx context.Context, payloads []Record) (PushReport, error) {
	report := PushReport{Payloads: len(payloads)}
	if len(payloads) == 0 {
		return report, nil
	}

	batches := chunk(payloads, c.batchSize)
	report.Batches = len(batches)
	target := c.entityURL(EntityProduct, nil)

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		errs []error
	)

	fail := func(size int, err error) {
		mu.Lock()
		defer mu.Unlock()
		report.FailedBatches++
		report.FailedPayloads += size
		if err != nil {
			errs = append(errs, err)
		}
	}

	for i, batch := range batches {
		wg.Add(1)
		go func() {
			defer wg.Done()

			body, err := json.Marshal(batch)
			if err != nil {
				fail(len(batch), fmt.Errorf("batch %d: failed to encode: %w", i, err))
				return
			}

			status, respBody, err := c.roundTrip(ctx, http.MethodPost, target, body, c.pushTimeout)
			if err != nil {
				c.logger.Error("Batch push failed",
					zap.Int("batch", i),
					zap.Int("size", len(batch)),
					zap.Error(err),
				)
				fail(len(batch), fmt.Errorf("batch %d: %w", i, err))
				return
			}
			if status != http.StatusOK {
				c.logger.Error("Batch rejected",
					zap.Int("batch", i),
					zap.Int("size", len(batch)),
					zap.Int("status", status),
					zap.String("body", string(respBody)),
				)
				fail(len(batch), nil)
				return
			}

			c.logger.Debug("Batch pushed", zap.Int("batch", i), zap.Int("size", len(batch)))
		}()
	}
	wg.Wait()

	c.logger.Info("Push completed",
		zap.Int("payloads", report.Payloads),
		zap.Int("batches", report.Batches),
		zap.Int("failed_batches", report.FailedBatches),
	)

	return report, errors.Join(errs...)
}

// chunk splits items into consecutive slices of at most size elements.
func chunk(items []Record, size int) [][]Record {
	if size <= 0 {
		size = len(items)
	}
	out := make([][]Record, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}
