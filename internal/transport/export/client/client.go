// Package client HTTP клиент внешней системы учета, принимающей записи журнала автоматов.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const RouteJournalEntries = "/api/journal"

// Границы значения заголовка Retry-After в секундах.
const (
	minRetryAfter     = 1
	maxRetryAfter     = 120
	defaultRetryAfter = 60
)

// Entry запись журнала в формате учетной системы.
type Entry struct {
	ID        int64                  `json:"id"`
	MachineID uuid.UUID              `json:"machine_id"`
	CreatedAt time.Time              `json:"created_at"`
	Kind      domain.JournalKindType `json:"kind"`
	Resource  domain.ResourceID      `json:"resource,omitempty"`
	Amount    decimal.Decimal        `json:"amount"`
	Details   string                 `json:"details,omitempty"`
}

func NewEntry(e domain.JournalEntry) Entry {
	return Entry{
		ID:        e.ID,
		MachineID: e.MachineID,
		CreatedAt: e.CreatedAt,
		Kind:      e.Kind,
		Resource:  e.Resource,
		Amount:    e.Amount,
		Details:   e.Details,
	}
}

// HTTPClient реализация Client поверх net/http.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) HTTPClient {
	return HTTPClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// Send отправляет запись журнала. Запись считается принятой при любом 2xx ответе, а также при
// http.StatusConflict (запись с таким id уже принята ранее). На http.StatusTooManyRequests возвращает
// TooManyRequestError, на остальные статусы StatusCodeError.
//
//nolint:nonamedreturns
func (c HTTPClient) Send(ctx context.Context, entry Entry) (err error) {
	body, marshalErr := json.Marshal(entry)
	if marshalErr != nil {
		return fmt.Errorf("marshal entry: %s", marshalErr.Error())
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+RouteJournalEntries, bytes.NewReader(body))
	if reqErr != nil {
		return fmt.Errorf("create request: %s", reqErr.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return fmt.Errorf("do request: %s", doErr.Error())
	}
	defer func() {
		// тело дочитываем, чтобы соединение вернулось в пул.
		_, _ = io.Copy(io.Discard, resp.Body)
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewTooManyRequestError(retryAfter(resp.Header.Get("Retry-After")))
	case resp.StatusCode == http.StatusConflict:
		return nil
	case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
		return nil
	default:
		return NewStatusCodeError(resp.StatusCode)
	}
}

// retryAfter разбирает заголовок Retry-After. Неверное или выходящее за границы значение заменяется
// на defaultRetryAfter.
func retryAfter(header string) time.Duration {
	value, parseErr := decimal.NewFromString(header)
	if parseErr != nil ||
		value.LessThan(decimal.NewFromInt(minRetryAfter)) ||
		value.GreaterThan(decimal.NewFromInt(maxRetryAfter)) {
		value = decimal.NewFromInt(defaultRetryAfter)
	}
	return time.Duration(value.IntPart()) * time.Second
}
