package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *ClientTestSuite) TestSend() {
	type tcase struct {
		name       string
		entryID    int64
		httpStatus int
		retryAfter string
		wantErr    bool
		wantRetry  time.Duration
		wantCode   int
	}

	cases := []tcase{
		{name: "accepted", entryID: 1, httpStatus: http.StatusAccepted},
		{name: "already exported", entryID: 2, httpStatus: http.StatusConflict},
		{
			name: "too many requests", entryID: 3, httpStatus: http.StatusTooManyRequests,
			retryAfter: "5", wantErr: true, wantRetry: 5 * time.Second,
		},
		{
			name: "too many requests with broken header", entryID: 4, httpStatus: http.StatusTooManyRequests,
			retryAfter: "soon", wantErr: true, wantRetry: defaultRetryAfter * time.Second,
		},
		{
			name: "internal error", entryID: 5, httpStatus: http.StatusInternalServerError,
			wantErr: true, wantCode: http.StatusInternalServerError,
		},
	}

	// сервер подбирает кейс по id записи из тела запроса.
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(RouteJournalEntries, r.URL.Path)
		s.Equal("application/json", r.Header.Get("Content-Type"))

		var entry Entry
		s.NoError(json.NewDecoder(r.Body).Decode(&entry))

		var rc *tcase
		for _, c := range cases {
			if c.entryID == entry.ID {
				rc = &c
				break
			}
		}
		if rc == nil {
			s.Failf("unexpected entry", "тест для записи %d не найден", entry.ID)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if rc.retryAfter != "" {
			w.Header().Set("Retry-After", rc.retryAfter)
		}
		w.WriteHeader(rc.httpStatus)
	}))

	for _, t := range cases {
		s.Run(t.name, func() {
			client := New(s.server.URL)
			err := client.Send(s.T().Context(), Entry{
				ID:        t.entryID,
				MachineID: uuid.New(),
				Kind:      domain.JournalSale,
				Amount:    decimal.NewFromInt(5),
			})

			if !t.wantErr {
				s.Require().NoError(err)
				return
			}
			s.Require().Error(err)

			if t.wantRetry != 0 {
				var tooManyRequestError *TooManyRequestError
				s.Require().ErrorAs(err, &tooManyRequestError)
				s.Equal(t.wantRetry, tooManyRequestError.RetryAfter)
				return
			}
			var statusCodeError *StatusCodeError
			s.Require().ErrorAs(err, &statusCodeError)
			s.Equal(t.wantCode, statusCodeError.Code)
		})
	}
}

func (s *ClientTestSuite) TestRetryAfter() {
	s.Equal(time.Second, retryAfter("1"))
	s.Equal(120*time.Second, retryAfter("120"))
	s.Equal(defaultRetryAfter*time.Second, retryAfter("121"))
	s.Equal(defaultRetryAfter*time.Second, retryAfter("0"))
	s.Equal(defaultRetryAfter*time.Second, retryAfter(""))
}
