package testutils

import (
	"io"
	"net/http"
	"net/http/httptest"
)

type RequestOptions struct {
	headers http.Header
}

type RequestArgs struct {
	Router http.Handler
	Method string
	URL    string
	Body   io.Reader
}

// MakeRequest выполняет запрос к роутеру через httptest.
func MakeRequest(args RequestArgs, opts ...func(*RequestOptions)) *http.Response {
	options := RequestOptions{headers: make(http.Header)}
	for _, opt := range opts {
		opt(&options)
	}

	request := httptest.NewRequest(args.Method, args.URL, args.Body)
	for name, values := range options.headers {
		for _, v := range values {
			request.Header.Add(name, v)
		}
	}

	recorder := httptest.NewRecorder()
	args.Router.ServeHTTP(recorder, request)
	return recorder.Result()
}

// WithHeader добавляет заголовок. Повторный вызов с тем же именем добавляет еще одно значение.
func WithHeader(name, value string) func(*RequestOptions) {
	return func(o *RequestOptions) {
		o.headers.Add(name, value)
	}
}

func WithJSON() func(*RequestOptions) {
	return WithHeader("Content-Type", "application/json")
}

func WithBearer(token string) func(*RequestOptions) {
	return WithHeader("Authorization", "Bearer "+token)
}
