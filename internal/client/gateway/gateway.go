// Package gateway maps each Daily Hustle backend operation onto one HTTP
// call. It keeps no state and never retries; callers own both.
package gateway

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Transport is satisfied by *httpclient.Client.
type Transport interface {
	Do(ctx context.Context, method, path string, body, out any) error
	Upload(ctx context.Context, path, field, filename string, r io.Reader, out any) error
}

type Gateway struct {
	t Transport
}

func New(t Transport) *Gateway {
	return &Gateway{t: t}
}

// envelope is the { data: ... } wrapper every success body carries.
type envelope[T any] struct {
	Data T `json:"data"`
}

// listEnvelope is { data: { data: [...], metadata: {...} } }.
type listEnvelope[T any, M any] struct {
	Data struct {
		Data     []T `json:"data"`
		Metadata M   `json:"metadata"`
	} `json:"data"`
}

func get[T any](ctx context.Context, t Transport, path string) (T, error) {
	var env envelope[T]
	err := t.Do(ctx, http.MethodGet, path, nil, &env)
	return env.Data, err
}

func id(s string) string { return url.PathEscape(s) }

func pageParams(pageNo, limitNo int) url.Values {
	if pageNo < 1 {
		pageNo = 1
	}
	if limitNo < 1 {
		limitNo = 10
	}
	v := url.Values{}
	v.Set("pageNo", strconv.Itoa(pageNo))
	v.Set("limitNo", strconv.Itoa(limitNo))
	return v
}
