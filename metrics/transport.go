// Copyright (c) 2017-present Mattermost, Inc. All Rights Reserved.
// See License.txt for license information.

package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Transport records the duration of every GitHub request and whether the
// HTTP cache below it answered the request.
type Transport struct {
	Base    http.RoundTripper
	metrics Provider
}

func NewTransport(base http.RoundTripper, metrics Provider) *Transport {
	return &Transport{base, metrics}
}

func (t *Transport) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	start := time.Now()
	resp, err = t.Base.RoundTrip(req)
	elapsed := float64(time.Since(start)) / float64(time.Second)
	if resp == nil && err != nil {
		return resp, err
	}
	statusCode := strconv.Itoa(resp.StatusCode)
	handler := handlerName(req)
	t.metrics.ObserveGithubRequestDuration(handler, req.Method, statusCode, elapsed)

	// Set by httpcache when the response was served from the LRU.
	if resp.Header.Get("X-From-Cache") == "1" {
		t.metrics.IncreaseGithubCacheHits(req.Method, handler)
	} else {
		t.metrics.IncreaseGithubCacheMisses(req.Method, handler)
	}

	return resp, err
}

// handlerName keeps the label set bounded by collapsing the numeric path
// segments, such as issue numbers and installation ids.
func handlerName(req *http.Request) string {
	segments := strings.Split(req.URL.Path, "/")
	for i, segment := range segments {
		if _, err := strconv.ParseInt(segment, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
