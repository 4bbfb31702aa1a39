package provider_test

import (
	"bytes"
	"io"
	"net/http"
)

type fakeTransport struct {
	respStatus int
	respBody   []byte
	calls      int
	body       []byte
	path       string
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.calls++
	b, _ := io.ReadAll(req.Body)
	_ = req.Body.Close()
	f.body = b
	f.path = req.URL.Path
	resp := &http.Response{
		StatusCode: f.respStatus,
		Body:       io.NopCloser(bytes.NewReader(f.respBody)),
		Header:     make(http.Header),
		Request:    req,
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp, nil
}
