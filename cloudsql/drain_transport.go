package cloudsql

import (
	"io"
	"net/http"
)

// drainingBody reads the rest of a response before closing it so the
// connection can go back to the pool.
type drainingBody struct {
	io.ReadCloser
}

func (b drainingBody) Close() error {
	_, _ = io.Copy(io.Discard, b.ReadCloser)
	return b.ReadCloser.Close()
}

var _ http.RoundTripper = DrainingTransport{}

type DrainingTransport struct {
	Transport http.RoundTripper
}

func (d DrainingTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	resp, err := d.Transport.RoundTrip(request)
	if err != nil {
		return resp, err
	}
	resp.Body = drainingBody{resp.Body}
	return resp, nil
}
