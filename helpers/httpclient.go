package helpers

import (
	"net"
	"net/http"
	"time"

	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

// CreateHTTPClient returns a client presenting the given client certificate.
// Empty certs yield a plain client.
func CreateHTTPClient(tlsCerts *models.TLSCerts, timeout time.Duration) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout: 30 * time.Second,
	}).DialContext
	transport.IdleConnTimeout = 5 * time.Second
	transport.MaxIdleConnsPerHost = 200

	tlsConfig, err := tlsCerts.CreateClientConfig()
	if err != nil {
		return nil, err
	}
	if tlsConfig != nil {
		transport.TLSClientConfig = tlsConfig
	}

	return &http.Client{Transport: transport, Timeout: timeout}, nil
}
