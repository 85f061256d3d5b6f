package retry

import (
	"net"
	"net/http"
	"time"
)

// HTTPClient wraps an http.Client with the same bounded backoff used by
// Do, retrying requests that failed with transient network errors,
// 429s, or 5xx responses.
type HTTPClient struct {
	client *http.Client
	policy Policy
}

func NewHTTPClient(client *http.Client, policy Policy) *HTTPClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPClient{
		client: client,
		policy: policy.normalized(),
	}
}

func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error
	delay := c.policy.Delay

	for attempt := 1; attempt <= c.policy.Attempts; attempt++ {
		if attempt > 1 {
			if req.GetBody != nil {
				body, bodyErr := req.GetBody()
				if bodyErr != nil {
					return nil, bodyErr
				}
				req.Body = body
			}

			time.Sleep(jitter(delay))
			delay = min(time.Duration(float64(delay)*c.policy.Multiplier), c.policy.MaxDelay)
		}

		resp, err = c.client.Do(req)
		if !retryable(resp, err) {
			return resp, err
		}

		// The last response goes back to the caller, who still needs
		// to read its body.
		if attempt < c.policy.Attempts && resp != nil {
			_ = resp.Body.Close()
		}
	}

	return resp, err
}

func retryable(resp *http.Response, err error) bool {
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return true
		}
		if _, ok := err.(*net.OpError); ok {
			return true
		}
		if _, ok := err.(*net.DNSError); ok {
			return true
		}
		return false
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}

	return resp.StatusCode >= 500 && resp.StatusCode < 600
}
