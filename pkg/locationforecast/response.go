package locationforecast

import (
	"encoding/json"
	"time"
)

// Response is one successfully fetched forecast. It is only ever
// constructed after a completed 200 or 304 exchange, so the raw body is
// always well-formed JSON matching the Body schema. The value is immutable;
// callers keep it around and thread it back into the next fetch via
// Params.WithLastResponse.
type Response struct {
	expiresAt    time.Time
	lastModified string
	rawBody      string
}

func newResponse(expiresAt time.Time, lastModified, rawBody string) *Response {
	return &Response{
		expiresAt:    expiresAt,
		lastModified: lastModified,
		rawBody:      rawBody,
	}
}

// ExpiresAt returns the freshness deadline from the origin's Expires
// header. Until this instant the response may be used without contacting
// the origin again.
func (r *Response) ExpiresAt() time.Time { return r.expiresAt }

// LastModified returns the origin's Last-Modified header verbatim. It is
// echoed back as If-Modified-Since on the next conditional request.
func (r *Response) LastModified() string { return r.lastModified }

// Raw returns the exact bytes of the response body.
func (r *Response) Raw() string { return r.rawBody }

// Body decodes the raw body into the typed forecast model. Decoding
// happens on every call; callers wanting the decoded form repeatedly
// should hold on to the result themselves.
func (r *Response) Body() (*Body, error) {
	var body Body
	if err := json.Unmarshal([]byte(r.rawBody), &body); err != nil {
		return nil, &MalformedResponseError{Reason: "decoding body", Err: err}
	}
	if err := body.validate(); err != nil {
		return nil, err
	}
	return &body, nil
}
