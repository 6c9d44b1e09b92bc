package namecheap

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
)

// maxResponseBytes caps how much of a response body is read. Pricing
// responses are the largest the API serves and stay well under this.
const maxResponseBytes = 8 << 20

// apiResponse is the registrar's XML envelope. Command results live in
// CommandResponse as raw inner XML; each service decodes that fragment
// into its own typed shape.
type apiResponse struct {
	XMLName          xml.Name       `xml:"ApiResponse"`
	Status           string         `xml:"Status,attr"`
	Errors           []responseErr  `xml:"Errors>Error"`
	RequestedCommand string         `xml:"RequestedCommand"`
	CommandResponse  commandPayload `xml:"CommandResponse"`
	Server           string         `xml:"Server"`
	ExecutionTime    string         `xml:"ExecutionTime"`
}

type responseErr struct {
	Number string `xml:"Number,attr"`
	Text   string `xml:",chardata"`
}

type commandPayload struct {
	Type  string `xml:"Type,attr"`
	Inner []byte `xml:",innerxml"`
}

// call performs one signed GET against the API and returns the parsed
// envelope. params may be nil. No retries, no caching: each call is one
// synchronous round trip and failures are the caller's to handle.
func (c *Client) call(ctx context.Context, command string, params url.Values) (*apiResponse, error) {
	q := url.Values{}
	q.Set("ApiUser", c.apiUser)
	q.Set("ApiKey", c.apiKey)
	q.Set("UserName", c.userName)
	q.Set("ClientIp", c.clientIP)
	q.Set("Command", command)
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	reqURL := c.baseURL + "?" + q.Encode()
	c.log.Debug("namecheap api request", "command", command, "endpoint", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{Op: command, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: command, Err: err, Timeout: isTimeoutErr(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Op: command, Err: err, Timeout: isTimeoutErr(err)}
	}
	c.log.Debug("namecheap api response", "command", command, "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			Op:  command,
			Err: fmt.Errorf("unexpected HTTP status %d", resp.StatusCode),
		}
	}

	return parseEnvelope(body)
}

func isTimeoutErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// parseEnvelope turns a raw response body into an envelope or a typed
// error. The registrar occasionally returns broken XML for auth failures,
// so those are string-matched before parsing, and the known "</e>" closing
// tag typo is repaired.
func parseEnvelope(body []byte) (*apiResponse, error) {
	text := string(body)

	if strings.Contains(text, "API Key is invalid or API access has not been enabled") {
		return nil, newAPIError("1011102", "API Key is invalid or API access has not been enabled")
	}
	if strings.Contains(text, "IP is not in the whitelist") {
		return nil, newAPIError("1011147", "IP is not in the whitelist")
	}

	text = strings.ReplaceAll(text, "</e>", "</Error>")

	var resp apiResponse
	if err := xml.Unmarshal([]byte(text), &resp); err != nil {
		return nil, &ParseError{Err: err, Snippet: snippet(text)}
	}

	if strings.EqualFold(resp.Status, "ERROR") {
		if len(resp.Errors) == 0 {
			return nil, &APIError{Code: "UNKNOWN", Message: "registrar reported an error without details"}
		}
		first := resp.Errors[0]
		number := first.Number
		if number == "" {
			number = "UNKNOWN"
		}
		msg := strings.TrimSpace(first.Text)
		if msg == "" {
			msg = "unknown error"
		}
		return nil, newAPIError(number, msg)
	}

	return &resp, nil
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 200 {
		return s[:200]
	}
	return s
}

// decodeResult unmarshals the CommandResponse fragment into out. out must
// be a struct with an xml.Name of "CommandResponse" selecting the result
// elements it cares about.
func decodeResult(resp *apiResponse, out any) error {
	wrapped := append([]byte("<CommandResponse>"), resp.CommandResponse.Inner...)
	wrapped = append(wrapped, []byte("</CommandResponse>")...)
	if err := xml.Unmarshal(wrapped, out); err != nil {
		// Unwrap field-level validation failures raised by custom attr
		// decoders so callers see them as local validation, not parsing.
		var ve *ValidationError
		if errors.As(err, &ve) {
			return ve
		}
		return &ParseError{Err: err, Snippet: snippet(string(resp.CommandResponse.Inner))}
	}
	return nil
}

// get is the common fetch-and-decode path used by the services.
func (c *Client) get(ctx context.Context, command string, params url.Values, out any) error {
	resp, err := c.call(ctx, command, params)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeResult(resp, out)
}
