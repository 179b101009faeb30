// Package soap provides a SOAP HTTP client.
package soap

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/html/charset"
)

// Version selects the SOAP envelope and transport conventions.
type Version string

// Supported SOAP versions.
const (
	SOAP11 Version = "1.1"
	SOAP12 Version = "1.2"
)

// Namespaces used in SOAP envelopes.
const (
	XSINamespace        = "http://www.w3.org/2001/XMLSchema-instance"
	Envelope11Namespace = "http://schemas.xmlsoap.org/soap/envelope/"
	Envelope12Namespace = "http://www.w3.org/2003/05/soap-envelope"
)

// A RoundTripper executes a request passing the given req as the SOAP
// envelope body. The HTTP response is then de-serialized onto the resp
// object. Returns error in case an error occurs serializing req, making
// the HTTP request, or de-serializing the response.
type RoundTripper interface {
	RoundTrip(action string, req, resp Message) error
}

// Message is an opaque type used by the RoundTripper to carry XML
// documents for SOAP.
type Message interface{}

// Header is an opaque type used as the SOAP Header element in requests.
type Header interface{}

// AuthHeader is a Header to be encoded as the SOAP Header element in
// requests, to convey credentials for authentication.
type AuthHeader struct {
	Namespace string `xml:"xmlns:ns,attr"`
	Username  string `xml:"ns:username"`
	Password  string `xml:"ns:password"`
}

// Client is a SOAP client.
type Client struct {
	URL             string              // URL of the server
	Namespace       string              // SOAP Namespace
	Version         Version             // SOAP version (default SOAP11)
	XSINamespace    string              // Optional xsi Namespace declared in the envelope
	ActionNamespace bool                // Prefix SOAP 1.1 actions with Namespace
	Envelope        string              // Optional SOAP Envelope namespace
	Header          Header              // Optional SOAP Header
	ContentType     string              // Optional Content-Type (default text/xml)
	Config          *http.Client        // Optional HTTP client
	Pre             func(*http.Request) // Optional hook to modify outbound requests
	Sanitize        bool                // Drop invalid UTF-8 from responses
}

// HTTPError is returned when the server answers with a status other
// than 200 OK. Body holds at most the first megabyte of the response.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%q: %q", e.Status, e.Body)
}

var _ RoundTripper = (*Client)(nil)

// RoundTrip implements the RoundTripper interface.
func (c *Client) RoundTrip(action string, in, out Message) error {
	return c.RoundTripContext(context.Background(), action, in, out)
}

// RoundTripContext is RoundTrip with a context for the HTTP request.
func (c *Client) RoundTripContext(ctx context.Context, action string, in, out Message) error {
	req := &Envelope{
		EnvelopeAttr: c.Envelope,
		NSAttr:       c.Namespace,
		XSIAttr:      c.XSINamespace,
		Header:       c.Header,
		Body:         Body{Message: in},
	}
	if req.EnvelopeAttr == "" {
		req.EnvelopeAttr = c.envelopeNamespace()
	}
	if req.NSAttr == "" {
		req.NSAttr = c.URL
	}
	var b bytes.Buffer
	err := xml.NewEncoder(&b).Encode(req)
	if err != nil {
		return err
	}
	cli := c.Config
	if cli == nil {
		cli = http.DefaultClient
	}
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, &b)
	if err != nil {
		return err
	}
	c.setHeaders(r, action, in != nil)
	if c.Pre != nil {
		c.Pre(r)
	}
	logger := currentLogger().With().
		Str("component", "soap").
		Str("url", c.URL).
		Str("action", action).
		Str("version", string(c.version())).
		Logger()
	logger.Debug().Int("bytes", b.Len()).Msg("sending request")
	resp, err := cli.Do(r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		// read only the first Mb of the body in error case
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
		logger.Debug().Int("status", resp.StatusCode).Msg("request failed")
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}
	var body io.Reader = resp.Body
	if c.Sanitize {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		body = bytes.NewReader(validUTF8(data))
	}
	d := xml.NewDecoder(body)
	d.CharsetReader = charset.NewReaderLabel
	return d.Decode(out)
}

func (c *Client) version() Version {
	if c.Version == "" {
		return SOAP11
	}
	return c.Version
}

func (c *Client) envelopeNamespace() string {
	if c.version() == SOAP12 {
		return Envelope12Namespace
	}
	return Envelope11Namespace
}

// setHeaders sets the transport headers of the SOAP version in use.
// SOAP 1.1 carries the action in the SOAPAction header; SOAP 1.2 moves
// it to the action parameter of the content type.
func (c *Client) setHeaders(r *http.Request, action string, hasBody bool) {
	if c.version() == SOAP12 {
		ct := c.ContentType
		if ct == "" {
			ct = "application/soap+xml; charset=utf-8"
		}
		if action != "" {
			ct += fmt.Sprintf("; action=%q", action)
		}
		r.Header.Set("Content-Type", ct)
		return
	}
	ct := c.ContentType
	if ct == "" {
		ct = "text/xml"
	}
	r.Header.Set("Content-Type", ct)
	if !hasBody {
		return
	}
	if c.ActionNamespace {
		action = fmt.Sprintf("%s/%s", c.Namespace, action)
	}
	r.Header.Add("SOAPAction", action)
}

// Envelope is a SOAP envelope.
type Envelope struct {
	XMLName      xml.Name `xml:"SOAP-ENV:Envelope"`
	EnvelopeAttr string   `xml:"xmlns:SOAP-ENV,attr"`
	NSAttr       string   `xml:"xmlns:ns,attr"`
	XSIAttr      string   `xml:"xmlns:xsi,attr,omitempty"`
	Header       Message  `xml:"SOAP-ENV:Header"`
	Body         Body
}

// Body is the body of a SOAP envelope.
type Body struct {
	XMLName xml.Name `xml:"SOAP-ENV:Body"`
	Message Message
}
