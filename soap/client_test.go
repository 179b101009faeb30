package soap

import (
	"bytes"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type msgT struct{ A, B string }

type envT struct{ Body struct{ Message msgT } }

func TestRoundTrip(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if v := r.Header.Get("X-Test"); v != "true" {
			http.NotFound(w, r)
			return
		}
		io.Copy(w, r.Body)
	})
	s := httptest.NewServer(echo)
	defer s.Close()
	pre := func(r *http.Request) { r.Header.Set("X-Test", "true") }
	cases := []struct {
		name string
		c    *Client
		in   *msgT
		fail bool
	}{
		{
			name: "soap 1.1",
			c:    &Client{URL: s.URL, Pre: pre},
			in:   &msgT{A: "hello", B: "world"},
		},
		{
			name: "soap 1.2",
			c:    &Client{URL: s.URL, Pre: pre, Version: SOAP12},
			in:   &msgT{A: "foo", B: "bar"},
		},
		{
			name: "no url",
			c:    &Client{URL: "", Pre: pre},
			fail: true,
		},
		{
			name: "missing hook",
			c:    &Client{URL: s.URL},
			in:   &msgT{A: "x"},
			fail: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out envT
			var in Message
			if tc.in != nil {
				in = tc.in
			}
			err := tc.c.RoundTrip("urn:echo", in, &out)
			if tc.fail {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, *tc.in, out.Body.Message)
		})
	}
}

func TestRoundTripHeaders(t *testing.T) {
	cases := []struct {
		name        string
		c           Client
		contentType string
		soapAction  string
		envelope    string
	}{
		{
			name:        "soap 1.1",
			c:           Client{},
			contentType: "text/xml",
			soapAction:  "urn:GetQuote",
			envelope:    Envelope11Namespace,
		},
		{
			name:        "soap 1.1 action namespace",
			c:           Client{Namespace: "urn:stock", ActionNamespace: true},
			contentType: "text/xml",
			soapAction:  "urn:stock/urn:GetQuote",
			envelope:    Envelope11Namespace,
		},
		{
			name:        "soap 1.2",
			c:           Client{Version: SOAP12},
			contentType: `application/soap+xml; charset=utf-8; action="urn:GetQuote"`,
			envelope:    Envelope12Namespace,
		},
		{
			name:        "custom content type",
			c:           Client{ContentType: "text/xml; charset=utf-8"},
			contentType: "text/xml; charset=utf-8",
			soapAction:  "urn:GetQuote",
			envelope:    Envelope11Namespace,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			type seen struct {
				header http.Header
				body   []byte
			}
			got := make(chan seen, 1)
			s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				got <- seen{header: r.Header.Clone(), body: body}
				w.Write(body)
			}))
			defer s.Close()
			c := tc.c
			c.URL = s.URL
			var out envT
			require.NoError(t, c.RoundTrip("urn:GetQuote", &msgT{A: "a"}, &out))
			req := <-got
			assert.Equal(t, tc.contentType, req.header.Get("Content-Type"))
			assert.Equal(t, tc.soapAction, req.header.Get("SOAPAction"))
			var env struct {
				XMLName xml.Name
			}
			require.NoError(t, xml.Unmarshal(req.body, &env))
			assert.Equal(t, "Envelope", env.XMLName.Local)
			assert.Equal(t, tc.envelope, env.XMLName.Space)
		})
	}
}

func TestRoundTripHTTPError(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "server fault", http.StatusInternalServerError)
	}))
	defer s.Close()
	c := &Client{URL: s.URL}
	err := c.RoundTrip("urn:x", &msgT{}, &envT{})
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Contains(t, string(httpErr.Body), "server fault")
	assert.Contains(t, httpErr.Error(), "500")
}

func TestRoundTripResponseCharset(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		sanitize bool
		want     string
		fail     bool
	}{
		{
			name: "latin1",
			body: "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>" +
				"<Envelope><Body><Message><A>caf\xe9</A></Message></Body></Envelope>",
			want: "café",
		},
		{
			name: "invalid utf-8",
			body: "<Envelope><Body><Message><A>ok\xffay</A></Message></Body></Envelope>",
			fail: true,
		},
		{
			name:     "invalid utf-8 sanitized",
			body:     "<Envelope><Body><Message><A>ok\xffay</A></Message></Body></Envelope>",
			sanitize: true,
			want:     "okay",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, tc.body)
			}))
			defer s.Close()
			c := &Client{URL: s.URL, Sanitize: tc.sanitize}
			var out envT
			err := c.RoundTrip("urn:x", &msgT{}, &out)
			if tc.fail {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.Body.Message.A)
		})
	}
}

func TestRoundTripLogs(t *testing.T) {
	defer SetLogger(zerolog.Nop())
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(w, r.Body)
	}))
	defer s.Close()
	c := &Client{URL: s.URL, Version: SOAP12}
	require.NoError(t, c.RoundTrip("urn:Echo", &msgT{A: "a"}, &envT{}))
	assert.Contains(t, buf.String(), `"component":"soap"`)
	assert.Contains(t, buf.String(), `"action":"urn:Echo"`)
	assert.Contains(t, buf.String(), `"version":"1.2"`)
	assert.Contains(t, buf.String(), "sending request")
}

func TestValidUTF8(t *testing.T) {
	assert.Equal(t, []byte("héllo"), validUTF8([]byte("héllo")))
	assert.Equal(t, []byte("hello"), validUTF8([]byte("he\xffllo\xc3")))
}
