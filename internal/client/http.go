package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gsc/internal/api"
	"gsc/internal/errors"
	"gsc/internal/log"
)

// newRequest builds a request against the configured endpoint with the
// session cookie attached when one exists.
func (c *Client) newRequest(method, uri string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, uri, body)
	if err != nil {
		return nil, &errors.GscError{
			Type:    errors.ErrTypeServer,
			Message: fmt.Sprintf("bad request URI ‘%s’", uri),
			Cause:   err,
		}
	}
	if key, value, ok := c.config.Cookie(); ok {
		log.Debug("> sending cookie %s=%s", key, value)
		req.AddCookie(&http.Cookie{Name: key, Value: value})
	}
	return req, nil
}

// do sends the request, captures any refreshed session cookie, and
// converts a non-2xx status into a ServerError with the server's own
// status, title, and message preserved. The caller owns the response
// body on success. Requests are never retried.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	log.Debug("> sending request to %s", req.URL)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.GscError{
			Type:    errors.ErrTypeServer,
			Message: fmt.Sprintf("could not reach server: %v", err),
			Cause:   err,
		}
	}

	c.saveCookie(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeServerError(resp)
	}
	return resp, nil
}

// saveCookie persists a refreshed session cookie from the response.
func (c *Client) saveCookie(resp *http.Response) {
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return
	}
	ck := cookies[0]
	log.Debug("< received cookie %s=%s", ck.Name, ck.Value)
	c.config.SetCookie(ck.Name, ck.Value)
	if err := c.config.Save(); err != nil {
		log.Warn("could not save cookie: %v", err)
	}
}

func decodeServerError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	var body api.ErrorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Status != 0 {
		return errors.NewServerError(body.Status, body.Title, body.Message)
	}
	return errors.NewServerError(resp.StatusCode, http.StatusText(resp.StatusCode),
		strings.TrimSpace(string(raw)))
}

// getJSON fetches uri and decodes the JSON response into out.
func (c *Client) getJSON(uri string, out any) error {
	req, err := c.newRequest(http.MethodGet, uri, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &errors.GscError{
			Type:    errors.ErrTypeServer,
			Message: "could not understand response from server",
			Cause:   err,
		}
	}
	return nil
}

// sendJSON sends a JSON-bodied request and discards any response body.
func (c *Client) sendJSON(method, uri string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := c.newRequest(method, uri, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// stream fetches uri and copies the raw response body to w.
func (c *Client) stream(uri string, w io.Writer) error {
	req, err := c.newRequest(http.MethodGet, uri, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, err = io.Copy(w, resp.Body)
	return err
}

// absoluteURI turns a server-relative URI from a message body into a
// full request URI.
func (c *Client) absoluteURI(rel string) string {
	return c.config.Endpoint + rel
}
