package httputils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// PostJSON posts a JSON body with an optional bearer token and decodes the
// response into out. Non-2xx responses become an error carrying the server's
// {"error": ...} message when one is present.
func PostJSON(ctx context.Context, client *http.Client, url, bearer string, body, out interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if client == nil {
		client = http.DefaultClient
	}
	r, err := client.Do(req)
	if err != nil {
		return err
	}
	defer r.Body.Close()
	if r.StatusCode < 200 || r.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(r.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("status %d: %s", r.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("bad status: %d", r.StatusCode)
	}
	if out != nil {
		return json.NewDecoder(r.Body).Decode(out)
	}
	return nil
}
