// Package imgbb is a minimal client for the imgbb image host: multipart
// upload in, public display URL out.
package imgbb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	HTTP     *http.Client
	Endpoint string
	Key      string
}

func New(endpoint, key string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{HTTP: hc, Endpoint: endpoint, Key: key}
}

type response struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		ID         string `json:"id"`
		URL        string `json:"url"`
		DisplayURL string `json:"display_url"`
		DeleteURL  string `json:"delete_url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload posts image bytes under the given filename and returns the public
// display URL.
func (c *Client) Upload(filename string, data []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	u := c.Endpoint + "?key=" + url.QueryEscape(c.Key)
	req, err := http.NewRequest(http.MethodPost, u, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var parsed response
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("imgbb: unexpected response (status %d)", resp.StatusCode)
	}
	if !parsed.Success || parsed.Data.DisplayURL == "" {
		if parsed.Error.Message != "" {
			return "", errors.New("imgbb: " + parsed.Error.Message)
		}
		return "", fmt.Errorf("imgbb: upload failed (status %d)", resp.StatusCode)
	}
	return parsed.Data.DisplayURL, nil
}
