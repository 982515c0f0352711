package computation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Register announces addr to the storage service at storageURL.
func Register(ctx context.Context, storageURL, addr string) error {
	data, err := json.Marshal(struct {
		Addr string `json:"addr"`
	}{Addr: addr})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s", strings.TrimSuffix(storageURL, "/"), "regist_compute")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("register %s: %s: %s", addr, resp.Status, strings.TrimSpace(string(msg)))
	}
	return nil
}
