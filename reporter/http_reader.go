// Reader is a testing facility to drive a running http bridge.

package reporter

import (
	"bytes"
	"io"
	"net/http"
)

type HttpReader struct {
	serverIP   string // listen ip
	serverPort string // listen port
}

func NewHttpReader(serverIP string, serverPort string) *HttpReader {
	return &HttpReader{
		serverIP:   serverIP,
		serverPort: serverPort,
	}
}

func (hr *HttpReader) base() string {
	return "http://" + hr.serverIP + ":" + hr.serverPort
}

func (hr *HttpReader) GetHello() (string, error) {
	resp, err := http.Get(hr.base() + ROUTE_HELLO)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetRequest fetches the stored record of an account, raw body + status code.
func (hr *HttpReader) GetRequest(accountID string) (string, int, error) {
	resp, err := http.Get(hr.base() + ROUTE_REQUEST + "?account_id=" + accountID)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, err
	}
	return string(body), resp.StatusCode, nil
}

// PostAs sends a JSON body to a route with the caller header set.
func (hr *HttpReader) PostAs(caller, route, jsonBody string) (string, int, error) {
	req, err := http.NewRequest(http.MethodPost, hr.base()+route, bytes.NewBufferString(jsonBody))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HEADER_CALLER, caller)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, err
	}
	return string(body), resp.StatusCode, nil
}
