// sample implementation, do not build or test
//go:build ignore

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

type ValidateRequest struct {
	LicenseKey string `json:"license_key"`
	MachineID  string `json:"machine_id"`
}

type ValidateResponse struct {
	Status string `json:"status"`
}

// ValidateLicense asks the server for an activation verdict. The first
// successful call from a machine binds the key to that machine; later calls
// from other machines get "different_machine".
func ValidateLicense(baseURL, licenseKey, machineID string) (*ValidateResponse, error) {
	reqBody := ValidateRequest{
		LicenseKey: licenseKey,
		MachineID:  machineID,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequest("POST", baseURL+"/validate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	var out ValidateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &out, nil
}

func main() {
	verdict, err := ValidateLicense("http://localhost:8080", "STOX-AAAA-BBBB-CCCC-DDDD", "my-machine-id")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("verdict:", verdict.Status)
}
