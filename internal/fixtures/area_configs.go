package fixtures

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"gopkg.in/yaml.v3"
)

// LoadAreaConfigs decodes and validates an area config seed document:
//
//	configs:
//	  - area: Makati
//	    is_fixed: true
//	    is_semi: true
func LoadAreaConfigs(r io.Reader) (payroll.UpsertAreaConfigsRequest, error) {
	var req payroll.UpsertAreaConfigsRequest

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return payroll.UpsertAreaConfigsRequest{}, fmt.Errorf("failed to decode area configs: %w", err)
	}

	if err := req.Validate(); err != nil {
		return payroll.UpsertAreaConfigsRequest{}, err
	}
	return req, nil
}

func LoadAreaConfigsFile(path string) (payroll.UpsertAreaConfigsRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return payroll.UpsertAreaConfigsRequest{}, fmt.Errorf("failed to open area config file: %w", err)
	}
	defer f.Close()

	return LoadAreaConfigs(f)
}
