package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/complex-planner/internal/application/planner"
)

// parseBuildingFlag parses "building[:quantity]"
func parseBuildingFlag(value string) (planner.BuildingRequest, error) {
	id, qty, found := strings.Cut(value, ":")
	req := planner.BuildingRequest{BuildingID: strings.TrimSpace(id), Quantity: 1}
	if req.BuildingID == "" {
		return req, fmt.Errorf("invalid building %q: missing building id", value)
	}
	if found {
		n, err := strconv.Atoi(strings.TrimSpace(qty))
		if err != nil {
			return req, fmt.Errorf("invalid building %q: quantity must be a number", value)
		}
		req.Quantity = n
	}
	return req, nil
}

// parseExtractionFlag parses "building:yield,yield,..."
func parseExtractionFlag(value string) (planner.BuildingRequest, error) {
	id, list, found := strings.Cut(value, ":")
	req := planner.BuildingRequest{BuildingID: strings.TrimSpace(id)}
	if req.BuildingID == "" || !found || strings.TrimSpace(list) == "" {
		return req, fmt.Errorf("invalid extraction %q: expected building:yield[,yield...]", value)
	}
	for _, part := range strings.Split(list, ",") {
		y, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return req, fmt.Errorf("invalid extraction %q: yields must be numbers", value)
		}
		req.Yields = append(req.Yields, y)
	}
	return req, nil
}

// parsePriceFlag parses "good=price"; a trailing "!" marks the good unused
func parsePriceFlag(value string) (planner.PriceRequest, error) {
	good, price, found := strings.Cut(value, "=")
	req := planner.PriceRequest{GoodID: strings.TrimSpace(good)}
	if req.GoodID == "" || !found {
		return req, fmt.Errorf("invalid price %q: expected good=price", value)
	}
	price = strings.TrimSpace(price)
	if strings.HasSuffix(price, "!") {
		req.Unused = true
		price = strings.TrimSuffix(price, "!")
	}
	n, err := strconv.Atoi(price)
	if err != nil {
		return req, fmt.Errorf("invalid price %q: price must be a number", value)
	}
	req.Price = n
	return req, nil
}

// readPlanFile loads a plan request from a YAML or JSON file
func readPlanFile(path string) (*planner.PlanCommand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var cmd planner.PlanCommand
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cmd); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse plan file: %w", err)
	}
	return &cmd, nil
}

// maskPassword masks the password of a connection URL for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}

// prettyPrint writes v as indented JSON
func prettyPrint(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
