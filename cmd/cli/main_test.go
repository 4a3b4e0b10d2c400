package main

import "testing"

func TestSetIfNotEmpty(t *testing.T) {
	m := map[string]any{}

	setIfNotEmpty(m, "currency", "EUR")
	setIfNotEmpty(m, "due_date", "")

	if m["currency"] != "EUR" {
		t.Fatalf("expected currency to be set, got %v", m["currency"])
	}
	if _, ok := m["due_date"]; ok {
		t.Fatal("expected empty value to be skipped")
	}
}
