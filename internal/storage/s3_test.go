// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import "testing"

func TestNewWithoutCredentials(t *testing.T) {
	// Missing endpoint or credentials means storage is disabled, not an error.
	c, err := New("", "auto", "", "", "bucket", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c != nil {
		t.Error("expected nil client when storage is unconfigured")
	}
}

func TestFileURL(t *testing.T) {
	c := &Client{endpoint: "https://s3.example.com", bucket: "guide"}
	if got := c.FileURL("uploads/a.webp"); got != "https://s3.example.com/guide/uploads/a.webp" {
		t.Errorf("FileURL = %q", got)
	}

	c.publicURL = "https://cdn.example.com"
	if got := c.FileURL("uploads/a.webp"); got != "https://cdn.example.com/uploads/a.webp" {
		t.Errorf("FileURL with publicURL = %q", got)
	}
}

func TestExtractKey(t *testing.T) {
	c := &Client{
		endpoint:  "https://s3.example.com",
		bucket:    "guide",
		publicURL: "https://cdn.example.com",
	}

	key, ok := c.ExtractKey("https://cdn.example.com/uploads/a.webp")
	if !ok || key != "uploads/a.webp" {
		t.Errorf("ExtractKey(cdn) = %q, %v", key, ok)
	}

	key, ok = c.ExtractKey("https://s3.example.com/guide/uploads/b.webp")
	if !ok || key != "uploads/b.webp" {
		t.Errorf("ExtractKey(path-style) = %q, %v", key, ok)
	}

	_, ok = c.ExtractKey("https://elsewhere.example.com/c.webp")
	if ok {
		t.Error("ExtractKey should reject foreign URLs")
	}
}
